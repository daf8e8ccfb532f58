package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"social-network/config"
	"social-network/models"
	"social-network/utils"

	"github.com/gin-gonic/gin"
)

// 发帖
func CreatePost(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := models.Post{
		Content: input.Content,
		UserID:  userInfo.ID,
	}
	if err := config.DB.Create(&post).Error; err != nil {
		log.Println("Error creating post:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Post created", "post": post})
}

// 改帖，仅作者本人
func UpdatePost(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := paramUint(c, "postId")
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := config.DB.Where("id = ? AND is_deleted = false", postID).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found or deleted"})
		return
	}
	if post.UserID != userInfo.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this post"})
		return
	}

	post.Content = input.Content
	if err := config.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	utils.RespondSuccess(c, post, nil)
}

// 冻结帖子，作者或管理员
func FreezePost(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := paramUint(c, "postId")
	if !ok {
		return
	}

	var post models.Post
	if err := config.DB.Where("id = ? AND is_deleted = false", postID).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found or deleted"})
		return
	}
	if post.UserID != userInfo.ID && userInfo.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	err := config.DB.Model(&post).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_by": userInfo.ID,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to freeze post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Post frozen successfully"})
}

// 解冻帖子，只有当初冻结它的人能操作
func UnFreezePost(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := paramUint(c, "postId")
	if !ok {
		return
	}

	var post models.Post
	if err := config.DB.Where("id = ? AND is_deleted = true", postID).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found or not frozen"})
		return
	}
	if post.DeletedBy == nil || *post.DeletedBy != userInfo.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the user who froze this post can unfreeze it"})
		return
	}

	err := config.DB.Model(&post).Updates(map[string]interface{}{
		"is_deleted": false,
		"deleted_by": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfreeze post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Post unFrozen successfully"})
}

// 点赞/取消点赞（取决于当前状态）
func LikePost(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := paramUint(c, "postId")
	if !ok {
		return
	}

	var post models.Post
	if err := config.DB.Where("id = ? AND is_deleted = false", postID).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found or deleted"})
		return
	}

	var count int64
	config.DB.Table("post_likes").
		Where("post_id = ? AND user_id = ?", post.ID, userInfo.ID).
		Count(&count)

	var action string
	if count > 0 {
		if err := config.DB.Model(&post).Association("Likes").Delete(userInfo); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
			return
		}
		action = "unLike"
	} else {
		if err := config.DB.Model(&post).Association("Likes").Append(userInfo); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
			return
		}
		action = "like"
	}

	c.JSON(http.StatusCreated, gin.H{"msg": action + " The post", "post": post})
}

// 帖子列表，分页
func GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var posts []models.Post
	query := config.DB.Model(&models.Post{}).
		Where("is_deleted = false AND is_archived = false").
		Order("created_at DESC")
	total, err := utils.Paginate(query, page, &posts)
	if err != nil {
		log.Println("Error fetching posts:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	utils.RespondSuccess(c, posts, gin.H{"page": page, "total": total})
}

// 某个用户的帖子
func UserPosts(c *gin.Context) {
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var posts []models.Post
	query := config.DB.Model(&models.Post{}).
		Where("user_id = ? AND is_deleted = false AND is_archived = false", userID).
		Order("created_at DESC")
	total, err := utils.Paginate(query, page, &posts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	utils.RespondSuccess(c, posts, gin.H{"page": page, "total": total})
}

// 归档帖子，仅作者本人
func ArchivePost(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := paramUint(c, "postId")
	if !ok {
		return
	}

	var post models.Post
	if err := config.DB.Where("id = ? AND is_deleted = false", postID).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found or deleted"})
		return
	}
	if post.UserID != userInfo.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this post"})
		return
	}

	now := time.Now()
	err := config.DB.Model(&post).Updates(map[string]interface{}{
		"is_archived": true,
		"archived_at": now,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Post archived successfully"})
}

// 取消归档，仅作者本人
func UnArchivePost(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := paramUint(c, "postId")
	if !ok {
		return
	}

	var post models.Post
	if err := config.DB.Where("id = ? AND is_deleted = false AND is_archived = true", postID).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found or not archived"})
		return
	}
	if post.UserID != userInfo.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this post"})
		return
	}

	err := config.DB.Model(&post).Updates(map[string]interface{}{
		"is_archived": false,
		"archived_at": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unarchive post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Post unArchived successfully"})
}
