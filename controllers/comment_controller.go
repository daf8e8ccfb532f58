package controllers

import (
	"net/http"

	"social-network/config"
	"social-network/models"
	"social-network/utils"

	"github.com/gin-gonic/gin"
)

// 发评论，comment_id 非空时是对评论的回复
func CreateComment(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := paramUint(c, "postId")
	if !ok {
		return
	}

	var input struct {
		Content   string `json:"content" binding:"required"`
		CommentID *uint  `json:"comment_id"`
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

	// 回复时父评论必须存在且属于同一帖子
	if input.CommentID != nil {
		var parent models.Comment
		err := config.DB.Where("id = ? AND post_id = ? AND is_deleted = false", *input.CommentID, postID).First(&parent).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found or deleted"})
			return
		}
	}

	comment := models.Comment{
		Content:   input.Content,
		PostID:    postID,
		CommentID: input.CommentID,
		UserID:    userInfo.ID,
	}
	if err := config.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Comment created", "comment": comment})
}

// 改评论，仅作者本人
func UpdateComment(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := paramUint(c, "commentId")
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

	var comment models.Comment
	if err := config.DB.Where("id = ? AND is_deleted = false", commentID).First(&comment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found or deleted"})
		return
	}
	if comment.UserID != userInfo.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this comment"})
		return
	}

	comment.Content = input.Content
	if err := config.DB.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	utils.RespondSuccess(c, comment, nil)
}

// 点赞/取消点赞评论
func LikeComment(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := paramUint(c, "commentId")
	if !ok {
		return
	}

	var comment models.Comment
	if err := config.DB.Where("id = ? AND is_deleted = false", commentID).First(&comment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found or deleted"})
		return
	}

	var count int64
	config.DB.Table("comment_likes").
		Where("comment_id = ? AND user_id = ?", comment.ID, userInfo.ID).
		Count(&count)

	var action string
	if count > 0 {
		if err := config.DB.Model(&comment).Association("Likes").Delete(userInfo); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike comment"})
			return
		}
		action = "unLike"
	} else {
		if err := config.DB.Model(&comment).Association("Likes").Append(userInfo); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like comment"})
			return
		}
		action = "like"
	}

	c.JSON(http.StatusCreated, gin.H{"msg": action + " The comment"})
}

// 冻结评论：评论作者、帖子作者或管理员
func FreezeComment(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := paramUint(c, "commentId")
	if !ok {
		return
	}

	var comment models.Comment
	if err := config.DB.Where("id = ? AND is_deleted = false", commentID).First(&comment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found or deleted"})
		return
	}

	var post models.Post
	if err := config.DB.First(&post, comment.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	allowed := comment.UserID == userInfo.ID ||
		post.UserID == userInfo.ID ||
		userInfo.Role == models.RoleAdmin
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	err := config.DB.Model(&comment).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_by": userInfo.ID,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to freeze comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Comment frozen successfully"})
}

// 解冻评论，只有当初冻结它的人能操作
func UnFreezeComment(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := paramUint(c, "commentId")
	if !ok {
		return
	}

	var comment models.Comment
	if err := config.DB.Where("id = ? AND is_deleted = true", commentID).First(&comment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found or not frozen"})
		return
	}
	if comment.DeletedBy == nil || *comment.DeletedBy != userInfo.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the user who froze this comment can unfreeze it"})
		return
	}

	err := config.DB.Model(&comment).Updates(map[string]interface{}{
		"is_deleted": false,
		"deleted_by": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfreeze comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Comment unfrozen successfully"})
}
