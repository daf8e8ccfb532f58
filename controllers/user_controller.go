package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"social-network/config"
	"social-network/models"
	"social-network/services"
	"social-network/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// 用户注册
func SignUp(c *gin.Context) {
	var userInput struct {
		FirstName string `json:"first_name" binding:"required,min=3,max=30"`
		LastName  string `json:"last_name" binding:"required,min=3,max=30"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		Phone     string `json:"phone" binding:"required"`
		Gender    string `json:"gender"`
	}

	if err := c.ShouldBindJSON(&userInput); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 检查邮箱是否已注册
	var existingUser models.User
	if err := config.DB.Where("email = ?", userInput.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userInput.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	gender := userInput.Gender
	if gender == "" {
		gender = models.GenderOther
	}

	newUser := models.User{
		FirstName: userInput.FirstName,
		LastName:  userInput.LastName,
		Email:     userInput.Email,
		Password:  string(hashedPassword),
		Phone:     userInput.Phone,
		Gender:    gender,
		Role:      models.RoleUser,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	utils.RespondSuccess(c, gin.H{"id": newUser.ID, "email": newUser.Email}, nil)
}

// 用户登录
func Login(c *gin.Context) {
	var loginInput struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginInput); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ? AND is_deleted = false", loginInput.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginInput.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// 更新最后登录时间
	now := time.Now()
	user.LastLogin = &now
	config.DB.Save(&user)

	accessToken, err := services.GenerateAccessToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	refreshToken, err := services.GenerateRefreshToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	utils.RespondSuccess(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	}, nil)
}

// 获取个人资料，带好友列表
func GetProfile(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}

	var user models.User
	err := config.DB.
		Preload("Friends").
		Where("id = ? AND is_deleted = false", userInfo.ID).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or deleted"})
		return
	}

	utils.RespondSuccess(c, user, nil)
}

// 修改密码，同时记录变更时间让旧 token 作废
func UpdatePassword(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userInfo.Password), []byte(input.OldPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is wrong"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	err = config.DB.Model(&models.User{}).Where("id = ?", userInfo.ID).Updates(map[string]interface{}{
		"password":            string(hashedPassword),
		"password_changed_at": now,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	utils.RespondSuccess(c, gin.H{"msg": "Password updated successfully"}, nil)
}

// 管理端用户列表
func Dashboard(c *gin.Context) {
	var users []models.User
	if err := config.DB.Where("is_deleted = false").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	utils.RespondSuccess(c, users, nil)
}

// 管理端调整用户角色
func UpdateRole(c *gin.Context) {
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}

	var input struct {
		Role string `json:"role" binding:"required,oneof=user admin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target models.User
	if err := config.DB.Where("id = ? AND is_deleted = false", userID).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or deleted"})
		return
	}

	if err := config.DB.Model(&target).Update("role", input.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	utils.RespondSuccess(c, gin.H{"id": target.ID, "role": input.Role}, nil)
}

// 加好友，双向写入
func AddFriend(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}

	var target models.User
	if err := config.DB.Where("id = ? AND is_deleted = false", userID).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or deleted"})
		return
	}
	if target.ID == userInfo.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add yourself"})
		return
	}

	var count int64
	config.DB.Table("user_friends").
		Where("user_id = ? AND friend_id = ?", userInfo.ID, target.ID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You already added this user"})
		return
	}

	if err := config.DB.Model(userInfo).Association("Friends").Append(&target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add friend"})
		return
	}
	if err := config.DB.Model(&target).Association("Friends").Append(userInfo); err != nil {
		log.Println("Failed to add reverse friend link:", err)
	}

	c.JSON(http.StatusCreated, gin.H{"msg": fmt.Sprintf("%s %s is your friend now", target.FirstName, target.LastName)})
}

// 删好友，双向解除
func RemoveFriend(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}

	var target models.User
	if err := config.DB.Where("id = ? AND is_deleted = false", userID).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or deleted"})
		return
	}

	var count int64
	config.DB.Table("user_friends").
		Where("user_id = ? AND friend_id = ?", userInfo.ID, target.ID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This user is not your friend"})
		return
	}

	if err := config.DB.Model(userInfo).Association("Friends").Delete(&target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove friend"})
		return
	}
	if err := config.DB.Model(&target).Association("Friends").Delete(userInfo); err != nil {
		log.Println("Failed to remove reverse friend link:", err)
	}

	c.JSON(http.StatusCreated, gin.H{"msg": fmt.Sprintf("%s %s is not your friend now", target.FirstName, target.LastName)})
}

// 拉黑用户，同时双向解除好友关系
func BlockUser(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}

	var target models.User
	if err := config.DB.Where("id = ? AND is_deleted = false", userID).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or deleted"})
		return
	}
	if target.ID == userInfo.ID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You can't block yourself"})
		return
	}

	var count int64
	config.DB.Table("user_blocks").
		Where("user_id = ? AND blocked_id = ?", userInfo.ID, target.ID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You already blocked this user"})
		return
	}

	if err := config.DB.Model(userInfo).Association("BlockedUsers").Append(&target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block user"})
		return
	}
	if err := config.DB.Model(userInfo).Association("Friends").Delete(&target); err != nil {
		log.Println("Failed to remove friend link on block:", err)
	}
	if err := config.DB.Model(&target).Association("Friends").Delete(userInfo); err != nil {
		log.Println("Failed to remove reverse friend link on block:", err)
	}

	c.JSON(http.StatusCreated, gin.H{"msg": fmt.Sprintf("%s %s Blocked successfully", target.FirstName, target.LastName)})
}

// 解除拉黑
func UnblockUser(c *gin.Context) {
	userInfo, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}

	var target models.User
	if err := config.DB.Where("id = ? AND is_deleted = false", userID).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or deleted"})
		return
	}
	if target.ID == userInfo.ID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You can't unblock yourself"})
		return
	}

	var count int64
	config.DB.Table("user_blocks").
		Where("user_id = ? AND blocked_id = ?", userInfo.ID, target.ID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You haven't blocked this user"})
		return
	}

	if err := config.DB.Model(userInfo).Association("BlockedUsers").Delete(&target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unblock user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": fmt.Sprintf("%s %s Unblocked successfully", target.FirstName, target.LastName)})
}
