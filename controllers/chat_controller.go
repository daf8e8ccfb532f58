package controllers

import (
	"log"
	"net/http"

	"social-network/services"

	"github.com/gin-gonic/gin"
)

// GetChat 查询自己和某个用户的会话历史。
// 没有会话不算错误，chat 返回 null 表示还没聊过
func GetChat(chats *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userInfo, ok := currentUser(c)
		if !ok {
			return
		}
		userID, ok := paramUint(c, "userId")
		if !ok {
			return
		}

		chat, err := chats.GetChat(userInfo.ID, userID)
		if err != nil {
			log.Println("Error fetching chat:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "done", "chat": chat})
	}
}
