package controllers

import (
	"social-network/services"

	"github.com/gin-gonic/gin"
)

func WSController(gateway *services.ChatGateway) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		gateway.HandleWebSocket(ctx)
	}
}
