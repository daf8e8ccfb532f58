package main

import (
	"log"
	"os"

	"social-network/config"
	"social-network/models"
	"social-network/routes"
	"social-network/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// 初始化数据库
	config.InitDB()
	// 自动迁移
	models.Migrate()

	presence := services.NewPresenceRegistry()
	chats := services.NewChatService(config.DB)
	gateway := services.NewChatGateway(presence, chats)

	// 注册路由
	r := routes.RegisterRoutes(gateway, chats)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}

	// 启动服务
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
