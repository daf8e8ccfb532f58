package routes

import (
	"social-network/controllers"
	"social-network/middlewares"
	"social-network/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(gateway *services.ChatGateway, chats *services.ChatService) *gin.Engine {

	r := gin.Default()
	// 配置跨域中间件
	corsConfig := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	r.Use(cors.New(corsConfig))

	// 实时连接，握手凭证在连接内逐事件校验
	r.GET("/ws", controllers.WSController(gateway))

	api := r.Group("/api")

	api.POST("/signup", controllers.SignUp)
	api.POST("/login", controllers.Login)

	protected := api.Group("")
	protected.Use(middlewares.TokenAuthMiddleware())
	{
		protected.GET("/profile", controllers.GetProfile)
		protected.PATCH("/password", controllers.UpdatePassword)
		protected.POST("/friends/:userId", controllers.AddFriend)
		protected.DELETE("/friends/:userId", controllers.RemoveFriend)
		protected.POST("/block/:userId", controllers.BlockUser)
		protected.DELETE("/block/:userId", controllers.UnblockUser)

		protected.POST("/posts", controllers.CreatePost)
		protected.GET("/posts", controllers.GetPosts)
		protected.GET("/posts/user/:userId", controllers.UserPosts)
		protected.PATCH("/posts/:postId", controllers.UpdatePost)
		protected.POST("/posts/:postId/like", controllers.LikePost)
		protected.POST("/posts/:postId/freeze", controllers.FreezePost)
		protected.POST("/posts/:postId/unfreeze", controllers.UnFreezePost)
		protected.POST("/posts/:postId/archive", controllers.ArchivePost)
		protected.POST("/posts/:postId/unarchive", controllers.UnArchivePost)

		protected.POST("/posts/:postId/comments", controllers.CreateComment)
		protected.PATCH("/comments/:commentId", controllers.UpdateComment)
		protected.POST("/comments/:commentId/like", controllers.LikeComment)
		protected.POST("/comments/:commentId/freeze", controllers.FreezeComment)
		protected.POST("/comments/:commentId/unfreeze", controllers.UnFreezeComment)

		protected.GET("/chat/:userId", controllers.GetChat(chats))

		admin := protected.Group("/admin")
		admin.Use(middlewares.AdminOnly())
		{
			admin.GET("/dashboard", controllers.Dashboard)
			admin.PATCH("/role/:userId", controllers.UpdateRole)
		}
	}

	return r
}
