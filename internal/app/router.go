package app

import (
	"dating_app_backend/docs"
	"dating_app_backend/internal/middleware"
	"dating_app_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(c.auth.AuthService))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerRequestRoutes(authGroup, c)
		a.registerChatRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// 注册流程中需要先上传图片
		public.POST("/upload/image", c.upload.UploadImage)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	users := rg.Group("/users")
	{
		users.GET("/explore", c.user.Explore)
		users.GET("/me", c.user.GetMe)
		users.PUT("/me", c.user.UpdateMe)
		users.DELETE("/me", c.user.DeleteMe)
		users.GET("/search/:term", c.user.Search)
		users.GET("/:id", c.user.GetProfile)
	}
}

func (a *App) registerRequestRoutes(rg *gin.RouterGroup, c *controllers) {
	requests := rg.Group("/requests")
	{
		requests.POST("/send/:receiverId", c.request.Send)
		requests.POST("/accept/:requestId", c.request.Accept)
		requests.POST("/reject/:requestId", c.request.Reject)
		requests.DELETE("/cancel/:requestId", c.request.Cancel)
		requests.GET("/sent", c.request.Sent)
		requests.GET("/received", c.request.Received)
		requests.GET("/matches", c.request.Matches)
		requests.POST("/unmatch/:matchedUserId", c.request.Unmatch)
	}
}

func (a *App) registerChatRoutes(rg *gin.RouterGroup, c *controllers) {
	chat := rg.Group("/chat")
	{
		chat.GET("/messages/:matchedUserId", c.chat.ListMessages)
		chat.POST("/send/:receiverId", c.chat.Send)
		chat.POST("/messages/:id/markAsRead", c.chat.MarkRead)
		chat.POST("/messages/markAllAsRead/:matchedUserId", c.chat.MarkAllRead)
	}
}
