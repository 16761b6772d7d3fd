package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"remory/internal/interfaces/http/handlers"
	"remory/internal/interfaces/http/middleware"
	"remory/internal/shared/authorization"
	"remory/internal/shared/logger"
)

// Setup registers every route on the engine. The dual-token filter guards
// everything except the auth surface, static assets and the websocket
// handshake.
func Setup(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	chatHandler *handlers.ChatHandler,
	decoder middleware.TokenDecoder,
	log logger.Interface,
) {
	router.Use(middleware.AuthMiddleware(decoder, log))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/reissue", authHandler.Reissue)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/complete-profile", authHandler.CompleteProfile)
		authGroup.GET("/:provider", authHandler.SocialRedirect)
		authGroup.GET("/:provider/callback", authHandler.SocialCallback)
	}

	users := router.Group("/api/users")
	{
		users.GET("/me", userHandler.Me)
		users.PUT("/me/password", userHandler.ChangePassword)
		users.DELETE("/me", userHandler.Withdraw)
	}

	admin := router.Group("/api/admin", middleware.RequireRole(authorization.RoleAdmin))
	{
		admin.PUT("/users/:subjectID/role", userHandler.ChangeRole)
	}

	router.GET("/ws/chat/rooms/:roomID", chatHandler.JoinRoom)
}
