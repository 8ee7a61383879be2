package routes

import (
	"besties/api/handlers"
	"besties/api/middleware"
	"besties/auth"

	"github.com/gin-gonic/gin"
)

// UsersApi - все эндпоинты /users. register и login доступны без токена.
func UsersApi(router *gin.Engine, h *handlers.Handlers, tokens *auth.JWTManager) *gin.RouterGroup {
	users := router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
	}

	private := users.Group("", middleware.JWTAuthMiddleware(tokens))
	{
		private.GET("/feed", h.Feed)
		private.GET("/search", h.Search)
		private.GET("/counters", h.GetCounters)
		private.GET("/user/:userid", h.GetUser)

		// Друзья
		private.POST("/friend-request/:from/:to", h.FriendRequest)
		private.GET("/friend-requests", h.GetFriendRequests)
		private.POST("/toggle/:userid", h.ToggleBestieOrEnemy)
		private.POST("/reset-alert-notifications", h.ResetAlertNotifications)

		// Посты
		private.POST("/post", h.CreatePost)
		private.POST("/like/:ownerid/:postid", h.LikeUnlike)
		private.POST("/comment/:ownerid/:postid", h.CommentOnPost)

		// Сообщения
		private.POST("/message/:to", h.SendMessage)
		private.DELETE("/message/:messageid", h.DeleteMessage)
		private.POST("/reset-message-notifications", h.ResetMessageNotifications)
	}
	return users
}

// AdminApi - GET и DELETE /users/all, подключается только при admin.enabled
func AdminApi(router *gin.Engine, h *handlers.Handlers, tokens *auth.JWTManager) *gin.RouterGroup {
	admin := router.Group("/users", middleware.JWTAuthMiddleware(tokens))
	{
		admin.GET("/all", h.GetAllUsers)
		admin.DELETE("/all", h.DeleteAllUsers)
	}
	return admin
}
