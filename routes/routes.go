// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gatherly-api/config"
	"gatherly-api/controllers"
	"gatherly-api/middleware"
	"gatherly-api/repositories"
	"gatherly-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService, hub *services.ChatHub) {
	// Repositories and services
	eventRepo := repositories.NewEventRepository(db)
	invitationRepo := repositories.NewInvitationRepository(db)
	notificationService := services.NewNotificationService(db)
	participationService := services.NewParticipationService(db, eventRepo, notificationService)
	invitationService := services.NewInvitationService(db, eventRepo, invitationRepo, notificationService)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	eventController := controllers.NewEventController(db, eventRepo, participationService, notificationService)
	invitationController := controllers.NewInvitationController(invitationService)
	notificationController := controllers.NewNotificationController(db)
	postController := controllers.NewPostController(db, eventRepo, notificationService)
	chatController := controllers.NewChatController(db, eventRepo, hub, cfg.JWTSecret)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/logout", authController.Logout)
		auth.POST("/send-verification", authController.SendVerification)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// Websocket chat authenticates via query token, outside the header
	// middleware.
	v1.GET("/ws/events/:id/chat", chatController.HandleChat)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/:id", userController.UpdateProfile)
			users.GET("/:id", userController.GetUser)
		}

		// Event routes
		events := protected.Group("/events")
		{
			events.GET("/", eventController.GetEvents)
			events.POST("/", eventController.CreateEvent)
			events.GET("/joined", eventController.GetJoinedEvents)
			events.GET("/created", eventController.GetCreatedEvents)
			events.GET("/:id", eventController.GetEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.CancelEvent)
			events.POST("/:id/join", eventController.JoinEvent)
			events.POST("/:id/respond", eventController.RespondJoin)
			events.GET("/:id/participants", eventController.GetParticipants)
			events.GET("/:id/posts", postController.GetPosts)
			events.POST("/:id/posts", postController.CreatePost)
			events.GET("/:id/chat", chatController.GetChatHistory)
		}

		// Invitation routes
		invitations := protected.Group("/invitations")
		{
			invitations.GET("/", invitationController.GetInvitations)
			invitations.POST("/", invitationController.CreateInvitation)
			invitations.GET("/:id", invitationController.GetInvitation)
			invitations.DELETE("/:id", invitationController.DeleteInvitation)
		}

		// RSVP routes
		rsvps := protected.Group("/rsvps")
		{
			rsvps.POST("/", invitationController.CreateRSVP)
			rsvps.GET("/:id", invitationController.GetRSVP)
			rsvps.DELETE("/:id", invitationController.DeleteRSVP)
		}

		// Post routes
		posts := protected.Group("/posts")
		{
			posts.PUT("/:id", postController.UpdatePost)
			posts.DELETE("/:id", postController.DeletePost)
			posts.POST("/:id/replies", postController.CreateReply)
		}

		// Reply routes
		replies := protected.Group("/replies")
		{
			replies.DELETE("/:id", postController.DeleteReply)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("/", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetNotificationStats)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
			notifications.PUT("/read-all", notificationController.MarkAllAsRead)
			notifications.DELETE("/:id", notificationController.DeleteNotification)
		}
	}
}
