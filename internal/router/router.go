package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/RahulRR-10/EchoSQL/internal/handler"
	"github.com/RahulRR-10/EchoSQL/internal/middleware"
)

// Setup sets up all routes
func Setup(
	h *server.Hertz,
	userHandler *handler.UserHandler,
	sessionHandler *handler.SessionHandler,
	messageHandler *handler.MessageHandler,
	databaseHandler *handler.DatabaseHandler,
	bookmarkHandler *handler.BookmarkHandler,
	visualizationHandler *handler.VisualizationHandler,
	whatsappHandler *handler.WhatsAppHandler,
	healthHandler *handler.HealthHandler,
) {
	// Global middleware
	h.Use(middleware.Recovery())
	h.Use(middleware.Logger())
	h.Use(middleware.CORS())

	// Health check routes (no authentication required)
	h.GET("/ping", healthHandler.Ping)
	h.GET("/health/ready", healthHandler.Readiness)
	h.GET("/health/live", healthHandler.Liveness)

	// Inbound webhook (Twilio signs requests; no JWT on this channel)
	h.POST("/whatsapp", whatsappHandler.Inbound)

	// API v1 routes
	apiV1 := h.Group("/api/v1")
	{
		// ============ Public routes (no authentication required) ============
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/refresh", userHandler.RefreshToken)
		}

		// ============ Protected routes (JWT authentication required) ============
		authorized := apiV1.Group("")
		authorized.Use(userHandler.AuthMiddleware())
		{
			// User management
			users := authorized.Group("/users")
			{
				users.GET("/me", userHandler.GetCurrentUser)
				users.GET("", userHandler.ListUsers)
				users.GET("/:id", userHandler.GetUser)
				users.DELETE("/:id", userHandler.DeleteUser)
			}

			// Database connection profiles
			databases := authorized.Group("/databases")
			{
				databases.POST("", databaseHandler.CreateProfile)
				databases.GET("", databaseHandler.ListProfiles)
				databases.GET("/:id", databaseHandler.GetProfile)
				databases.PUT("/:id", databaseHandler.UpdateProfile)
				databases.DELETE("/:id", databaseHandler.DeleteProfile)
			}

			// Query sessions
			sessions := authorized.Group("/sessions")
			{
				sessions.POST("", sessionHandler.CreateSession)
				sessions.GET("", sessionHandler.ListSessions)
				sessions.GET("/:id", sessionHandler.GetSession)
				sessions.PUT("/:id", sessionHandler.RenameSession)
				sessions.DELETE("/:id", sessionHandler.DeleteSession)
				sessions.GET("/:id/messages", sessionHandler.ListSessionMessages)
				sessions.GET("/:id/report", sessionHandler.GetSessionReport)
				sessions.GET("/:id/pdf", sessionHandler.ExportSessionPDF)
			}

			// Question/answer exchanges
			messages := authorized.Group("/messages")
			{
				messages.POST("", messageHandler.Ask)
				messages.GET("/:id", messageHandler.GetMessage)
				messages.POST("/:id/visualize", visualizationHandler.VisualizeMessage)
			}

			// Ad-hoc chart preview
			authorized.POST("/visualizations/preview", visualizationHandler.Preview)

			// Saved questions
			bookmarks := authorized.Group("/bookmarks")
			{
				bookmarks.POST("", bookmarkHandler.AddBookmark)
				bookmarks.GET("", bookmarkHandler.ListBookmarks)
				bookmarks.DELETE("/:id", bookmarkHandler.DeleteBookmark)
			}
		}
	}
}
