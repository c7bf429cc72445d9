package router

import (
	"database/sql"

	"club_manager_backend/internal/handlers"
	"club_manager_backend/internal/middleware"
	"club_manager_backend/internal/realtime"
	"club_manager_backend/internal/repositories"
	"club_manager_backend/internal/services"
	"club_manager_backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, broker *realtime.Broker, uploader storage.Uploader) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	playerRepo := repositories.NewPlayerRepository(db)
	coachRepo := repositories.NewCoachRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	eventRepo := repositories.NewEventRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	playerService := services.NewPlayerService(playerRepo, paymentRepo, db, broker)
	coachService := services.NewCoachService(coachRepo, paymentRepo, db, broker)
	paymentService := services.NewPaymentService(paymentRepo, playerRepo, coachRepo, db, broker)
	eventService := services.NewEventService(eventRepo, db, broker)
	statsService := services.NewStatsService(playerRepo, coachRepo, eventRepo, paymentRepo)
	documentService := services.NewDocumentService(paymentRepo, playerRepo, authRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	playerHandler := handlers.NewPlayerHandler(playerService, uploader)
	coachHandler := handlers.NewCoachHandler(coachService, uploader)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	eventHandler := handlers.NewEventHandler(eventService)
	statsHandler := handlers.NewStatsHandler(statsService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	realtimeHandler := handlers.NewRealtimeHandler(broker)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Websocket subscriptions authenticate inside the handler because the
	// token may arrive as a query parameter.
	apiV1.GET("/realtime", realtimeHandler.Subscribe)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupPlayerRoutes(authenticated, playerHandler)
		SetupCoachRoutes(authenticated, coachHandler)
		SetupPaymentRoutes(authenticated, paymentHandler)
		SetupEventRoutes(authenticated, eventHandler)
		SetupStatsRoutes(authenticated, statsHandler)
		SetupDocumentRoutes(authenticated, documentHandler)
	}
}

// SetupPublicAuthRoutes sets up the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.RegisterClub)
	group.POST("/login", authHandler.Login)
	group.POST("/refresh-token", authHandler.RefreshToken)
}

// SetupAuthenticatedAuthRoutes sets up the token-protected auth routes.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetProfile)
}
