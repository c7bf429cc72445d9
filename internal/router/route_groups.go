package router

import (
	"club_manager_backend/internal/handlers"
	"club_manager_backend/internal/middleware"
	"club_manager_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupPlayerRoutes sets up the player roster routes.
// Write operations are restricted to Admin, reads are open to Staff as well.
func SetupPlayerRoutes(authenticatedGroup *gin.RouterGroup, playerHandler *handlers.PlayerHandler) {
	playerWriteRoutes := authenticatedGroup.Group("/players")
	playerWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		playerWriteRoutes.POST("", playerHandler.CreatePlayer)
		playerWriteRoutes.PUT("/:id", playerHandler.UpdatePlayer)
		playerWriteRoutes.DELETE("/:id", playerHandler.DeletePlayer)
		playerWriteRoutes.POST("/:id/photo", playerHandler.UploadPlayerPhoto)
		playerWriteRoutes.POST("/:id/medical-cert", playerHandler.UploadPlayerMedicalCert)
	}

	authenticatedGroup.GET("/players", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), playerHandler.GetPlayers)
	authenticatedGroup.GET("/players/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), playerHandler.GetPlayerByID)
}

// SetupCoachRoutes sets up the coach roster routes.
func SetupCoachRoutes(authenticatedGroup *gin.RouterGroup, coachHandler *handlers.CoachHandler) {
	coachWriteRoutes := authenticatedGroup.Group("/coaches")
	coachWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		coachWriteRoutes.POST("", coachHandler.CreateCoach)
		coachWriteRoutes.PUT("/:id", coachHandler.UpdateCoach)
		coachWriteRoutes.DELETE("/:id", coachHandler.DeleteCoach)
		coachWriteRoutes.POST("/:id/photo", coachHandler.UploadCoachPhoto)
	}

	authenticatedGroup.GET("/coaches", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), coachHandler.GetCoaches)
	authenticatedGroup.GET("/coaches/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), coachHandler.GetCoachByID)
}

// SetupPaymentRoutes sets up the payment ledger routes.
func SetupPaymentRoutes(authenticatedGroup *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	paymentRoutes := authenticatedGroup.Group("/payments")
	paymentRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		paymentRoutes.POST("", paymentHandler.CreatePayment)
		paymentRoutes.GET("", paymentHandler.GetPayments)
		paymentRoutes.GET("/:id", paymentHandler.GetPaymentByID)
		paymentRoutes.POST("/:id/transactions", paymentHandler.RecordPartialPayment)
		paymentRoutes.POST("/:id/settle", paymentHandler.MarkFullyPaid)
	}

	// Deleting a payment erases its history, Admin only.
	authenticatedGroup.DELETE("/payments/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), paymentHandler.DeletePayment)
}

// SetupEventRoutes sets up the event scheduling routes.
func SetupEventRoutes(authenticatedGroup *gin.RouterGroup, eventHandler *handlers.EventHandler) {
	eventRoutes := authenticatedGroup.Group("/events")
	eventRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.GET("", eventHandler.GetEvents)
		eventRoutes.GET("/:id", eventHandler.GetEventByID)
		eventRoutes.PUT("/:id", eventHandler.UpdateEvent)
		eventRoutes.DELETE("/:id", eventHandler.DeleteEvent)
	}
}

// SetupStatsRoutes sets up the statistics routes.
func SetupStatsRoutes(authenticatedGroup *gin.RouterGroup, statsHandler *handlers.StatsHandler) {
	statsRoutes := authenticatedGroup.Group("/stats")
	statsRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		statsRoutes.GET("/leaderboards", statsHandler.GetLeaderboards)
		statsRoutes.GET("/matches/:id", statsHandler.GetMatchSummary)
		statsRoutes.GET("/dashboard", statsHandler.GetDashboardSummary)
	}
}

// SetupDocumentRoutes sets up the printable document routes.
func SetupDocumentRoutes(authenticatedGroup *gin.RouterGroup, documentHandler *handlers.DocumentHandler) {
	documentRoutes := authenticatedGroup.Group("/documents")
	documentRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		documentRoutes.GET("/receipts/:id", documentHandler.GetReceipt)
		documentRoutes.GET("/registration-forms/:id", documentHandler.GetRegistrationForm)
		documentRoutes.GET("/medical-certificates/:id", documentHandler.GetMedicalCertificateSheet)
	}
}
