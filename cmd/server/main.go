package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"club_manager_backend/internal/database"
	"club_manager_backend/internal/realtime"
	"club_manager_backend/internal/router"
	"club_manager_backend/internal/storage"
	"club_manager_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()
	utils.InitJWT(utils.Getenv("JWT_SECRET", ""))

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "club_manager_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "club_manager_password")
	dbName := utils.Getenv("DB_NAME", "club_manager_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")

	db, err := database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
	if err != nil {
		utils.LogError(err, "Failed to initialize database")
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Object storage for photos and medical certificates. Upload endpoints
	// answer 503 when no bucket is configured.
	var uploader storage.Uploader
	if bucket := utils.Getenv("S3_BUCKET", ""); bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(utils.Getenv("AWS_REGION", "eu-west-3"), bucket)
		if err != nil {
			utils.LogError(err, "Failed to initialize S3 uploader")
			log.Fatalf("Failed to initialize S3 uploader: %v", err)
		}
		uploader = s3Uploader
		utils.LogInfo("S3 uploader initialized", map[string]interface{}{"bucket": bucket})
	} else {
		utils.LogInfo("No S3 bucket configured, file uploads disabled")
	}

	broker := realtime.NewBroker()

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router.Setup(engine, db, broker, uploader)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
