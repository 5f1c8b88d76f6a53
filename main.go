package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"skillytics-api/config"
	"skillytics-api/database"
	authapi "skillytics-api/internal/api/auth"
	routes "skillytics-api/internal/app/http"
	"skillytics-api/internal/queue"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	rdb := config.NewRedisClient()

	if err := authapi.InitGoogleOIDC(context.Background()); err != nil {
		fmt.Println("⚠️ Google OIDC disabled:", err)
	}

	certificatesDir := os.Getenv("CERTIFICATES_DIR")
	if certificatesDir == "" {
		certificatesDir = "./certificates"
	}
	queue.StartCertificateConsumer(certificatesDir)

	r := gin.Default()

	// CORS middleware goes in before any routes are registered
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, rdb, certificatesDir)

	r.Run(":" + config.PORT)
}
