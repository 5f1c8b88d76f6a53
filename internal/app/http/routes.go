package routes

import (
	"time"

	adminapi "skillytics-api/internal/api/admin"
	authapi "skillytics-api/internal/api/auth"
	billingapi "skillytics-api/internal/api/billing"
	certapi "skillytics-api/internal/api/certifications"
	enterpriseapi "skillytics-api/internal/api/enterprise"
	learningapi "skillytics-api/internal/api/learning"
	marketapi "skillytics-api/internal/api/marketplace"
	stripewebhooks "skillytics-api/internal/api/stripewebhook"
	usersapi "skillytics-api/internal/api/users"
	"skillytics-api/internal/app/http/middleware"
	"skillytics-api/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.Engine, rdb *redis.Client, certificatesDir string) {
	// The webhook reads the raw body for signature verification, so it must
	// stay outside the sanitizer.
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public certificate verification (the QR code on the PDF points here).
	r.GET("/verify-certificate/:hash", certapi.VerifyCertificate)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	authLimited := public.Group("/")
	authLimited.Use(middleware.RateLimit(middleware.DefaultAuthRateLimit(), rdb))
	authLimited.POST("/register", authapi.Register)
	authLimited.POST("/login", authapi.Login)
	authLimited.POST("/resend-verification", authapi.ResendVerification)
	authLimited.POST("/request-password-reset", authapi.RequestPasswordReset)
	authLimited.POST("/reset-password", authapi.ResetPassword)

	public.GET("/verify", usersapi.VerifyEmail)
	public.GET("/auth/google", authapi.GoogleLogin)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Anonymous catalog reads go through the response cache.
	cached := public.Group("/")
	cached.Use(middleware.CacheResponse(rdb, 5*time.Minute))
	cached.GET("/api/plans", billingapi.ListPlans)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())

	auth.GET("/api/users/me", usersapi.Me)
	auth.GET("/api/gate", usersapi.GateContent)
	auth.PUT("/api/users/me", usersapi.UpdateProfile)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/api/subscriptions", billingapi.GetSubscription)
	auth.POST("/api/subscriptions", billingapi.ManageSubscription)
	auth.GET("/api/payments", billingapi.GetPaymentHistory)

	auth.GET("/api/modules", learningapi.ListModules)
	auth.GET("/api/modules/:id", learningapi.GetModule)
	auth.GET("/api/missions", learningapi.ListMissions)
	auth.GET("/api/missions/:id", learningapi.GetMission)
	auth.GET("/api/progress", learningapi.GetProgress)
	auth.POST("/api/submissions", learningapi.SubmitCode)

	// Joining a team is how seat-based enterprise access starts, so it sits
	// outside the tier guard.
	auth.POST("/api/enterprise/join", enterpriseapi.JoinTeam)

	// Pro features
	pro := auth.Group("/")
	pro.Use(middleware.RequireTier(plans.TierPro))
	pro.GET("/api/analytics", learningapi.GetAnalytics)

	pro.GET("/api/certifications", certapi.ListCertifications)
	pro.POST("/api/certifications/:id/claim", certapi.ClaimCertification)
	pro.GET("/api/certifications/:id/download", func(c *gin.Context) {
		certapi.DownloadCertificate(c, certificatesDir)
	})

	pro.GET("/api/marketplace", marketapi.ListItems)
	pro.GET("/api/marketplace/items/:id", marketapi.GetItem)
	pro.POST("/api/marketplace", marketapi.ManageMarketplace)
	pro.PUT("/api/marketplace/items/:id", marketapi.UpdateItem)
	pro.GET("/api/marketplace/creator", marketapi.GetCreatorDashboard)

	// Enterprise team features
	enterprise := auth.Group("/")
	enterprise.Use(middleware.RequireTier(plans.TierEnterprise))
	enterprise.GET("/api/enterprise", enterpriseapi.GetOrganization)
	enterprise.POST("/api/enterprise", enterpriseapi.ManageOrganization)
	enterprise.GET("/api/enterprise/analytics", enterpriseapi.GetTeamAnalytics)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.GetDashboardStats)
	admin.GET("/users", adminapi.ListUsers)
	admin.GET("/payments", adminapi.ListPayments)
	admin.POST("/seed-plans", adminapi.SeedPlans)
	admin.POST("/marketplace/review", adminapi.ReviewItem)
}
