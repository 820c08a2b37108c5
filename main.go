package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"home-service-server/config"
	"home-service-server/database"
	"home-service-server/jobs"
	"home-service-server/middleware"
	"home-service-server/routes"
	"home-service-server/services"
	ws "home-service-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database (runs migrations)
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed admin account and default catalog on first boot
	seedData()

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers and rate limiting
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Home Service Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Notification hub for WebSocket push
	hub := ws.NewHub()
	go hub.Run()
	services.SetNotificationHub(hub)

	// API routes
	api := router.Group("/api")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Public catalog routes
		routes.RegisterServiceRoutes(api)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterProfileRoutes(protected)
			routes.RegisterBookingRoutes(protected)
			routes.RegisterRatingRoutes(protected)
			routes.RegisterNotificationRoutes(protected)

			// Worker routes
			workerRoutes := protected.Group("")
			workerRoutes.Use(middleware.RequireWorker())
			routes.RegisterWorkerRoutes(workerRoutes)

			// Admin routes
			adminRoutes := protected.Group("")
			adminRoutes.Use(middleware.RequireAdmin())
			routes.RegisterAdminRoutes(adminRoutes)
			routes.RegisterServiceAdminRoutes(adminRoutes)
		}

		// WebSocket endpoint; browsers cannot set headers here, so the
		// token travels as a query parameter
		wsRoutes := api.Group("/ws")
		wsRoutes.Use(middleware.WebSocketAuthMiddleware())
		wsRoutes.GET("/notifications", func(c *gin.Context) {
			user := middleware.CurrentUser(c)
			ws.ServeWebSocket(hub, c.Writer, c.Request, user.ID, string(user.Role))
		})
	}

	// Start background jobs
	delayedJob := jobs.NewDelayedBookingJob()
	delayedJob.Start()
	defer delayedJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
