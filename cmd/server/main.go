package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/adisharma/job-tracker-api/internal/config"
	"github.com/adisharma/job-tracker-api/internal/constants"
	"github.com/adisharma/job-tracker-api/internal/database"
	"github.com/adisharma/job-tracker-api/internal/handlers"
	"github.com/adisharma/job-tracker-api/internal/logger"
	"github.com/adisharma/job-tracker-api/internal/middleware"
	"github.com/adisharma/job-tracker-api/internal/ratelimit"
	"github.com/adisharma/job-tracker-api/internal/repository"
	"github.com/adisharma/job-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,    // Redis pool size
		"tcp", // network type
		cfg.RedisAddr(),
		"", // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Login rate limiter. The in-process store is enough for a single
	// instance; Redis shares counts across replicas.
	var attemptStore ratelimit.AttemptStore
	if cfg.RateLimitBackend == "redis" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
		attemptStore = ratelimit.NewRedisStore(rdb, constants.LoginBlockWindow)
	} else {
		attemptStore = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.New(attemptStore, constants.LoginBlockWindow, constants.MaxLoginAttempts, log)

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	authService := services.NewAuthService(userRepo, activityRepo, log)
	jobService := services.NewJobService(jobRepo, activityRepo)
	statsService := services.NewStatsService(jobRepo)
	adminService := services.NewAdminService(jobRepo, userRepo, activityRepo, jobService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, limiter)
	jobHandler := handlers.NewJobHandler(jobService)
	statsHandler := handlers.NewStatsHandler(statsService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Job Tracker API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/overview", statsHandler.Overview)

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.GET("/verify/:id/:token", authHandler.VerifyEmail)
			auth.POST("/login", middleware.LoginRateLimit(limiter), authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Job routes (protected)
		jobs := api.Group("/jobs")
		jobs.Use(middleware.RequireAuth())
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.POST("", jobHandler.CreateJob)
			jobs.GET("/followups", jobHandler.DueFollowups)
			jobs.GET("/followups/upcoming", jobHandler.UpcomingFollowups)
			jobs.GET("/export", jobHandler.ExportCSV)
			jobs.GET("/stats", statsHandler.Stats)
			jobs.GET("/:id", jobHandler.GetJob)
			jobs.PATCH("/:id", jobHandler.UpdateJob)
			jobs.DELETE("/:id", jobHandler.DeleteJob)
			jobs.POST("/:id/status", jobHandler.QuickStatus)
			jobs.POST("/:id/priority", jobHandler.QuickPriority)
			jobs.POST("/:id/followup/done", jobHandler.FollowupDone)
			jobs.POST("/:id/followup", jobHandler.ScheduleFollowup)
		}

		// Admin routes (staff only)
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireStaff(authService))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/jobs", adminHandler.ListJobs)
			admin.GET("/activity", adminHandler.ActivityTimeline)
			admin.POST("/users/:id/toggle", adminHandler.ToggleUserActive)
		}
	}

	// Start server
	log.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
