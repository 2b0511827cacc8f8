package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/htw-hub/questboard-api/internal/config"
	"github.com/htw-hub/questboard-api/internal/constants"
	"github.com/htw-hub/questboard-api/internal/database"
	"github.com/htw-hub/questboard-api/internal/handlers"
	"github.com/htw-hub/questboard-api/internal/repository"
	"github.com/htw-hub/questboard-api/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Load configuration
	cfg := config.Load()

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
	r := gin.Default()

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)

	aiService := services.NewAIService(cfg.OpenAIAPIKey)
	if !aiService.Configured() {
		log.Println("OPENAI_API_KEY not set, AI endpoints will serve canned responses")
	}

	handlers.RegisterRoutes(r, handlers.Dependencies{
		UserRepo:            userRepo,
		AuthService:         services.NewAuthService(userRepo),
		TaskService:         services.NewTaskService(taskRepo, userRepo),
		AnalyticsService:    services.NewAnalyticsService(taskRepo, userRepo, historyRepo),
		UserService:         services.NewUserService(userRepo, historyRepo),
		OrganizationService: services.NewOrganizationService(orgRepo),
		AIService:           aiService,
	})

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore != "redis" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
}
