package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/htw-hub/questboard-api/internal/middleware"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/repository"
	"github.com/htw-hub/questboard-api/internal/services"
)

// Dependencies bundles what the HTTP layer is wired from
type Dependencies struct {
	UserRepo            repository.UserRepository
	AuthService         *services.AuthService
	TaskService         *services.TaskService
	AnalyticsService    *services.AnalyticsService
	UserService         *services.UserService
	OrganizationService *services.OrganizationService
	AIService           *services.AIService
}

// RegisterRoutes mounts the health check and the /api routes. Session
// middleware must already be installed on r.
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler(deps.AuthService)
	taskHandler := NewTaskHandler(deps.TaskService)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsService)
	userHandler := NewUserHandler(deps.UserService, deps.TaskService)
	orgHandler := NewOrganizationHandler(deps.OrganizationService)
	aiHandler := NewAIHandler(deps.AIService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Quest Board API is running",
		})
	})

	requireAuth := middleware.RequireAuth()

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/user", requireAuth, authHandler.GetCurrentUser)
			auth.GET("/status", authHandler.Status)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", middleware.LoadTask(deps.TaskService), taskHandler.GetTask)
			tasks.POST("", requireAuth, middleware.RequireRole(deps.UserRepo, models.RoleOrganizer), taskHandler.CreateTask)
			tasks.PATCH("/:id/claim", requireAuth, taskHandler.ClaimTask)
			tasks.POST("/:id/claim", requireAuth, taskHandler.ClaimTask)
			tasks.PATCH("/:id/complete", requireAuth, taskHandler.CompleteTask)
		}

		api.GET("/analytics/stats", analyticsHandler.Stats)
		api.GET("/leaderboard", analyticsHandler.Leaderboard)

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/:id/tasks", userHandler.ListTasks)
			users.GET("/:id/history", userHandler.ListHistory)
		}
		api.PATCH("/user/profile", requireAuth, userHandler.UpdateProfile)

		orgs := api.Group("/organizations")
		{
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.POST("", requireAuth, orgHandler.CreateOrganization)
		}

		ai := api.Group("/ai")
		ai.Use(requireAuth)
		{
			ai.POST("/task-help", aiHandler.TaskHelp)
			ai.POST("/organization-assistant", aiHandler.OrganizationAssistant)
			ai.POST("/generate-infographic", aiHandler.GenerateInfographic)
		}
	}
}
