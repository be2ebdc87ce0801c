package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/worklens/work-calendar-api/internal/config"
	"github.com/worklens/work-calendar-api/internal/database"
	"github.com/worklens/work-calendar-api/internal/handlers"
	"github.com/worklens/work-calendar-api/internal/middleware"
	"github.com/worklens/work-calendar-api/internal/repository"
	"github.com/worklens/work-calendar-api/internal/schedule"
	"github.com/worklens/work-calendar-api/internal/scheduler"
	"github.com/worklens/work-calendar-api/internal/services"
)

func main() {
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

	// Initialize template generation engine
	clock := schedule.NewSystemClock()
	templateRepo := repository.NewTemplateRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())
	logRepo := repository.NewGenerationLogRepository(database.GetDB())
	templateService := services.NewTemplateService(templateRepo, taskRepo, logRepo, clock)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize handlers
	companyHandler := handlers.NewCompanyHandler()
	workItemHandler := handlers.NewWorkItemHandler()
	taskHandler := handlers.NewTaskHandler(aiService)
	templateHandler := handlers.NewTemplateHandler(templateService, clock)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.CORS())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Work Calendar API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		companies := api.Group("/companies")
		{
			companies.GET("", companyHandler.ListCompanies)
			companies.POST("", companyHandler.CreateCompany)
			companies.PUT("/:id", companyHandler.UpdateCompany)
			companies.DELETE("/:id", companyHandler.DeleteCompany)
		}

		workItems := api.Group("/work-items")
		{
			workItems.GET("", workItemHandler.ListWorkItems)
			workItems.POST("", workItemHandler.CreateWorkItem)
			workItems.PUT("/:id", workItemHandler.UpdateWorkItem)
			workItems.DELETE("/:id", workItemHandler.DeleteWorkItem)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/week/:date", taskHandler.WeekTasks)
			tasks.GET("/month/:year/:month", taskHandler.MonthTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/extract", taskHandler.ExtractTasks)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		templates := api.Group("/templates")
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.PUT("/:id", templateHandler.UpdateTemplate)
			templates.DELETE("/:id", templateHandler.DeleteTemplate)
			templates.POST("/:id/generate", templateHandler.Generate)
			templates.POST("/auto-generate", templateHandler.AutoGenerate)
		}
	}

	// Start the monthly sweep scheduler
	if cfg.AutoGenerateCron != "" {
		sched := scheduler.New(templateService, clock)
		if err := sched.Start(cfg.AutoGenerateCron); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
