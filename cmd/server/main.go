package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/canmap/canmap/internal/handlers"
	"github.com/canmap/canmap/internal/middleware"
	"github.com/canmap/canmap/internal/repositories"
	"github.com/canmap/canmap/internal/services"
	"github.com/canmap/canmap/internal/workers"
	"github.com/canmap/canmap/pkg/config"
	"github.com/canmap/canmap/pkg/database"
	"github.com/canmap/canmap/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(config.AppConfig.Server.Mode)
	logger.Init()

	// Initialize database
	if err := database.Init(config.AppConfig.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	projectRepo := repositories.NewProjectRepository(database.DB)
	ruleRepo := repositories.NewMailmapRuleRepository(database.DB)
	authorRepo := repositories.NewAuthorRepository(database.DB)
	jobRepo := repositories.NewJobRepository(database.DB)

	mailmapService := services.NewMailmapService(ruleRepo)
	resolveService := services.NewResolveService(mailmapService, projectRepo, authorRepo)
	githubService := services.NewGitHubMailmapService(mailmapService, config.AppConfig.GitHub.Token)
	exportService := services.NewExportService(authorRepo)
	jobService := services.NewJobService(jobRepo)

	// Initialize worker manager
	workerManager := workers.NewWorkerManager(jobRepo, resolveService)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupRoutes(router, projectRepo, authorRepo, mailmapService, resolveService, githubService, exportService, jobService)

	// Start workers
	if err := workerManager.StartAll(config.AppConfig.Workers.ScanWorkers); err != nil {
		logger.Fatalf("Failed to start workers: %v", err)
	}
	defer workerManager.StopAll()

	// Setup server
	server := &http.Server{
		Addr:    ":" + config.AppConfig.Server.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")
}

func setupRoutes(
	router *gin.Engine,
	projectRepo *repositories.ProjectRepository,
	authorRepo *repositories.AuthorRepository,
	mailmapService *services.MailmapService,
	resolveService *services.ResolveService,
	githubService *services.GitHubMailmapService,
	exportService *services.ExportService,
	jobService *services.JobService,
) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	projectHandler := handlers.NewProjectHandler(projectRepo, authorRepo, jobService)
	mailmapHandler := handlers.NewMailmapHandler(mailmapService, resolveService, githubService, projectRepo)
	exportHandler := handlers.NewExportHandler(exportService, projectRepo)

	router.GET("/health", healthHandler.Health)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthRequired())
	{
		api.POST("/projects", projectHandler.CreateProject)
		api.GET("/projects", projectHandler.ListProjects)
		api.GET("/projects/:id", projectHandler.GetProject)
		api.DELETE("/projects/:id", projectHandler.DeleteProject)

		api.GET("/projects/:id/rules", mailmapHandler.ListRules)
		api.POST("/projects/:id/rules", mailmapHandler.CreateRule)
		api.DELETE("/projects/:id/rules/:ruleId", mailmapHandler.DeleteRule)
		api.POST("/projects/:id/mailmap/import", mailmapHandler.ImportMailmap)
		api.POST("/projects/:id/mailmap/import/github", mailmapHandler.ImportFromGitHub)

		api.GET("/projects/:id/resolve", mailmapHandler.Resolve)
		api.POST("/projects/:id/resolve-signature", mailmapHandler.ResolveSignature)

		api.POST("/projects/:id/scan", projectHandler.EnqueueScan)
		api.GET("/projects/:id/jobs", projectHandler.ListJobs)
		api.GET("/projects/:id/authors", projectHandler.ListAuthors)
		api.GET("/projects/:id/authors/export", exportHandler.ExportAuthors)
	}
}
