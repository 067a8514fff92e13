package main

import (
	"context"
	"time"

	"github.com/wicaksana/reportportal/internal/config"
	"github.com/wicaksana/reportportal/internal/handlers"
	"github.com/wicaksana/reportportal/internal/models"
	"github.com/wicaksana/reportportal/internal/services"
	"github.com/wicaksana/reportportal/internal/utils"
	"github.com/wicaksana/reportportal/pkg/logger"
)

// appServices holds all initialized services and handlers.
type appServices struct {
	challenges      *services.ChallengeService
	projectService  *services.ProjectService
	analysisService *services.AnalysisService
	scheduler       *services.Scheduler
	taskQueue       services.TaskQueue
	worker          *services.Worker

	authHandler      *handlers.AuthHandler
	projectHandler   *handlers.ProjectHandler
	issueHandler     *handlers.IssueHandler
	dashboardHandler *handlers.DashboardHandler
	reportHandler    *handlers.ReportHandler
	analysisHandler  *handlers.AnalysisHandler
	systemLogHandler *handlers.SystemLogHandler
	healthHandler    *handlers.HealthHandler
}

// bootstrap initializes database, services, schedulers and handlers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	services.InitSystemLogger(models.GetDB())

	challenges := services.NewChallengeService(
		cfg.Captcha.Length,
		time.Duration(cfg.Captcha.TTLMinutes)*time.Minute,
	)

	projectService := services.NewProjectService(models.GetDB())
	issueService := services.NewIssueService(models.GetDB(), projectService)
	dashboardService := services.NewDashboardService(models.GetDB(), projectService)
	reportService := services.NewReportService(projectService)
	analysisService := services.NewAnalysisService(projectService, &cfg.AI)

	scheduler := services.NewScheduler(models.GetDB(), challenges)
	if err := scheduler.Start(); err != nil {
		logger.Warn().Err(err).Msg("Failed to start maintenance scheduler")
	}

	processAnalysis := func(ctx context.Context, task *services.AnalysisTask) error {
		analysisService.Analyze(ctx, task.Username, task.ProjectID)
		return nil
	}

	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(processAnalysis)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(processAnalysis)
			if err := worker.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start analysis worker")
			}
		}
	}

	return &appServices{
		challenges:      challenges,
		projectService:  projectService,
		analysisService: analysisService,
		scheduler:       scheduler,
		taskQueue:       taskQueue,
		worker:          worker,

		authHandler:      handlers.NewAuthHandler(models.GetDB(), challenges, projectService),
		projectHandler:   handlers.NewProjectHandler(projectService),
		issueHandler:     handlers.NewIssueHandler(issueService),
		dashboardHandler: handlers.NewDashboardHandler(dashboardService),
		reportHandler:    handlers.NewReportHandler(reportService),
		analysisHandler:  handlers.NewAnalysisHandler(analysisService, taskQueue),
		systemLogHandler: handlers.NewSystemLogHandler(services.NewSystemLogService(models.GetDB())),
		healthHandler:    handlers.NewHealthHandler(),
	}
}

// shutdown gracefully stops schedulers, workers and the queue.
func (s *appServices) shutdown() {
	s.scheduler.Stop()
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("shutdown complete")
}
