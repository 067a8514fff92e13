package main

import (
	"github.com/gin-gonic/gin"
	"github.com/wicaksana/reportportal/internal/middleware"
	"github.com/wicaksana/reportportal/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Brute-force protection for the login flow
	loginLimiter := middleware.NewRateLimiter(5, 10)

	r.GET("/health", svc.healthHandler.Check)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.GET("/captcha", svc.authHandler.Captcha)
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			protected.GET("/auth/me", svc.authHandler.Me)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			protected.GET("/dashboard/stats", svc.dashboardHandler.Stats)

			protected.GET("/projects", svc.projectHandler.List)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.GET("/projects/active", svc.projectHandler.GetActive)
			protected.PUT("/projects/active", svc.projectHandler.SetActive)
			protected.GET("/projects/:id", svc.projectHandler.GetByID)
			protected.PUT("/projects/:id", svc.projectHandler.Update)

			protected.GET("/projects/:id/issues", svc.issueHandler.List)
			protected.POST("/projects/:id/issues", svc.issueHandler.Create)
			protected.DELETE("/projects/:id/issues/:issueId", svc.issueHandler.Delete)
			protected.PUT("/projects/:id/issues/:issueId/resolve", svc.issueHandler.Resolve)
			protected.PUT("/projects/:id/issues/:issueId/status", svc.issueHandler.UpdateStatus)

			protected.POST("/projects/:id/report/preview", svc.reportHandler.Preview)

			protected.POST("/projects/:id/analysis", svc.analysisHandler.Generate)
			protected.GET("/projects/:id/analysis", svc.analysisHandler.Get)

			protected.GET("/system-logs", svc.systemLogHandler.List)
		}
	}
}
