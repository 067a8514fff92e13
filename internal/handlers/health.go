package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wicaksana/reportportal/internal/models"
	"github.com/wicaksana/reportportal/internal/services"
)

// HealthHandler reports subsystem status.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check returns the health status of the database and queue
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	queueMode := "sync"
	if queue := services.GetTaskQueue(); queue != nil && queue.IsAsync() {
		queueMode = "async"
	}

	status := http.StatusOK
	if overall != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   overall,
		"database": dbStatus,
		"queue":    queueMode,
	})
}
