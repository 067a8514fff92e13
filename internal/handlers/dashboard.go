package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/wicaksana/reportportal/internal/middleware"
	"github.com/wicaksana/reportportal/internal/services"
	"github.com/wicaksana/reportportal/pkg/response"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboard}
}

// Stats returns the dashboard aggregates for the current user
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(middleware.GetUsername(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, stats)
}
