package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/wicaksana/reportportal/internal/middleware"
	"github.com/wicaksana/reportportal/internal/services"
	"github.com/wicaksana/reportportal/pkg/response"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reports}
}

// Preview renders the daily report message and deep link
// POST /api/projects/:id/report/preview
func (h *ReportHandler) Preview(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	preview, err := h.reportService.Preview(middleware.GetUsername(c), projectID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, preview)
}
