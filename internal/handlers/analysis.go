package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/wicaksana/reportportal/internal/middleware"
	"github.com/wicaksana/reportportal/internal/services"
	"github.com/wicaksana/reportportal/pkg/response"
)

type AnalysisHandler struct {
	analysisService *services.AnalysisService
	queue           services.TaskQueue
}

func NewAnalysisHandler(analysis *services.AnalysisService, queue services.TaskQueue) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysis,
		queue:           queue,
	}
}

// Generate starts a best-effort analysis run for the project
// POST /api/projects/:id/analysis
func (h *AnalysisHandler) Generate(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	username := middleware.GetUsername(c)
	if err := h.analysisService.Begin(username, projectID); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.queue.Enqueue(&services.AnalysisTask{
		ProjectID: projectID,
		Username:  username,
	}); err != nil {
		// the task never reached a worker, release the busy flag so the
		// project can retry
		h.analysisService.Abort(projectID)
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"status": "running"})
}

// Get returns the latest analysis state for the project
// GET /api/projects/:id/analysis
func (h *AnalysisHandler) Get(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	state, err := h.analysisService.State(middleware.GetUsername(c), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, state)
}
