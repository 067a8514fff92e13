package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wicaksana/reportportal/internal/middleware"
	"github.com/wicaksana/reportportal/internal/services"
	"github.com/wicaksana/reportportal/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projects}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// List returns the user's projects with issues
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.ListVisible(middleware.GetUsername(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, projects)
}

// GetByID returns one of the user's projects
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(middleware.GetUsername(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

// Create creates a new project
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(middleware.GetUsername(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, project)
}

// Update applies a partial update to a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(middleware.GetUsername(c), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

// GetActive resolves the user's selected project
// GET /api/projects/active
func (h *ProjectHandler) GetActive(c *gin.Context) {
	project, err := h.projectService.GetActive(middleware.GetUsername(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

// SetActive records the user's selected project
// PUT /api/projects/active
func (h *ProjectHandler) SetActive(c *gin.Context) {
	var req struct {
		ProjectID uint `json:"project_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.SetActive(middleware.GetUsername(c), req.ProjectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}
