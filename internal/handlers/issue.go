package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/wicaksana/reportportal/internal/middleware"
	"github.com/wicaksana/reportportal/internal/services"
	"github.com/wicaksana/reportportal/pkg/response"
)

type IssueHandler struct {
	issueService *services.IssueService
}

func NewIssueHandler(issues *services.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issues}
}

// List returns a project's issues, optionally filtered by ?q=
// GET /api/projects/:id/issues
func (h *IssueHandler) List(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	issues, err := h.issueService.Search(middleware.GetUsername(c), projectID, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, issues)
}

// Create records a new issue
// POST /api/projects/:id/issues
func (h *IssueHandler) Create(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	issue, err := h.issueService.Add(middleware.GetUsername(c), projectID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, issue)
}

// Delete removes an issue
// DELETE /api/projects/:id/issues/:issueId
func (h *IssueHandler) Delete(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	issueID, ok := parseID(c, "issueId")
	if !ok {
		return
	}

	if err := h.issueService.Remove(middleware.GetUsername(c), projectID, issueID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "issue deleted"})
}

// Resolve closes an issue with a correction
// PUT /api/projects/:id/issues/:issueId/resolve
func (h *IssueHandler) Resolve(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	issueID, ok := parseID(c, "issueId")
	if !ok {
		return
	}

	var req services.ResolveIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	issue, err := h.issueService.Resolve(middleware.GetUsername(c), projectID, issueID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, issue)
}

// UpdateStatus moves an issue between OPEN and IN_PROGRESS
// PUT /api/projects/:id/issues/:issueId/status
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	issueID, ok := parseID(c, "issueId")
	if !ok {
		return
	}

	var req services.UpdateIssueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	issue, err := h.issueService.UpdateStatus(middleware.GetUsername(c), projectID, issueID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, issue)
}
