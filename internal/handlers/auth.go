package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wicaksana/reportportal/internal/middleware"
	"github.com/wicaksana/reportportal/internal/services"
	"github.com/wicaksana/reportportal/pkg/response"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService    *services.AuthService
	challenges     *services.ChallengeService
	projectService *services.ProjectService
}

func NewAuthHandler(db *gorm.DB, challenges *services.ChallengeService, projects *services.ProjectService) *AuthHandler {
	return &AuthHandler{
		authService:    services.NewAuthService(db, challenges),
		challenges:     challenges,
		projectService: projects,
	}
}

// Captcha issues a fresh login challenge
// GET /api/auth/captcha
func (h *AuthHandler) Captcha(c *gin.Context) {
	challenge, err := h.challenges.Issue()
	if err != nil {
		response.ServerError(c, "failed to issue challenge")
		return
	}
	response.Success(c, challenge)
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		services.LogWarning("auth", "login_failed", "login failed for "+req.Username, nil, c.ClientIP(), c.Request.UserAgent())
		// The failed attempt consumed the challenge, so hand the client
		// a fresh one alongside the error.
		if fresh, issueErr := h.challenges.Issue(); issueErr == nil {
			c.JSON(http.StatusUnauthorized, response.Response{
				Code:    401,
				Message: err.Error(),
				Data:    fresh,
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	services.LogInfo("auth", "login", req.Username+" logged in", &resp.User.ID, c.ClientIP(), c.Request.UserAgent())
	response.Success(c, resp)
}

// Me returns the current logged-in user
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// Logout clears the user's project selection. Token invalidation is
// client-side.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	username := middleware.GetUsername(c)
	h.projectService.ClearActive(username)
	response.Success(c, gin.H{"message": "logged out successfully"})
}
