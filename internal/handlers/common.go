package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/wicaksana/reportportal/internal/services"
	"github.com/wicaksana/reportportal/pkg/response"
)

// respondServiceError maps service sentinel errors to HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrChallengeMismatch),
		errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAnalysisRunning):
		response.Conflict(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}
