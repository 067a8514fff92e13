package services

import "errors"

// Sentinel errors services return so handlers can map them to HTTP statuses.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrChallengeMismatch  = errors.New("challenge answer mismatch")
	ErrNotFound           = errors.New("not found")
	ErrAnalysisRunning    = errors.New("analysis already running")
)
