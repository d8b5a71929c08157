package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyToken      = errors.New("access token is empty")

	// Input errors
	ErrInvalidProjectID = errors.New("invalid project id")
)

// Context keys for error values
const (
	ProjectIDKey = "project_id"
	CategoryKey  = "category"
	SessionIDKey = "session_id"
)
