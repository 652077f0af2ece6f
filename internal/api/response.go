// Package api holds the JSON bodies shared by every HTTP handler.
package api

import "prep_tracker/internal/shared/scoped"

// ErrorResponse is the body of every non-2xx response. Fields is set only for validation failures.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []scoped.FieldError `json:"fields,omitempty"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// Error messages shared across handlers.
const (
	MsgInvalidID      = "invalid id"
	MsgInvalidBody    = "invalid request body"
	MsgValidation     = "validation failed"
	MsgNotFound       = "not found"
	MsgInternal       = "internal server error"
	MsgUnauthorized   = "unauthorized"
	MsgInvalidToken   = "invalid token"
	MsgMissingBearer  = "missing bearer token"
	MsgServiceFailure = "service unavailable"
)
