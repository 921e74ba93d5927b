package models

import "errors"

var (
	ErrRequiredCountMissing   = errors.New("counter actions require a count of at least 1")
	ErrRequiredCountForbidden = errors.New("required count is only valid for counter actions")
	ErrInvalidCompletionMode  = errors.New("invalid completion mode")
	ErrInvalidTimeRange       = errors.New("invalid time range")
	ErrInvalidReminder        = errors.New("invalid reminder")
	ErrInvalidNodeType        = errors.New("invalid node type")
)
