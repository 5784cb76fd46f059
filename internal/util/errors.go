package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrResponseNotFound   = errors.New("response not found")
	ErrNarrativeNotFound  = errors.New("narrative not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation failed")
	ErrFeedbackDisabled   = errors.New("feedback generator not configured")
	ErrClassifierDisabled = errors.New("emotion classifier not configured")
)
