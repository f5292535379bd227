package cli

import "errors"

// Sentinel kinds for CLI errors.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidAnswer    = errors.New("invalid answer")
	ErrInvalidCount     = errors.New("invalid count")
	ErrSmokeFailed      = errors.New("smoke run failed")
)
