package validation

import "errors"

// Sentinel kinds for participant validation.
var (
	ErrMissingID    = errors.New("participant id is required")
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidSkill = errors.New("skill must be between 1 and 10")
	ErrInvalidScore = errors.New("score must be between 0 and 100")
)
