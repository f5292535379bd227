package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound           = errors.New("participant not found")
	ErrDuplicateID        = errors.New("duplicate participant id")
	ErrDuplicateEmail     = errors.New("duplicate participant email")
	ErrInvalidParticipant = errors.New("invalid participant")
	ErrNoFormation        = errors.New("no formation recorded")
)
