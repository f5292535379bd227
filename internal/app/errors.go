package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrStopped          = errors.New("service stopped")
	ErrNoParticipants   = errors.New("no participants registered")
	ErrFormationTimeout = errors.New("team formation timed out")
	ErrInvalidSurvey    = errors.New("invalid survey")
)
