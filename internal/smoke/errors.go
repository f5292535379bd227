package smoke

import "errors"

// Sentinel kinds for smoke run failures.
var (
	ErrUnhealthy  = errors.New("service unhealthy")
	ErrUnexpected = errors.New("unexpected response")
	ErrNoneStored = errors.New("no participants registered")
)
