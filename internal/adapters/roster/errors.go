package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrTooFewColumns = errors.New("too few columns")
	ErrEmptyID       = errors.New("empty id")
	ErrUnknownFormat = errors.New("unknown export format")
)
