package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/teammate/internal/adapters/repository"
	"github.com/okian/teammate/internal/adapters/roster"
	service "github.com/okian/teammate/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrPayloadTooLarge = errors.New("payload too large")
)

// OpError tags an error with the handler operation that produced it.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	case e.Kind == nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *OpError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of the given kind for op.
func NewKind(op string, kind error) error {
	return &OpError{Op: op, Kind: kind}
}

// WrapKind returns err tagged with op and kind.
func WrapKind(op string, kind, err error) error {
	return &OpError{Op: op, Kind: kind, Err: err}
}

// Wrap tags err with op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// classify maps an error to an HTTP status and an envelope code.
func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrNoFormation):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrDuplicateID), errors.Is(err, repository.ErrDuplicateEmail):
		return http.StatusConflict, "conflict"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, repository.ErrInvalidParticipant),
		errors.Is(err, service.ErrInvalidSurvey),
		errors.Is(err, roster.ErrUnknownFormat):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrNoParticipants):
		return http.StatusUnprocessableEntity, "no_participants"
	case errors.Is(err, service.ErrFormationTimeout):
		return http.StatusServiceUnavailable, "timeout"
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, service.ErrStopped):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
