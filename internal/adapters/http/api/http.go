// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/teammate/internal/app"
	"github.com/okian/teammate/pkg/logger"
)

const defaultMaxImportBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ParticipantDependencies
	TeamDependencies
	StatsProvider
}

// Compile-time check that the service satisfies the handler contracts.
var _ Dependencies = (*service.Service)(nil)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	participantsHandler *ParticipantsHandler
	teamsHandler        *TeamsHandler
	dashboardHandler    *dashboardHandler

	maxImportBytes int64
	log            logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		maxImportBytes: defaultMaxImportBytes,
		log:            logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.participantsHandler = NewParticipantsHandler(deps, s.maxImportBytes, s.log)
	s.teamsHandler = NewTeamsHandler(deps, s.log)
	s.dashboardHandler = newDashboardHandler()
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("GET /dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	p := s.participantsHandler
	mux.HandleFunc("GET /participants", MetricsMiddleware(p.HandleList, "participants"))
	mux.HandleFunc("POST /participants", MetricsMiddleware(p.HandleRegister, "participants"))
	mux.HandleFunc("POST /participants/import", MetricsMiddleware(p.HandleImport, "participants_import"))
	mux.HandleFunc("GET /participants/{key}", MetricsMiddleware(p.HandleGet, "participant"))
	mux.HandleFunc("PATCH /participants/{key}", MetricsMiddleware(p.HandlePatch, "participant"))
	mux.HandleFunc("GET /validate", MetricsMiddleware(p.HandleValidate, "validate"))

	t := s.teamsHandler
	mux.HandleFunc("POST /teams", MetricsMiddleware(t.HandleForm, "teams"))
	mux.HandleFunc("GET /teams", MetricsMiddleware(t.HandleLast, "teams"))
	mux.HandleFunc("GET /teams/export", MetricsMiddleware(t.HandleExport, "teams_export"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes err with the status its kind maps to. Server-side failures
// are logged; client mistakes are not.
func fail(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.String("code", code), logger.Error(err))
	}
	writeError(w, status, code, err)
}
