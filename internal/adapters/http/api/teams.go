package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/teammate/internal/adapters/roster"
	service "github.com/okian/teammate/internal/app"
	"github.com/okian/teammate/internal/domain/types"
	"github.com/okian/teammate/pkg/logger"
)

// TeamDependencies defines the formation operations behind /teams.
type TeamDependencies interface {
	FormTeams(ctx context.Context, req service.FormRequest) (types.Formation, error)
	LastFormation(ctx context.Context) (types.Formation, error)
	ExportTeams(ctx context.Context, w io.Writer, format string) error
}

// TeamsHandler handles formation runs and exports.
type TeamsHandler struct {
	deps TeamDependencies
	log  logger.Logger
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies, log logger.Logger) *TeamsHandler {
	return &TeamsHandler{deps: deps, log: log}
}

var contentTypes = map[string]string{
	roster.FormatCSV:  "text/csv; charset=utf-8",
	roster.FormatJSON: "application/json; charset=utf-8",
	roster.FormatYAML: "application/yaml; charset=utf-8",
}

// HandleForm handles POST /teams. Omitted fields use the service defaults;
// sizes below the engine minimums are clamped, not rejected.
func (h *TeamsHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	const op = "api.form_teams"
	var req service.FormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(r.Context(), h.log, w, WrapKind(op, ErrBadRequest, err))
		return
	}

	f, err := h.deps.FormTeams(r.Context(), req)
	if err != nil {
		fail(r.Context(), h.log, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// HandleLast handles GET /teams and returns the latest formation.
func (h *TeamsHandler) HandleLast(w http.ResponseWriter, r *http.Request) {
	const op = "api.last_formation"
	f, err := h.deps.LastFormation(r.Context())
	if err != nil {
		fail(r.Context(), h.log, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// HandleExport handles GET /teams/export?format=csv|json|yaml.
func (h *TeamsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_teams"
	format, err := roster.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		fail(r.Context(), h.log, w, WrapKind(op, ErrBadRequest, err))
		return
	}

	var buf bytes.Buffer
	if err := h.deps.ExportTeams(r.Context(), &buf, format); err != nil {
		fail(r.Context(), h.log, w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", `attachment; filename="teams.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
