package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/okian/teammate/internal/adapters/repository"
	service "github.com/okian/teammate/internal/app"
	"github.com/okian/teammate/internal/domain/model"
	"github.com/okian/teammate/internal/domain/types"
	"github.com/okian/teammate/internal/domain/validation"
	"github.com/okian/teammate/pkg/logger"
)

// ParticipantDependencies defines the roster operations behind /participants.
type ParticipantDependencies interface {
	RegisterSurvey(ctx context.Context, in service.SurveyInput) (model.Participant, error)
	Import(ctx context.Context, r io.Reader) (service.ImportReport, error)
	Participant(ctx context.Context, key string) (model.Participant, error)
	Participants(ctx context.Context) ([]model.Participant, error)
	Edit(ctx context.Context, id string, patch repository.Patch) (model.Participant, error)
	Validate(ctx context.Context) (validation.Report, error)
}

// ParticipantsHandler handles participant registration, import and edits.
type ParticipantsHandler struct {
	deps     ParticipantDependencies
	maxBytes int64
	log      logger.Logger
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(deps ParticipantDependencies, maxBytes int64, log logger.Logger) *ParticipantsHandler {
	return &ParticipantsHandler{deps: deps, maxBytes: maxBytes, log: log}
}

// patchRequest mirrors the body of PATCH /participants/{key}. Absent fields
// are left unchanged.
type patchRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Activity *string `json:"activity"`
	Role     *string `json:"role"`
	Skill    *int    `json:"skill"`
}

func (p patchRequest) toPatch() repository.Patch {
	return repository.Patch{
		Name:     p.Name,
		Email:    p.Email,
		Activity: p.Activity,
		Role:     p.Role,
		Skill:    p.Skill,
	}
}

type lineErrorResponse struct {
	Line  int    `json:"line"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

type importResponse struct {
	Lines      int                 `json:"lines"`
	Added      int                 `json:"added"`
	LineErrors []lineErrorResponse `json:"lineErrors"`
	Rejected   []service.Rejection `json:"rejected"`
}

// HandleList handles GET /participants requests.
func (h *ParticipantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_participants"
	ps, err := h.deps.Participants(r.Context())
	if err != nil {
		fail(r.Context(), h.log, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.FromParticipants(ps))
}

// HandleRegister handles POST /participants requests carrying a survey.
func (h *ParticipantsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	const op = "api.register_participant"
	var in service.SurveyInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		fail(r.Context(), h.log, w, WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.RegisterSurvey(r.Context(), in)
	if err != nil {
		fail(r.Context(), h.log, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, types.FromParticipant(p))
}

// HandleImport handles POST /participants/import with a CSV roster body.
func (h *ParticipantsHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import_participants"
	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	report, err := h.deps.Import(r.Context(), body)
	if err != nil {
		fail(r.Context(), h.log, w, Wrap(op, err))
		return
	}

	resp := importResponse{
		Lines:      report.Lines,
		Added:      report.Added,
		LineErrors: make([]lineErrorResponse, len(report.LineErrors)),
		Rejected:   report.Rejected,
	}
	for i, le := range report.LineErrors {
		resp.LineErrors[i] = lineErrorResponse{Line: le.Line, Text: le.Text, Error: le.Err.Error()}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /participants/{key}, where key is an ID or email.
func (h *ParticipantsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_participant"
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		fail(r.Context(), h.log, w, NewKind(op, ErrBadRequest))
		return
	}
	p, err := h.deps.Participant(r.Context(), key)
	if err != nil {
		fail(r.Context(), h.log, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.FromParticipant(p))
}

// HandlePatch handles PATCH /participants/{key}.
func (h *ParticipantsHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.patch_participant"
	var req patchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		fail(r.Context(), h.log, w, WrapKind(op, ErrBadRequest, err))
		return
	}
	patch := req.toPatch()
	if patch.Empty() {
		fail(r.Context(), h.log, w, NewKind(op, ErrBadRequest))
		return
	}

	p, err := h.deps.Edit(r.Context(), r.PathValue("key"), patch)
	if err != nil {
		fail(r.Context(), h.log, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.FromParticipant(p))
}

// HandleValidate handles GET /validate requests.
func (h *ParticipantsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate"
	report, err := h.deps.Validate(r.Context())
	if err != nil {
		fail(r.Context(), h.log, w, Wrap(op, err))
		return
	}
	if report.Issues == nil {
		report.Issues = []validation.Issue{}
	}
	writeJSON(w, http.StatusOK, report)
}
