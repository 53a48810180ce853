package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rahul4469/compiler-craft/internal/models"
	"github.com/rahul4469/compiler-craft/internal/render"
	"github.com/rahul4469/compiler-craft/internal/services"
	"github.com/rahul4469/compiler-craft/internal/views"
)

// AnalyzeController serves the analysis, explanation and chat API and the
// per-phase HTML fragment.
type AnalyzeController struct {
	tutor          *services.Tutor
	store          models.AnalysisStore
	templates      AnalyzeTemplates
	maxSourceBytes int
}

// AnalyzeTemplates holds the templates for analysis fragments.
type AnalyzeTemplates struct {
	Fragment *views.Template
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(
	tutor *services.Tutor,
	store models.AnalysisStore,
	templates AnalyzeTemplates,
	maxSourceBytes int,
) *AnalyzeController {
	return &AnalyzeController{
		tutor:          tutor,
		store:          store,
		templates:      templates,
		maxSourceBytes: maxSourceBytes,
	}
}

// bodyLimit leaves room for JSON escaping and the analysis a chat request
// carries along with the source.
func (c *AnalyzeController) bodyLimit() int64 {
	return int64(c.maxSourceBytes)*4 + 1<<20
}

type analyzeRequest struct {
	Code string `json:"code"`
}

// PostAnalyze analyzes the submitted code and returns the AnalysisResult.
// The stored analysis id is returned in the X-Analysis-Id header.
func (c *AnalyzeController) PostAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if status, msg := decodeJSON(w, r, c.bodyLimit(), &req); status != 0 {
		writeError(w, r, status, msg, nil)
		return
	}

	if req.Code == "" {
		writeError(w, r, http.StatusBadRequest, "Code is required", nil)
		return
	}
	if len(req.Code) > c.maxSourceBytes {
		writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("Code must be at most %d bytes", c.maxSourceBytes), nil)
		return
	}

	stored, err := c.tutor.Analyze(r.Context(), req.Code)
	if err != nil {
		writeModelError(w, r, err)
		return
	}

	w.Header().Set("X-Analysis-Id", stored.ID.String())
	writeJSON(w, http.StatusOK, stored.Result)
}

type explainRequest struct {
	Code         string `json:"code"`
	PhaseName    string `json:"phaseName"`
	PhaseContext string `json:"phaseContext"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
	HTML        string `json:"html"`
}

// PostExplain returns a deeper explanation of one phase.
func (c *AnalyzeController) PostExplain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if status, msg := decodeJSON(w, r, c.bodyLimit(), &req); status != 0 {
		writeError(w, r, status, msg, nil)
		return
	}

	if req.Code == "" || req.PhaseName == "" || req.PhaseContext == "" {
		writeError(w, r, http.StatusBadRequest, "Missing required fields: code, phaseName, phaseContext", nil)
		return
	}

	explanation, err := c.tutor.ExplainPhase(r.Context(), req.Code, req.PhaseName, req.PhaseContext)
	if err != nil {
		writeModelError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, explainResponse{
		Explanation: explanation,
		HTML:        string(render.Markdown(explanation)),
	})
}

type chatRequest struct {
	Code        string                `json:"code"`
	Analysis    json.RawMessage       `json:"analysis"`
	ChatHistory *[]models.ChatMessage `json:"chatHistory"`
	Question    string                `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
	HTML   string `json:"html"`
}

// PostChat answers a follow-up question. The analysis is optional; when
// present it must be a well-formed AnalysisResult.
func (c *AnalyzeController) PostChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if status, msg := decodeJSON(w, r, c.bodyLimit(), &req); status != 0 {
		writeError(w, r, status, msg, nil)
		return
	}

	if req.ChatHistory == nil || req.Question == "" {
		writeError(w, r, http.StatusBadRequest, "Missing required fields: chatHistory, question", nil)
		return
	}

	var analysis *models.AnalysisResult
	if len(req.Analysis) > 0 && string(req.Analysis) != "null" {
		var err error
		if analysis, err = models.ValidateAnalysis(req.Analysis); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	answer, err := c.tutor.Ask(r.Context(), req.Code, analysis, *req.ChatHistory, req.Question)
	if err != nil {
		if errors.Is(err, models.ErrInvalidChatHistory) {
			writeError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		writeModelError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Answer: answer,
		HTML:   string(render.Markdown(answer)),
	})
}

// GetAnalysis returns a stored AnalysisResult.
func (c *AnalyzeController) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	stored, ok := c.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stored.Result)
}

// AnalysisView is the data for the "analysis" fragment: the result header,
// the error if any, and one phase with its navigation.
type AnalysisView struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	IsValidCode bool
	Error       *models.AnalysisError
	HasPhase    bool
	Phase       models.PhaseRecord
	Output      render.PhaseOutput
	Index       int
	Total       int
}

// GetPhaseFragment renders the analysis panel showing phase {index}.
func (c *AnalyzeController) GetPhaseFragment(w http.ResponseWriter, r *http.Request) {
	stored, ok := c.lookup(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Phase not found", nil)
		return
	}

	view := AnalysisView{
		ID:          stored.ID,
		CreatedAt:   stored.CreatedAt,
		IsValidCode: stored.Result.IsValidCode,
		Error:       stored.Result.Error,
		Index:       index,
		Total:       len(stored.Result.Phases),
	}
	if phase, ok := stored.Result.Phase(index); ok {
		view.HasPhase = true
		view.Phase = phase
		view.Output = render.ClassifyPhase(phase)
	} else if index != 0 {
		writeError(w, r, http.StatusNotFound, "Phase not found", nil)
		return
	}

	c.templates.Fragment.ExecuteFragment(w, r, "analysis", view)
}

// lookup loads the analysis named by the {id} URL parameter, writing a 404
// when it does not exist.
func (c *AnalyzeController) lookup(w http.ResponseWriter, r *http.Request) (*models.StoredAnalysis, bool) {
	return lookupAnalysis(w, r, c.store)
}

func lookupAnalysis(w http.ResponseWriter, r *http.Request, store models.AnalysisStore) (*models.StoredAnalysis, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Analysis not found", nil)
		return nil, false
	}

	stored, err := store.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrAnalysisNotFound) {
			writeError(w, r, http.StatusNotFound, "Analysis not found", nil)
			return nil, false
		}
		writeError(w, r, http.StatusInternalServerError, "Failed to load analysis", err)
		return nil, false
	}
	return stored, true
}

// writeModelError maps Tutor failures to responses. Transport and storage
// failures get a fixed message; the detail is only logged.
func writeModelError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, r, http.StatusBadGateway, "The model returned a malformed analysis: "+vErr.Field+" "+vErr.Reason, err)
	case errors.Is(err, models.ErrEmptySource):
		writeError(w, r, http.StatusBadRequest, "Code is required", nil)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "The model did not answer in time. Please try again.", err)
	default:
		writeError(w, r, http.StatusInternalServerError, msgModelUnavailable, err)
	}
}

const msgModelUnavailable = "The AI tutor could not complete the request. Please try again."
