package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rahul4469/compiler-craft/internal/models"
	"github.com/rahul4469/compiler-craft/internal/report"
)

// ReportController serves plain-text downloads of stored analyses.
type ReportController struct {
	store models.AnalysisStore
}

func NewReportController(store models.AnalysisStore) *ReportController {
	return &ReportController{store: store}
}

// GetReport downloads the full report. The body is the same text the
// server persisted when the analysis completed.
func (c *ReportController) GetReport(w http.ResponseWriter, r *http.Request) {
	stored, ok := lookupAnalysis(w, r, c.store)
	if !ok {
		return
	}

	if !stored.Result.IsValidCode {
		writeError(w, r, http.StatusConflict, "A report is only available for valid code", nil)
		return
	}

	writeAttachment(w, report.Filename, report.Assemble(stored.Source, stored.Result))
}

// GetPhaseDownload downloads one phase's output description.
func (c *ReportController) GetPhaseDownload(w http.ResponseWriter, r *http.Request) {
	stored, ok := lookupAnalysis(w, r, c.store)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Phase not found", nil)
		return
	}
	phase, ok := stored.Result.Phase(index)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Phase not found", nil)
		return
	}

	writeAttachment(w, report.PhaseFilename(phase.Name), report.PhaseOutput(phase))
}

func writeAttachment(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
