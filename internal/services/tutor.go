package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/rahul4469/compiler-craft/internal/crypto"
	"github.com/rahul4469/compiler-craft/internal/models"
	"github.com/rahul4469/compiler-craft/internal/report"
)

const DefaultModelTimeout = 120 * time.Second

// Tutor answers the three kinds of questions the UI asks: analyze a
// snippet, explain one phase in depth, and follow-up chat.
type Tutor struct {
	model   Model
	store   models.AnalysisStore
	reports *report.Writer
	logger  *zap.Logger
	timeout time.Duration

	inflight singleflight.Group
}

// NewTutor wires a Tutor. reports may be nil to skip report persistence.
func NewTutor(model Model, store models.AnalysisStore, reports *report.Writer, logger *zap.Logger, timeout time.Duration) *Tutor {
	if timeout <= 0 {
		timeout = DefaultModelTimeout
	}
	return &Tutor{
		model:   model,
		store:   store,
		reports: reports,
		logger:  logger,
		timeout: timeout,
	}
}

// Analyze returns the stored analysis for code. A stored valid-code
// analysis of the same source is reused; otherwise the model is asked, so an
// invalid-code verdict can be retried. Concurrent calls for the same source
// share one model call, which keeps running while any caller waits for it.
func (t *Tutor) Analyze(ctx context.Context, code string) (*models.StoredAnalysis, error) {
	if code == "" {
		return nil, models.ErrEmptySource
	}

	digest := crypto.SourceDigest(code)
	// The shared call must not die with whichever caller started it; the
	// model timeout in generate still bounds it.
	shared := context.WithoutCancel(ctx)
	ch := t.inflight.DoChan(digest, func() (any, error) {
		return t.analyze(shared, code, digest)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.StoredAnalysis), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *Tutor) analyze(ctx context.Context, code, digest string) (*models.StoredAnalysis, error) {
	log := t.logger.With(zap.String("digest", digest[:16]))

	cached, err := t.store.ByDigest(ctx, digest)
	switch {
	case err == nil && cached.Result.IsValidCode:
		log.Debug("Analysis cache hit", zap.String("analysis_id", cached.ID.String()))
		t.saveReport(code, cached.Result)
		return cached, nil
	case err == nil:
		log.Debug("Retrying analysis of code previously judged invalid", zap.String("analysis_id", cached.ID.String()))
	case !errors.Is(err, models.ErrAnalysisNotFound):
		return nil, fmt.Errorf("failed to look up analysis: %w", err)
	}

	start := time.Now()
	raw, err := t.generate(ctx, Request{
		SystemInstruction: analyzeSystemInstruction,
		Prompt:            analyzePrompt(code),
		Analysis:          true,
	})
	if err != nil {
		return nil, err
	}

	result, err := models.ValidateAnalysis([]byte(strings.TrimSpace(raw)))
	if err != nil {
		log.Warn("Model returned an invalid analysis", zap.Error(err))
		return nil, err
	}

	stored, err := t.store.Create(ctx, code, result)
	if err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}

	log.Info("Analysis complete",
		zap.String("analysis_id", stored.ID.String()),
		zap.Bool("is_valid_code", result.IsValidCode),
		zap.Int("phases", len(result.Phases)),
		zap.Duration("duration", time.Since(start)),
	)

	t.saveReport(code, result)
	return stored, nil
}

func (t *Tutor) saveReport(code string, result *models.AnalysisResult) {
	if t.reports != nil {
		t.reports.Save(code, result)
	}
}

// ExplainPhase returns a markdown explanation of one phase for code.
func (t *Tutor) ExplainPhase(ctx context.Context, code, phaseName, phaseContext string) (string, error) {
	return t.generate(ctx, Request{
		SystemInstruction: explainSystemInstruction,
		Prompt:            explainPrompt(code, phaseName, phaseContext),
	})
}

// Ask answers a follow-up question. analysis may be nil when the user has
// not analyzed anything yet.
func (t *Tutor) Ask(ctx context.Context, code string, analysis *models.AnalysisResult, history []models.ChatMessage, question string) (string, error) {
	for i, msg := range history {
		if !msg.IsValid() {
			return "", fmt.Errorf("chatHistory[%d]: %w", i, models.ErrInvalidChatHistory)
		}
	}

	prompt, err := chatPrompt(code, analysis, question)
	if err != nil {
		return "", err
	}

	return t.generate(ctx, Request{
		SystemInstruction: chatSystemInstruction(analysis != nil),
		History:           history,
		Prompt:            prompt,
	})
}

// ModelName reports which model answers requests.
func (t *Tutor) ModelName() string {
	return t.model.Name()
}

func (t *Tutor) generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	text, err := t.model.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", t.model.Name(), err)
	}
	return text, nil
}
