package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-backend/internal/ai"
	"portfolio-backend/internal/analysis/engine"
	"portfolio-backend/internal/extract"
	"portfolio-backend/internal/pagemeta"
	"portfolio-backend/internal/portfolios"
	"portfolio-backend/internal/queue"
	"portfolio-backend/internal/shared/cache"
	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/storage/object"
	"portfolio-backend/internal/shared/telemetry"
)

// aiTimeout bounds one model call. When the model does not answer in
// time the run falls back to the deterministic engine.
const aiTimeout = 15 * time.Second

var ErrInProgress = errors.New("analysis already in progress")

// Service contains business logic for analyses.
type Service struct {
	Repo       Repo
	Portfolios portfolios.Repo
	Store      object.ObjectStore
	AI         ai.Client
	Model      string
	Cache      *cache.ResultCache
	Meta       *pagemeta.Fetcher
	// Queue, when set, dispatches runs to a worker instead of an
	// in-process goroutine.
	Queue queue.Client
}

// Start kicks off an asynchronous analysis run for a portfolio. A
// portfolio already being processed cannot be restarted.
func (s *Service) Start(ctx context.Context, userID, portfolioID string) (Analysis, error) {
	p, err := s.Portfolios.GetByID(ctx, portfolioID)
	if err != nil {
		return Analysis{}, err
	}
	if p.UserID != userID {
		return Analysis{}, portfolios.ErrNotFound
	}

	swapped := false
	for _, from := range []portfolios.Status{portfolios.StatusPending, portfolios.StatusFailed, portfolios.StatusCompleted} {
		ok, err := s.Portfolios.SetStatus(ctx, portfolioID, from, portfolios.StatusProcessing)
		if err != nil {
			return Analysis{}, err
		}
		if ok {
			swapped = true
			break
		}
	}
	if !swapped {
		return Analysis{}, ErrInProgress
	}

	now := time.Now().UTC()
	a := Analysis{
		ID:          uuid.NewString(),
		PortfolioID: portfolioID,
		UserID:      userID,
		Status:      StatusProcessing,
		Progress:    0,
		StartedAt:   &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Upsert(ctx, a); err != nil {
		_ = s.Portfolios.ForceStatus(ctx, portfolioID, portfolios.StatusFailed)
		return Analysis{}, err
	}
	_ = s.Cache.Invalidate(ctx, portfolioID)

	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"user_id":           userID,
		"portfolio_id":      portfolioID,
		"analysis_id":       a.ID,
		"status":            StatusProcessing,
		"status_transition": "pending->processing",
	})

	if s.Queue != nil {
		msg := queue.Message{
			PortfolioID: portfolioID,
			EnqueuedAt:  now.Format(time.RFC3339),
			Version:     1,
		}
		err := s.Queue.Send(ctx, msg)
		if err == nil {
			return a, nil
		}
		// Queue unreachable, run in-process instead.
		telemetry.Warn("analysis.enqueue_failed", map[string]any{
			"portfolio_id": portfolioID,
			"error":        err.Error(),
		})
	}

	go s.process(context.Background(), a, p)

	return a, nil
}

// Process runs the pipeline for a portfolio whose analysis was already
// started. Queue workers call this with the dequeued portfolio ID.
func (s *Service) Process(ctx context.Context, portfolioID string) error {
	a, err := s.Repo.GetByPortfolio(ctx, portfolioID)
	if err != nil {
		return err
	}
	p, err := s.Portfolios.GetByID(ctx, portfolioID)
	if err != nil {
		return err
	}
	s.process(ctx, a, p)
	return nil
}

// Status returns the current run state for a portfolio.
func (s *Service) Status(ctx context.Context, userID, portfolioID string) (Analysis, error) {
	if err := s.checkOwnership(ctx, userID, portfolioID); err != nil {
		return Analysis{}, err
	}
	return s.Repo.GetByPortfolio(ctx, portfolioID)
}

// Results returns the completed result for a portfolio, reading
// through the result cache when one is configured.
func (s *Service) Results(ctx context.Context, userID, portfolioID string) (Analysis, error) {
	if err := s.checkOwnership(ctx, userID, portfolioID); err != nil {
		return Analysis{}, err
	}

	a, err := s.Repo.GetByPortfolio(ctx, portfolioID)
	if err != nil {
		return Analysis{}, err
	}
	if a.Status != StatusCompleted {
		return Analysis{}, ErrNotReady
	}

	if cached, err := s.Cache.GetResult(ctx, portfolioID); err == nil && len(cached) > 0 {
		a.Result = cached
		return a, nil
	}
	_ = s.Cache.SetResult(ctx, portfolioID, a.Result)
	return a, nil
}

func (s *Service) checkOwnership(ctx context.Context, userID, portfolioID string) error {
	p, err := s.Portfolios.GetByID(ctx, portfolioID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return portfolios.ErrNotFound
	}
	return nil
}

func (s *Service) process(ctx context.Context, a Analysis, p portfolios.Portfolio) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, a, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := s.Repo.UpdateProgress(ctx, a.ID, StatusProcessing, 50); err != nil {
		s.fail(ctx, a, fmt.Errorf("set progress: %w", err))
		return
	}

	title := p.Title
	description := ""
	if p.SourceURL != "" && s.Meta != nil {
		if meta, err := s.Meta.Fetch(ctx, p.SourceURL); err == nil {
			if meta.Title != "" {
				title = meta.Title
			}
			description = meta.Description
		} else {
			telemetry.Warn("analysis.meta_fetch_failed", map[string]any{
				"portfolio_id": p.ID,
				"error":        err.Error(),
			})
		}
	}
	if description == "" && p.SourceURL == "" {
		// File-only submissions have no page metadata. Text pulled
		// from uploaded PDF decks feeds the classifier instead.
		description = s.extractDeckText(ctx, p.ID)
	}

	result, modelUsed, aiGenerated := s.evaluate(ctx, a, p, title, description)

	completedAt := time.Now().UTC()
	if err := s.Repo.UpdateResult(ctx, a.ID, result, modelUsed, aiGenerated, completedAt); err != nil {
		s.fail(ctx, a, fmt.Errorf("set result: %w", err))
		return
	}
	if err := s.Portfolios.ForceStatus(ctx, p.ID, portfolios.StatusCompleted); err != nil {
		telemetry.Error("analysis.portfolio_status_failed", map[string]any{
			"portfolio_id": p.ID,
			"error":        err.Error(),
		})
	}
	_ = s.Cache.SetResult(ctx, p.ID, result)

	metrics.IncAnalysisCompleted()
	if a.StartedAt != nil {
		metrics.ObserveAnalysisDurationMs(float64(completedAt.Sub(*a.StartedAt).Microseconds()) / 1000.0)
	}
	telemetry.Info("analysis.status", map[string]any{
		"user_id":           a.UserID,
		"portfolio_id":      p.ID,
		"analysis_id":       a.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"model_used":        modelUsed,
		"ai_generated":      aiGenerated,
	})
}

// evaluate runs the model when one is configured and inputs allow it,
// falling back to the deterministic engine otherwise. It never fails:
// the engine always produces a result.
func (s *Service) evaluate(ctx context.Context, a Analysis, p portfolios.Portfolio, title, description string) (json.RawMessage, string, bool) {
	if s.AI != nil {
		images, err := s.gatherImages(ctx, p.ID)
		if err != nil {
			telemetry.Warn("analysis.gather_images_failed", map[string]any{
				"portfolio_id": p.ID,
				"error":        err.Error(),
			})
		}
		if len(images) > 0 {
			aiCtx, cancel := context.WithTimeout(ctx, aiTimeout)
			raw, err := s.AI.AnalyzePortfolio(aiCtx, ai.AnalyzeInput{
				Images:    images,
				SourceURL: p.SourceURL,
				Title:     title,
			})
			cancel()
			if err == nil {
				return raw, s.Model, true
			}
			if !errors.Is(err, ai.ErrNotConfigured) {
				telemetry.Warn("analysis.ai_failed", map[string]any{
					"portfolio_id": p.ID,
					"error":        err.Error(),
				})
				metrics.IncAnalysisFallback()
			}
		}
	}

	generated := engine.Generate(engine.Request{
		SourceURL:   p.SourceURL,
		PortfolioID: p.ID,
		Title:       title,
		Description: description,
	})
	raw, err := json.Marshal(generated)
	if err != nil {
		// Result is a plain struct, this cannot happen in practice.
		raw = json.RawMessage(`{}`)
	}
	return raw, engine.ModelLabel, false
}

// gatherImages loads uploaded image files for the model call. PDF
// uploads contribute nothing here; their text goes unused until a
// text-capable prompt exists.
func (s *Service) gatherImages(ctx context.Context, portfolioID string) ([]ai.Image, error) {
	files, err := s.Portfolios.ListFiles(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	var images []ai.Image
	for _, f := range files {
		if !strings.HasPrefix(f.ContentType, "image/") {
			continue
		}
		body, err := s.Store.Open(ctx, f.StorageKey)
		if err != nil {
			return images, err
		}
		data, err := io.ReadAll(body)
		body.Close()
		if err != nil {
			return images, err
		}
		images = append(images, ai.Image{MimeType: f.ContentType, Data: data})
	}
	return images, nil
}

// extractDeckText returns text from the first PDF upload that yields any.
func (s *Service) extractDeckText(ctx context.Context, portfolioID string) string {
	files, err := s.Portfolios.ListFiles(ctx, portfolioID)
	if err != nil {
		return ""
	}
	for _, f := range files {
		if f.ContentType != "application/pdf" {
			continue
		}
		text, err := extract.ExtractText(ctx, s.Store, f.StorageKey, f.ContentType, f.FileName)
		if err != nil {
			telemetry.Warn("analysis.extract_failed", map[string]any{
				"portfolio_id": portfolioID,
				"file_name":    f.FileName,
				"error":        err.Error(),
			})
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

func (s *Service) fail(ctx context.Context, a Analysis, err error) {
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.UpdateFailure(context.Background(), a.ID, msg, completedAt); updateErr != nil {
		telemetry.Error("analysis.fail_update_failed", map[string]any{
			"analysis_id": a.ID,
			"error":       updateErr.Error(),
		})
	}
	_ = s.Portfolios.ForceStatus(context.Background(), a.PortfolioID, portfolios.StatusFailed)

	metrics.IncAnalysisFailed()
	telemetry.Info("analysis.status", map[string]any{
		"user_id":           a.UserID,
		"portfolio_id":      a.PortfolioID,
		"analysis_id":       a.ID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error":             msg,
	})
}

// ReconcileStuck fails portfolios left in processing by an earlier
// crash so they can be resubmitted.
func (s *Service) ReconcileStuck(ctx context.Context) error {
	stuck, err := s.Portfolios.ListByStatus(ctx, portfolios.StatusProcessing)
	if err != nil {
		return err
	}
	for _, p := range stuck {
		if err := s.Portfolios.ForceStatus(ctx, p.ID, portfolios.StatusFailed); err != nil {
			return err
		}
		if a, err := s.Repo.GetByPortfolio(ctx, p.ID); err == nil && a.Status == StatusProcessing {
			_ = s.Repo.UpdateFailure(ctx, a.ID, "interrupted by restart", time.Now().UTC())
		}
		_ = s.Cache.Invalidate(ctx, p.ID)
		telemetry.Warn("analysis.reconciled_stuck", map[string]any{
			"portfolio_id": p.ID,
		})
	}
	return nil
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
