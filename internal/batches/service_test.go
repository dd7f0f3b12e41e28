package batches

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-backend/internal/analysis"
	"portfolio-backend/internal/portfolios"
	"portfolio-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	pfRepo := portfolios.NewMemoryRepo()
	store := local.New(t.TempDir())
	pfSvc := &portfolios.Service{Store: store, Repo: pfRepo}
	anSvc := &analysis.Service{
		Repo:       analysis.NewMemoryRepo(),
		Portfolios: pfRepo,
		Store:      store,
	}
	return &Service{
		Repo:       NewMemoryRepo(),
		Portfolios: pfSvc,
		Analyses:   anSvc,
	}
}

func waitForBatch(t *testing.T, svc *Service, userID, batchID string) BatchStatus {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		status, err := svc.Status(context.Background(), userID, batchID)
		if err != nil {
			t.Fatalf("Status: %v", err)
		}
		if status.Done {
			return status
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("batch %s did not finish", batchID)
	return BatchStatus{}
}

func TestCreateStartsAnalysesAndRanks(t *testing.T) {
	svc := newTestService(t)

	b, items, err := svc.Create(context.Background(), "recruiter-1", "Spring hiring", []Submission{
		{URL: "https://www.behance.net/janedoe", CandidateName: "Jane Doe"},
		{URL: "https://dribbble.com/johnroe", CandidateName: "John Roe"},
		{URL: "https://example.com/sam", CandidateName: "Sam Poe"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	status := waitForBatch(t, svc, "recruiter-1", b.ID)
	if status.Completed != 3 {
		t.Fatalf("expected 3 completed, got %d (failed %d)", status.Completed, status.Failed)
	}

	// Ranked by overall score, highest first, each labeled.
	prev := 100.0
	for _, item := range status.Items {
		if item.OverallScore > prev {
			t.Fatalf("items not sorted by score: %v after %v", item.OverallScore, prev)
		}
		prev = item.OverallScore
		switch item.Recommendation {
		case RecommendAdvance, RecommendConsider, RecommendPass:
		default:
			t.Fatalf("unexpected recommendation %q", item.Recommendation)
		}
	}

	// Every item's portfolio carries the recruiter context.
	for _, item := range status.Items {
		p, err := svc.Portfolios.Repo.GetByID(context.Background(), item.PortfolioID)
		if err != nil {
			t.Fatalf("get portfolio: %v", err)
		}
		if p.SubmissionContext != portfolios.ContextRecruiter {
			t.Fatalf("expected recruiter context, got %s", p.SubmissionContext)
		}
	}
}

func TestCreateRejectsEmptyAndOversizedBatches(t *testing.T) {
	svc := newTestService(t)

	if _, _, err := svc.Create(context.Background(), "recruiter-1", "", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}

	big := make([]Submission, maxBatchSize+1)
	for i := range big {
		big[i] = Submission{URL: "https://example.com/x"}
	}
	if _, _, err := svc.Create(context.Background(), "recruiter-1", "", big); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized batch, got %v", err)
	}
}

func TestStatusEnforcesOwnership(t *testing.T) {
	svc := newTestService(t)

	b, _, err := svc.Create(context.Background(), "recruiter-1", "Private", []Submission{
		{URL: "https://example.com/one"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Status(context.Background(), "someone-else", b.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecommendationThresholds(t *testing.T) {
	cases := []struct {
		overall float64
		want    string
	}{
		{92, RecommendAdvance},
		{80, RecommendAdvance},
		{79, RecommendConsider},
		{70, RecommendConsider},
		{69, RecommendPass},
		{40, RecommendPass},
	}
	for _, tc := range cases {
		if got := recommendationFor(tc.overall); got != tc.want {
			t.Errorf("recommendationFor(%v) = %q, want %q", tc.overall, got, tc.want)
		}
	}
}
