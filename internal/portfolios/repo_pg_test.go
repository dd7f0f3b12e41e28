package portfolios

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	p := Portfolio{
		ID:                "pf-1",
		UserID:            "user-1",
		SourceType:        SourceTypeURL,
		SourceURL:         "https://example.com/work",
		Title:             "Work",
		SubmissionContext: ContextDesigner,
		Status:            StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	mock.ExpectExec("INSERT INTO portfolios").
		WithArgs(
			p.ID,
			p.UserID,
			string(p.SourceType),
			p.SourceURL,
			p.Title,
			p.CandidateName,
			p.SubmissionContext,
			string(p.Status),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM portfolios WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoSetStatusCompareAndSwap(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE portfolios SET status").
		WithArgs(string(StatusProcessing), "pf-1", string(StatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.SetStatus(context.Background(), "pf-1", StatusPending, StatusProcessing)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if !ok {
		t.Fatalf("expected swap to succeed")
	}

	mock.ExpectExec("UPDATE portfolios SET status").
		WithArgs(string(StatusProcessing), "pf-1", string(StatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.SetStatus(context.Background(), "pf-1", StatusPending, StatusProcessing)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if ok {
		t.Fatalf("expected swap to fail when status moved on")
	}
}

func TestPGRepoDeleteMissingReturnsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM portfolios").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
