package portfolios

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-backend/internal/shared/storage/object"
	"portfolio-backend/internal/shared/telemetry"
)

var allowedUploadTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"application/pdf": true,
}

// Service contains business logic for portfolios.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// SubmitURL records a URL-sourced portfolio for later analysis.
func (s *Service) SubmitURL(ctx context.Context, userID, sourceURL, title, candidateName, submissionContext string) (Portfolio, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return Portfolio{}, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	parsed, err := url.Parse(sourceURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return Portfolio{}, fmt.Errorf("%w: url must be a valid http or https address", ErrInvalidInput)
	}

	sourceType := SourceTypeURL
	if strings.Contains(strings.ToLower(parsed.Host), "behance.net") {
		sourceType = SourceTypeBehance
	}

	now := time.Now().UTC()
	p := Portfolio{
		ID:                uuid.NewString(),
		UserID:            userID,
		SourceType:        sourceType,
		SourceURL:         sourceURL,
		Title:             strings.TrimSpace(title),
		CandidateName:     strings.TrimSpace(candidateName),
		SubmissionContext: normalizeContext(submissionContext),
		Status:            StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Portfolio{}, err
	}

	telemetry.Info("portfolio.submitted", map[string]any{
		"portfolio_id": p.ID,
		"user_id":      userID,
		"source_type":  string(sourceType),
	})
	return p, nil
}

// Upload stores uploaded files and records a file-sourced portfolio.
func (s *Service) Upload(ctx context.Context, userID, title, candidateName, submissionContext string, files []*multipart.FileHeader) (Portfolio, []File, error) {
	if len(files) == 0 {
		return Portfolio{}, nil, fmt.Errorf("%w: at least one file is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	p := Portfolio{
		ID:                uuid.NewString(),
		UserID:            userID,
		SourceType:        SourceTypeFile,
		Title:             strings.TrimSpace(title),
		CandidateName:     strings.TrimSpace(candidateName),
		SubmissionContext: normalizeContext(submissionContext),
		Status:            StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if p.Title == "" {
		p.Title = files[0].Filename
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Portfolio{}, nil, err
	}

	var saved []File
	for _, fh := range files {
		f, err := s.saveFile(ctx, userID, p.ID, fh)
		if err != nil {
			return Portfolio{}, nil, err
		}
		saved = append(saved, f)
	}

	telemetry.Info("portfolio.uploaded", map[string]any{
		"portfolio_id": p.ID,
		"user_id":      userID,
		"file_count":   len(saved),
	})
	return p, saved, nil
}

func (s *Service) saveFile(ctx context.Context, userID, portfolioID string, fh *multipart.FileHeader) (File, error) {
	src, err := fh.Open()
	if err != nil {
		return File{}, fmt.Errorf("%w: unable to read file %q", ErrInvalidInput, fh.Filename)
	}
	defer src.Close()

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fh.Filename, io.Reader(src))
	if err != nil {
		return File{}, err
	}
	if !allowedUploadTypes[mimeType] {
		// Best effort: the object was already written, remove it again.
		_ = s.Store.Delete(ctx, storageKey)
		return File{}, fmt.Errorf("%w: unsupported file type %q", ErrInvalidInput, mimeType)
	}

	f := File{
		ID:          uuid.NewString(),
		PortfolioID: portfolioID,
		FileName:    fh.Filename,
		ContentType: mimeType,
		SizeBytes:   size,
		StorageKey:  storageKey,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.AddFile(ctx, f); err != nil {
		return File{}, err
	}
	return f, nil
}

// Get returns a portfolio owned by the given user.
func (s *Service) Get(ctx context.Context, userID, id string) (Portfolio, []File, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Portfolio{}, nil, err
	}
	if p.UserID != userID {
		return Portfolio{}, nil, ErrNotFound
	}
	files, err := s.Repo.ListFiles(ctx, p.ID)
	if err != nil {
		return Portfolio{}, nil, err
	}
	return p, files, nil
}

// List returns the user's portfolios, newest first. An empty
// submissionContext returns portfolios from both contexts.
func (s *Service) List(ctx context.Context, userID, submissionContext string, limit, offset int) ([]Portfolio, error) {
	if strings.TrimSpace(submissionContext) != "" {
		submissionContext = normalizeContext(submissionContext)
	} else {
		submissionContext = ""
	}
	return s.Repo.ListByUser(ctx, userID, submissionContext, limit, offset)
}

// Delete removes a portfolio along with its stored files.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrNotFound
	}

	files, err := s.Repo.ListFiles(ctx, id)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := s.Store.Delete(ctx, f.StorageKey); err != nil {
			telemetry.Error("portfolio.file_delete_failed", map[string]any{
				"portfolio_id": id,
				"storage_key":  f.StorageKey,
				"error":        err.Error(),
			})
		}
	}

	return s.Repo.Delete(ctx, id)
}

func normalizeContext(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ContextRecruiter:
		return ContextRecruiter
	default:
		return ContextDesigner
	}
}
