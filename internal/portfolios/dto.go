package portfolios

import "time"

// PortfolioResponse is the outward-facing representation of a portfolio.
type PortfolioResponse struct {
	PortfolioID       string         `json:"portfolioId"`
	SourceType        string         `json:"sourceType"`
	SourceURL         string         `json:"sourceUrl,omitempty"`
	Title             string         `json:"title"`
	CandidateName     string         `json:"candidateName,omitempty"`
	SubmissionContext string         `json:"submissionContext"`
	Status            string         `json:"status"`
	Files             []FileResponse `json:"files,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// FileResponse describes one uploaded portfolio file.
type FileResponse struct {
	FileID      string    `json:"fileId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func toResponse(p Portfolio, files []File) PortfolioResponse {
	resp := PortfolioResponse{
		PortfolioID:       p.ID,
		SourceType:        string(p.SourceType),
		SourceURL:         p.SourceURL,
		Title:             p.Title,
		CandidateName:     p.CandidateName,
		SubmissionContext: p.SubmissionContext,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	for _, f := range files {
		resp.Files = append(resp.Files, FileResponse{
			FileID:      f.ID,
			FileName:    f.FileName,
			ContentType: f.ContentType,
			SizeBytes:   f.SizeBytes,
			UploadedAt:  f.CreatedAt,
		})
	}
	return resp
}
