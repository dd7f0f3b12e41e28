package batches

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/portfolios"
	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the batches service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches batch routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/batches", h.create)
	rg.GET("/batches", h.list)
	rg.GET("/batches/:id", h.status)
}

type createBatchRequest struct {
	Name  string `json:"name"`
	Items []struct {
		URL           string `json:"url"`
		CandidateName string `json:"candidateName"`
	} `json:"items"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	submissions := make([]Submission, 0, len(req.Items))
	for _, item := range req.Items {
		submissions = append(submissions, Submission{URL: item.URL, CandidateName: item.CandidateName})
	}

	b, items, err := h.Svc.Create(c.Request.Context(), userID, req.Name, submissions)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, portfolios.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create batch", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"batchId":   b.ID,
		"name":      b.Name,
		"createdAt": b.CreatedAt,
		"items":     toItemResponses(items),
	})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list batches", nil)
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, b := range items {
		resp = append(resp, gin.H{
			"batchId":   b.ID,
			"name":      b.Name,
			"createdAt": b.CreatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) status(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	status, err := h.Svc.Status(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "batch not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch batch", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"batchId":   status.Batch.ID,
		"name":      status.Batch.Name,
		"total":     status.Total,
		"completed": status.Completed,
		"failed":    status.Failed,
		"pending":   status.Pending,
		"done":      status.Done,
		"items":     toItemResponses(status.Items),
	})
}

func toItemResponses(items []RankedItem) []gin.H {
	resp := make([]gin.H, 0, len(items))
	for _, item := range items {
		entry := gin.H{
			"portfolioId": item.PortfolioID,
			"sourceUrl":   item.SourceURL,
			"status":      item.Status,
		}
		if item.CandidateName != "" {
			entry["candidateName"] = item.CandidateName
		}
		if item.Status == "completed" {
			entry["overallScore"] = item.OverallScore
			entry["recommendation"] = item.Recommendation
		}
		resp = append(resp, entry)
	}
	return resp
}
