package analysis

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/portfolios"
	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/portfolios/:id/analysis", h.start)
	rg.GET("/portfolios/:id/analysis", h.status)
	rg.GET("/portfolios/:id/analysis/results", h.results)
}

func (h *Handler) start(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	portfolioID := c.Param("id")

	a, err := h.Svc.Start(c.Request.Context(), userID, portfolioID)
	if err != nil {
		switch {
		case errors.Is(err, portfolios.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "portfolio not found", nil)
		case errors.Is(err, ErrInProgress):
			respond.Error(c, http.StatusConflict, "in_progress", "analysis already in progress", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"analysisId":  a.ID,
		"portfolioId": a.PortfolioID,
		"status":      a.Status,
	})
}

func (h *Handler) status(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	portfolioID := c.Param("id")

	a, err := h.Svc.Status(c.Request.Context(), userID, portfolioID)
	if err != nil {
		switch {
		case errors.Is(err, portfolios.ErrNotFound), errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis status", nil)
		}
		return
	}

	resp := gin.H{
		"analysisId":  a.ID,
		"portfolioId": a.PortfolioID,
		"status":      a.Status,
		"progress":    a.Progress,
	}
	if a.Status == StatusFailed && a.Error != "" {
		resp["error"] = a.Error
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) results(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	portfolioID := c.Param("id")

	a, err := h.Svc.Results(c.Request.Context(), userID, portfolioID)
	if err != nil {
		switch {
		case errors.Is(err, portfolios.ErrNotFound), errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		case errors.Is(err, ErrNotReady):
			respond.Error(c, http.StatusConflict, "not_ready", "analysis not completed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis results", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"analysisId":  a.ID,
		"portfolioId": a.PortfolioID,
		"status":      a.Status,
		"modelUsed":   a.ModelUsed,
		"aiGenerated": a.AIGenerated,
		"completedAt": a.CompletedAt,
		"result":      json.RawMessage(a.Result),
	})
}
