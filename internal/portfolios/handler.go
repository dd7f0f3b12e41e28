package portfolios

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	MaxUploadSize int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadMB int) *Handler {
	return &Handler{Svc: svc, MaxUploadSize: int64(maxUploadMB) << 20}
}

// RegisterRoutes attaches portfolio routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/portfolios", h.list)
	rg.GET("/portfolios/:id", h.get)
	rg.POST("/portfolios/upload", h.upload)
	rg.POST("/portfolios/url", h.submitURL)
	rg.DELETE("/portfolios/:id", h.remove)
}

type submitURLRequest struct {
	URL               string `json:"url"`
	Title             string `json:"title"`
	CandidateName     string `json:"candidateName"`
	SubmissionContext string `json:"submissionContext"`
}

func (h *Handler) submitURL(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req submitURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p, err := h.Svc.SubmitURL(c.Request.Context(), userID, req.URL, req.Title, req.CandidateName, req.SubmissionContext)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit portfolio", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(p, nil))
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form is required", nil)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		if single := form.File["file"]; len(single) > 0 {
			files = single
		}
	}
	if len(files) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "at least one file is required", nil)
		return
	}

	title := c.PostForm("title")
	candidateName := c.PostForm("candidateName")
	submissionContext := c.PostForm("submissionContext")

	p, saved, err := h.Svc.Upload(c.Request.Context(), userID, title, candidateName, submissionContext, files)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload portfolio", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(p, saved))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	p, files, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "portfolio not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch portfolio", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(p, files))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), userID, c.Query("context"), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list portfolios", nil)
		return
	}

	resp := make([]PortfolioResponse, 0, len(items))
	for _, p := range items {
		resp = append(resp, toResponse(p, nil))
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "portfolio not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete portfolio", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
