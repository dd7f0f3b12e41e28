package portfolios

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/storage/object/local"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newTestRouter(t *testing.T, userID string) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &Service{Store: local.New(t.TempDir()), Repo: NewMemoryRepo()}
	h := NewHandler(svc, 10)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func TestSubmitURLCreatesPendingPortfolio(t *testing.T) {
	router, _ := newTestRouter(t, "user-1")

	body := `{"url":"https://www.behance.net/janedoe","title":"Jane Doe Portfolio"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios/url", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created PortfolioResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.PortfolioID == "" {
		t.Fatalf("expected portfolioId, got empty")
	}
	if created.SourceType != string(SourceTypeBehance) {
		t.Fatalf("expected sourceType behance, got %s", created.SourceType)
	}
	if created.Status != string(StatusPending) {
		t.Fatalf("expected status pending, got %s", created.Status)
	}
	if created.SubmissionContext != ContextDesigner {
		t.Fatalf("expected designer context, got %s", created.SubmissionContext)
	}
}

func TestSubmitURLClassifiesSource(t *testing.T) {
	router, _ := newTestRouter(t, "user-1")

	cases := []struct {
		url  string
		want SourceType
	}{
		{"https://janedoe.myportfolio.com", SourceTypeURL},
		{"https://www.behance.net/janedoe", SourceTypeBehance},
		{"https://BEHANCE.NET/janedoe", SourceTypeBehance},
	}
	for _, tc := range cases {
		body := `{"url":"` + tc.url + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios/url", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusCreated {
			t.Fatalf("url %s: expected status 201, got %d: %s", tc.url, resp.Code, resp.Body.String())
		}
		var created PortfolioResponse
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if created.SourceType != string(tc.want) {
			t.Fatalf("url %s: expected sourceType %s, got %s", tc.url, tc.want, created.SourceType)
		}
	}
}

func TestSubmitURLRejectsInvalidURL(t *testing.T) {
	router, _ := newTestRouter(t, "user-1")

	for _, body := range []string{
		`{"url":""}`,
		`{"url":"ftp://example.com"}`,
		`{"url":"not a url"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios/url", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected status 400, got %d", body, resp.Code)
		}
	}
}

func TestUploadStoresFiles(t *testing.T) {
	router, _ := newTestRouter(t, "user-1")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("files", "shot.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(pngBytes); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.WriteField("candidateName", "Jane Doe"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created PortfolioResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.SourceType != string(SourceTypeFile) {
		t.Fatalf("expected sourceType file, got %s", created.SourceType)
	}
	if created.Title != "shot.png" {
		t.Fatalf("expected title defaulted to file name, got %q", created.Title)
	}
	if len(created.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(created.Files))
	}
	if created.Files[0].ContentType != "image/png" {
		t.Fatalf("expected image/png, got %s", created.Files[0].ContentType)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	router, _ := newTestRouter(t, "user-1")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("files", "notes.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("just some plain text")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	router, svc := newTestRouter(t, "user-2")

	p, err := svc.SubmitURL(context.Background(), "someone-else", "https://dribbble.com/janedoe", "", "", "")
	if err != nil {
		t.Fatalf("submit url: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolios/"+p.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestDeleteRemovesPortfolio(t *testing.T) {
	router, svc := newTestRouter(t, "user-1")

	p, err := svc.SubmitURL(context.Background(), "user-1", "https://example.com/work", "", "", "")
	if err != nil {
		t.Fatalf("submit url: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/portfolios/"+p.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/portfolios/"+p.ID, nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", respGet.Code)
	}
}

func TestListFiltersBySubmissionContext(t *testing.T) {
	router, svc := newTestRouter(t, "user-1")

	if _, err := svc.SubmitURL(context.Background(), "user-1", "https://example.com/a", "A", "", ContextDesigner); err != nil {
		t.Fatalf("submit a: %v", err)
	}
	if _, err := svc.SubmitURL(context.Background(), "user-1", "https://example.com/b", "B", "", ContextRecruiter); err != nil {
		t.Fatalf("submit b: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolios?context=recruiter", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var items []PortfolioResponse
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "B" {
		t.Fatalf("expected recruiter submission, got %q", items[0].Title)
	}
}
