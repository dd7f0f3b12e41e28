package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-backend/internal/ai"
)

func TestExtractJSONFromFencedBlock(t *testing.T) {
	text := "Here is my analysis:\n```json\n{\"visual_score\": 82}\n```\nHope that helps."
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	var parsed map[string]float64
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed["visual_score"] != 82 {
		t.Fatalf("unexpected value: %v", parsed)
	}
}

func TestExtractJSONFromRawBraces(t *testing.T) {
	raw, err := ExtractJSON(`Sure! {"ux_score": 71, "note": "ok"} end`)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if !strings.Contains(string(raw), "71") {
		t.Fatalf("unexpected raw: %s", raw)
	}
}

func TestExtractJSONRejectsProse(t *testing.T) {
	if _, err := ExtractJSON("I could not evaluate this portfolio."); err == nil {
		t.Fatal("expected error when no JSON present")
	}
}

func TestSanitizeScoresClamps(t *testing.T) {
	raw, err := sanitizeScores(json.RawMessage(`{"visual_score": 140, "ux_score": -5, "communication_score": 70, "overall_score": 88, "hireability_score": 75, "recruiter_verdict": "x"}`))
	if err != nil {
		t.Fatalf("sanitizeScores: %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed["visual_score"].(float64) != 100 {
		t.Fatalf("expected visual clamped to 100, got %v", parsed["visual_score"])
	}
	if parsed["ux_score"].(float64) != 0 {
		t.Fatalf("expected ux clamped to 0, got %v", parsed["ux_score"])
	}
	if parsed["overall_score"].(float64) != 88 {
		t.Fatalf("expected overall unchanged, got %v", parsed["overall_score"])
	}
}

func TestSanitizeScoresRejectsMissingFields(t *testing.T) {
	cases := []string{
		`{"recruiter_verdict": "nice"}`,
		`{"visual_score": 80, "ux_score": 70, "overall_score": 75, "hireability_score": 72}`,
	}
	for _, body := range cases {
		if _, err := sanitizeScores(json.RawMessage(body)); err == nil {
			t.Fatalf("body %s: expected error for missing score field", body)
		}
	}
}

func TestAnalyzePortfolioRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") && !strings.Contains(r.URL.RawQuery, "key=") {
			t.Errorf("unexpected request: %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 2 {
			t.Errorf("expected prompt + 1 image part, got %+v", req.Contents)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{
						"text": "```json\n{\"visual_score\": 120, \"ux_score\": 80, \"communication_score\": 70, \"overall_score\": 85, \"hireability_score\": 78}\n```",
					}},
				},
			}},
		})
	}))
	defer srv.Close()

	client, err := NewClient("test-key", "gemini-2.0-flash-exp")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.baseURL = srv.URL

	raw, err := client.AnalyzePortfolio(context.Background(), ai.AnalyzeInput{
		Images:    []ai.Image{{MimeType: "image/png", Data: []byte("fake")}},
		SourceURL: "https://example.com",
	})
	if err != nil {
		t.Fatalf("AnalyzePortfolio: %v", err)
	}

	var parsed map[string]float64
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed["visual_score"] != 100 {
		t.Fatalf("expected clamped visual score, got %v", parsed["visual_score"])
	}
}

func TestAnalyzePortfolioRequiresImages(t *testing.T) {
	client, err := NewClient("test-key", "gemini-2.0-flash-exp")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.AnalyzePortfolio(context.Background(), ai.AnalyzeInput{}); err == nil {
		t.Fatal("expected error without images")
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "model"); err == nil {
		t.Fatal("expected error for missing API key")
	}
	if _, err := NewClient("key", " "); err == nil {
		t.Fatal("expected error for missing model")
	}
}
