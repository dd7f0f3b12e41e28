package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/internal/ai"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	maxImages      = 10
)

// Client implements ai.Client using the Gemini generateContent API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new Gemini client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GOOGLE_AI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("AI_MODEL is required for Gemini")
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (c *Client) AnalyzePortfolio(ctx context.Context, input ai.AnalyzeInput) (json.RawMessage, error) {
	if len(input.Images) == 0 {
		return nil, fmt.Errorf("no images to analyze")
	}

	parts := []generatePart{{Text: buildRubricPrompt(input.SourceURL, input.Title)}}
	for i, img := range input.Images {
		if i == maxImages {
			break
		}
		parts = append(parts, generatePart{InlineData: &inlineData{
			MimeType: img.MimeType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}

	payload, err := json.Marshal(generateRequest{Contents: []generateContent{{Parts: parts}}})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("gemini response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("gemini error: %s (%s)", parsed.Error.Message, parsed.Error.Status)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini response missing candidates")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	return sanitizeScores(raw)
}

// ExtractJSON pulls a JSON object out of a model reply, unwrapping markdown
// code fences when present.
func ExtractJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)

	if idx := strings.Index(trimmed, "```json"); idx >= 0 {
		rest := trimmed[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			trimmed = strings.TrimSpace(rest[:end])
		}
	} else if idx := strings.Index(trimmed, "```"); idx >= 0 {
		rest := trimmed[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			trimmed = strings.TrimSpace(rest[:end])
		}
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("could not extract JSON from response")
	}
	candidate := trimmed[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("invalid JSON in response")
	}
	return json.RawMessage(candidate), nil
}

var scoreKeys = []string{"visual_score", "ux_score", "communication_score", "overall_score", "hireability_score"}

// sanitizeScores clamps the five score fields to [0,100]. A missing score
// field means the model did not follow the rubric and the reply is rejected.
func sanitizeScores(raw json.RawMessage) (json.RawMessage, error) {
	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("gemini result parse: %w", err)
	}
	for _, key := range scoreKeys {
		val, ok := result[key]
		if !ok {
			return nil, fmt.Errorf("gemini result missing field %s", key)
		}
		num, ok := val.(float64)
		if !ok {
			return nil, fmt.Errorf("gemini result field %s is not numeric", key)
		}
		if num < 0 {
			num = 0
		}
		if num > 100 {
			num = 100
		}
		result[key] = num
	}
	return json.Marshal(result)
}

func buildRubricPrompt(sourceURL, title string) string {
	var b strings.Builder
	b.WriteString("You are a design hiring panel reviewing a candidate's portfolio. ")
	b.WriteString("Evaluate the attached screenshots against professional design principles: visual craft, UX process rigor, and communication of outcomes.\n\n")
	if sourceURL != "" {
		fmt.Fprintf(&b, "Portfolio URL: %s\n", sourceURL)
	}
	if title != "" {
		fmt.Fprintf(&b, "Portfolio title: %s\n", title)
	}
	b.WriteString(`
Respond with a single JSON object and nothing else:
{
  "visual_score": 0-100,
  "ux_score": 0-100,
  "communication_score": 0-100,
  "overall_score": 0-100,
  "hireability_score": 0-100,
  "recruiter_verdict": "two or three sentences for a recruiter",
  "strengths": ["up to 5 detailed strengths"],
  "weaknesses": ["up to 4 constructive weaknesses"],
  "recommendations": ["up to 6 actionable recommendations"],
  "detailed_feedback": {"visual": "...", "ux": "...", "communication": "..."},
  "seniority_assessment": "level - justification",
  "industry_benchmark": "one sentence comparison"
}`)
	return b.String()
}

var _ ai.Client = (*Client)(nil)
