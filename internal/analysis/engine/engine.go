package engine

import "strings"

// ModelLabel identifies reports produced by the heuristic engine, as opposed
// to AI-generated ones.
const ModelLabel = "heuristic-engine-v3"

// Request carries everything the engine needs for one evaluation.
type Request struct {
	SourceURL   string
	PortfolioID string
	Title       string
	Description string
}

// Meta echoes the page context the report was generated from.
type Meta struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Platform       Platform       `json:"platform"`
	Specialization Specialization `json:"specialization"`
}

// DetailedFeedback holds the per-category narrative paragraphs.
type DetailedFeedback struct {
	Visual        string `json:"visual"`
	UX            string `json:"ux"`
	Communication string `json:"communication"`
}

// Result is a complete portfolio evaluation report.
type Result struct {
	VisualScore         float64          `json:"visual_score"`
	UXScore             float64          `json:"ux_score"`
	CommunicationScore  float64          `json:"communication_score"`
	OverallScore        float64          `json:"overall_score"`
	HireabilityScore    float64          `json:"hireability_score"`
	RecruiterVerdict    string           `json:"recruiter_verdict"`
	Strengths           []string         `json:"strengths"`
	Weaknesses          []string         `json:"weaknesses"`
	Recommendations     []string         `json:"recommendations"`
	DetailedFeedback    DetailedFeedback `json:"detailed_feedback"`
	SeniorityAssessment string           `json:"seniority_assessment"`
	IndustryBenchmark   string           `json:"industry_benchmark"`
	Meta                Meta             `json:"meta"`
	AIGenerated         bool             `json:"ai_generated"`
	ModelUsed           string           `json:"model_used"`
}

// Generate produces a deterministic evaluation: the same request yields the
// same report, byte for byte.
func Generate(req Request) Result {
	r := newRand(SeedFor(req.SourceURL, req.PortfolioID))

	scores := synthesizeScores(r)

	platform := DetectPlatform(req.SourceURL)
	spec := DetectSpecialization(req.Title, req.Description)
	sourceName := SourceName(req.SourceURL)
	keywords := contextKeywords(req.Description)
	allText := strings.ToLower(req.Title + " " + req.Description)

	strengths := buildStrengths(scores, sourceName, platform, spec)
	weaknesses := buildWeaknesses(scores, platform, spec)
	recommendations := buildRecommendations(allText, platform, spec)

	detailed := DetailedFeedback{
		Visual:        detailParagraph(r, scores.Visual, categoryVisual, sliceKeywords(keywords, 0, 2)),
		UX:            detailParagraph(r, scores.UX, categoryUX, sliceKeywords(keywords, 2, 4)),
		Communication: detailParagraph(r, scores.Communication, categoryComm, sliceKeywords(keywords, 4, maxContextKeywords)),
	}

	seniority, benchmark := seniorityFor(scores.Overall)

	title := req.Title
	if title == "" {
		title = "Portfolio"
	}

	return Result{
		VisualScore:         scores.Visual,
		UXScore:             scores.UX,
		CommunicationScore:  scores.Communication,
		OverallScore:        scores.Overall,
		HireabilityScore:    scores.Hireability,
		RecruiterVerdict:    buildVerdict(scores, sourceName, spec, keywords),
		Strengths:           strengths,
		Weaknesses:          weaknesses,
		Recommendations:     recommendations,
		DetailedFeedback:    detailed,
		SeniorityAssessment: seniority,
		IndustryBenchmark:   benchmark,
		Meta: Meta{
			Title:          title,
			Description:    truncateDescription(req.Description),
			Platform:       platform,
			Specialization: spec,
		},
		AIGenerated: false,
		ModelUsed:   ModelLabel,
	}
}

func sliceKeywords(keywords []string, lo, hi int) []string {
	if lo >= len(keywords) {
		return nil
	}
	if hi > len(keywords) {
		hi = len(keywords)
	}
	return keywords[lo:hi]
}

// truncateDescription limits a description to 200 characters. Counting runes
// keeps multi-byte text valid UTF-8 after the cut.
func truncateDescription(desc string) string {
	const limit = 200
	runes := []rune(desc)
	if len(runes) <= limit {
		return desc
	}
	return string(runes[:limit]) + "..."
}
