package engine

import (
	"fmt"
	"strings"
)

// seniorityBands cover the whole 0-100 range without gaps; the first band
// whose floor is met wins.
var seniorityBands = []struct {
	floor         float64
	level         string
	justification string
	benchmark     string
}{
	{90, "Lead/Principal", "Demonstrates FAANG-level craft and strategic thinking.", "Comparable to Senior/Lead designers at Stripe, Figma, or Linear."},
	{80, "Senior", "Strong IC ready for complex, ambiguous problems.", "Comparable to Senior designers at well-funded Series B+ startups."},
	{70, "Mid-Level", "Solid fundamentals with clear path to senior.", "Comparable to Mid-level designers at established tech companies."},
	{60, "Junior/Mid", "Growing skills, benefits from mentorship.", "Comparable to Junior/Mid designers at early-stage startups."},
	{0, "Junior", "Entry-level with potential for growth.", "Entry-level, suitable for internships or junior roles."},
}

func seniorityFor(overall float64) (assessment, benchmark string) {
	for _, band := range seniorityBands {
		if overall >= band.floor {
			return fmt.Sprintf("%s - %s", band.level, band.justification), band.benchmark
		}
	}
	last := seniorityBands[len(seniorityBands)-1]
	return fmt.Sprintf("%s - %s", last.level, last.justification), last.benchmark
}

func verdictQuality(hireability float64) string {
	switch {
	case hireability >= 85:
		return "Top-Tier"
	case hireability >= 75:
		return "Strong"
	default:
		return "Developing"
	}
}

func buildVerdict(scores Scores, sourceName string, spec Specialization, keywords []string) string {
	quality := verdictQuality(scores.Hireability)

	specClause := "with versatile design skills"
	if spec != SpecGeneral {
		specClause = fmt.Sprintf("with evident strength in %s design", spec)
	}

	focus := "digital product design"
	if len(keywords) > 0 {
		focus = strings.Join(keywords, ", ")
	}

	var closing string
	switch {
	case scores.Overall >= 80:
		closing = "exceptional promise and immediate hire potential"
	case scores.Overall >= 70:
		closing = "clear capability with room for growth"
	default:
		closing = "foundational skills ready for mentorship"
	}

	return fmt.Sprintf("A %s Candidate %s. For a %s focusing on %s, The portfolio shows %s.",
		quality, specClause, sourceName, focus, closing)
}
