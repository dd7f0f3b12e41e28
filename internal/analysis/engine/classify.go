package engine

import "strings"

// Platform identifies where a portfolio is hosted.
type Platform string

const (
	PlatformBehance  Platform = "behance"
	PlatformDribbble Platform = "dribbble"
	PlatformLinkedIn Platform = "linkedin"
	PlatformNotion   Platform = "notion"
	PlatformCustom   Platform = "custom"
	PlatformGeneric  Platform = "generic"
)

// Specialization is the design discipline inferred from page text.
type Specialization string

const (
	SpecMobile   Specialization = "mobile"
	SpecWeb      Specialization = "web"
	SpecBranding Specialization = "branding"
	SpecResearch Specialization = "research"
	SpecMotion   Specialization = "motion"
	SpecGeneral  Specialization = "general"
)

// DetectPlatform classifies a portfolio URL. First matching rule wins.
func DetectPlatform(sourceURL string) Platform {
	if sourceURL == "" {
		return PlatformGeneric
	}
	lower := strings.ToLower(sourceURL)
	switch {
	case strings.Contains(lower, "behance.net"):
		return PlatformBehance
	case strings.Contains(lower, "dribbble.com"):
		return PlatformDribbble
	case strings.Contains(lower, "linkedin.com"):
		return PlatformLinkedIn
	case containsAny(lower, "notion.so", "notion.site"):
		return PlatformNotion
	case containsAny(lower, "framer.com", "webflow.io", "squarespace"):
		return PlatformCustom
	default:
		return PlatformGeneric
	}
}

// specializationRules are checked in priority order; the first hit wins.
var specializationRules = []struct {
	spec     Specialization
	keywords []string
}{
	{SpecMobile, []string{"mobile", "ios", "android", "app"}},
	{SpecWeb, []string{"web", "saas", "dashboard", "webapp"}},
	{SpecBranding, []string{"brand", "identity", "logo", "visual identity"}},
	{SpecResearch, []string{"ux research", "user research", "usability"}},
	{SpecMotion, []string{"3d", "motion", "animation", "video"}},
}

// DetectSpecialization classifies the design discipline from page text.
func DetectSpecialization(title, description string) Specialization {
	allText := strings.ToLower(title + " " + description)
	for _, rule := range specializationRules {
		if containsAny(allText, rule.keywords...) {
			return rule.spec
		}
	}
	return SpecGeneral
}

// SourceName renders the human label used in verdict prose.
func SourceName(sourceURL string) string {
	if sourceURL == "" {
		return "portfolio"
	}
	switch DetectPlatform(sourceURL) {
	case PlatformBehance:
		return "Behance portfolio"
	case PlatformDribbble:
		return "Dribbble page"
	case PlatformLinkedIn:
		return "LinkedIn profile"
	default:
		return "web portfolio"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
