package engine

import (
	"fmt"
	"math/rand"
	"strings"
)

const (
	maxStrengths       = 5
	maxWeaknesses      = 4
	maxRecommendations = 6
	maxContextKeywords = 5
)

// stopwords excluded from context keywords.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "a": {}, "to": {}, "of": {}, "in": {}, "for": {},
	"is": {}, "on": {}, "with": {}, "my": {}, "i": {}, "am": {},
}

// contextKeywords extracts up to five keywords from a page description in
// first-appearance order, which keeps results stable run to run.
func contextKeywords(description string) []string {
	if description == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var keywords []string
	for _, word := range splitWords(strings.ToLower(description)) {
		if _, skip := stopwords[word]; skip {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
		if len(keywords) == maxContextKeywords {
			break
		}
	}
	return keywords
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
		return !isAlnum
	})
}

// detailParagraph builds one detailed-feedback paragraph for a category:
// three phrases sampled without replacement from the tier pool, joined with
// fixed connectives, plus an optional keyword clause.
func detailParagraph(r *rand.Rand, score float64, category string, keywords []string) string {
	pool := phrasePool(category, tierForScore(score))
	selected := sample(r, pool, 3)

	var b strings.Builder
	fmt.Fprintf(&b, "The %s (Score: %d) %s Additionally, %s", category, int(score), selected[0], selected[1])
	fmt.Fprintf(&b, " Furthermore, %s", selected[2])
	if len(keywords) > 0 {
		fmt.Fprintf(&b, " This aligns with the focus on '%s'.", keywords[0])
	}
	return b.String()
}

func buildStrengths(scores Scores, sourceName string, platform Platform, spec Specialization) []string {
	var strengths []string

	switch {
	case scores.Visual >= 80:
		strengths = append(strengths, fmt.Sprintf("The %s demonstrates exceptional visual polish that immediately communicates professionalism and attention to detail. The high-fidelity execution shows a designer who understands that craft quality directly impacts perceived trustworthiness. This level of visual refinement is comparable to senior-level work at design-forward companies like Stripe or Linear.", sourceName))
		if s, ok := platformStrengths[platform]; ok {
			strengths = append(strengths, s)
		}
		strengths = append(strengths, "Typographic hierarchy is handled with confidence, effectively guiding reader attention through content. The consistent rhythm between headings, subheadings, and body text creates a professional reading experience that respects the viewer's time and cognitive load.")
	case scores.Visual >= 70:
		strengths = append(strengths,
			"The layout is clean and functional, presenting work in a professional manner suitable for most hiring contexts. While there's room to push for more distinctive styling, the fundamentals are solid and would represent the designer well in interviews.",
			"Fundamental design principles like alignment, proximity, and balance are applied consistently throughout. This foundation suggests a designer who can be trusted with production work and is ready to develop more advanced skills with mentorship.")
	default:
		strengths = append(strengths, "The portfolio shows emerging understanding of layout structure and composition basics. With focused practice on fundamental principles like the 8-point grid and typographic scale, the visual execution will improve significantly. The foundational thinking is present.")
	}

	switch {
	case scores.UX >= 80:
		strengths = append(strengths, "Case studies demonstrate genuine user-centric thinking, clearly articulating the problem space before jumping to solutions. This problem-first approach is exactly what hiring managers look for, as it indicates a designer who will ask 'why' before 'what.'")
		if s, ok := specializationStrengths[spec]; ok {
			strengths = append(strengths, s)
		}
	case scores.UX >= 70:
		strengths = append(strengths, "Problem definitions in case studies are solid, providing enough context for viewers to understand the design challenges. With more emphasis on research methodology and testing evidence, these case studies would be even more compelling to hiring managers.")
	}

	if scores.Communication >= 80 {
		strengths = append(strengths, "Storytelling throughout the portfolio is compelling, making complex projects accessible to viewers who may not be designers. The narrative arc of each case study builds interest and leads naturally to showcasing the designer's impact. This communication skill is often what separates senior designers from mid-level ones.")
	}

	return truncateList(strengths, maxStrengths)
}

var platformStrengths = map[Platform]string{
	PlatformBehance:  "The Behance project layout is used strategically to guide viewers through the work. Progressive disclosure of information keeps engagement high, and the hero images are optimized for the platform's gallery format. This demonstrates platform-specific thinking that many designers overlook.",
	PlatformDribbble: "Shot composition shows a strong understanding of visual impact in a feed-based environment. Each piece is designed to capture attention quickly while maintaining enough depth for closer inspection. This balance is difficult to achieve and shows design maturity.",
	PlatformCustom:   "Building a custom portfolio site demonstrates valuable technical implementation skills beyond pure design. This shows recruiters that the designer can bridge the gap between design and development, making them more versatile and valuable to product teams.",
}

var specializationStrengths = map[Specialization]string{
	SpecMobile:   "Strong understanding of mobile-specific UX patterns is evident throughout the work. Touch targets, gesture conventions, and thumb-zone considerations show a designer who thinks beyond visual design into true interaction design. This depth is increasingly valuable.",
	SpecWeb:      "Expertise in responsive web design and dashboard UX shines through the portfolio. The work shows understanding of complex information architecture and how users navigate data-heavy interfaces. This specialization is in high demand.",
	SpecResearch: "Research methodology is exceptional, with clear synthesis from insights to design decisions. The portfolio demonstrates both applied rigor and the ability to communicate research value to stakeholders. This is a rare and valuable skill combination.",
}

func buildWeaknesses(scores Scores, platform Platform, spec Specialization) []string {
	var weaknesses []string

	if scores.Visual < 75 {
		weaknesses = append(weaknesses, "Visual hierarchy could be strengthened, particularly in how primary calls-to-action are presented. When CTAs don't have sufficient contrast, users struggle to identify next steps, which undermines the designer's credibility in demonstrating conversion-focused thinking. Consider studying effective landing pages from companies like Stripe or Wise for hierarchy inspiration.")
		if platform == PlatformDribbble {
			weaknesses = append(weaknesses, "Dribbble shots need stronger visual hooks to stand out in the competitive feed environment. The first impression happens in milliseconds, and current compositions may be getting lost among more attention-grabbing work. Study top Dribbble performers to understand what creates immediate visual impact while maintaining substance.")
		}
	}
	if scores.UX < 75 {
		weaknesses = append(weaknesses, "Process documentation could go deeper into the 'why' behind design decisions. Currently, the case studies show what was done but don't fully articulate the research insights or user feedback that drove those choices. Adding this layer transforms a portfolio from 'pretty pictures' to 'evidence-based design thinking.'")
		if spec == SpecMobile {
			weaknesses = append(weaknesses, "Mobile-specific patterns like gestures, thumb zones, and device-specific considerations could be better documented. These details show a deep understanding of the platform and differentiate mobile specialists from generalists. Consider adding annotations explaining why certain interaction patterns were chosen.")
		}
	}
	if scores.Communication < 75 {
		weaknesses = append(weaknesses, "Case studies would benefit from clearer before/after impact metrics. While the visual work is shown, the business or user impact isn't quantified, which makes it harder for recruiters to assess ROI. Even estimated improvements (e.g., 'projected 25% reduction in support tickets') demonstrate business acumen.")
	}

	if len(weaknesses) == 0 {
		weaknesses = append(weaknesses, "While the portfolio is strong overall, adding more quantitative outcomes would further strengthen credibility. Numbers and metrics make abstract design impact concrete and memorable. Consider adding engagement data, conversion improvements, or user satisfaction scores even if they're approximations.")
	}

	return truncateList(weaknesses, maxWeaknesses)
}

var platformRecommendations = map[Platform][]string{
	PlatformBehance: {
		"Behance Optimization: Add more project modules and appreciation-worthy hero images.",
		"Cross-Posting: Repurpose top Behance projects as Medium articles for SEO.",
	},
	PlatformDribbble: {
		"Dribbble Strategy: Post process shots and case study breakdowns, not just finals.",
		"Tags & Timing: Optimize posting times and use trending tags for visibility.",
	},
	PlatformLinkedIn: {
		"LinkedIn Polish: Add a featured section with direct links to full case studies.",
		"Thought Leadership: Write short posts about your design process to build authority.",
	},
	PlatformNotion: {
		"Notion Upgrade: Consider migrating to a custom domain for a more professional presence.",
		"Visual Polish: Notion templates can feel generic - add custom graphics and icons.",
	},
	PlatformCustom: {
		"Performance: Ensure your custom site loads in under 3 seconds on mobile.",
		"SEO: Add meta descriptions and alt text to improve discoverability.",
	},
	PlatformGeneric: {
		"Platform Presence: Consider creating profiles on Behance and Dribbble for visibility.",
	},
}

var specializationRecommendations = map[Specialization][]string{
	SpecMobile: {
		"Mobile Deep Dive: Add device-specific annotations explaining gesture decisions.",
		"Prototype Links: Include Figma/ProtoPie prototypes to demonstrate interactions.",
	},
	SpecWeb: {
		"Responsive Showcase: Add tablet and mobile versions to demonstrate adaptive thinking.",
		"Technical Context: Mention collaboration with developers and any handoff artifacts.",
	},
	SpecBranding: {
		"Brand System: Showcase the full identity system including applications.",
		"Motion Identity: Consider adding logo animations or brand motion guidelines.",
	},
	SpecResearch: {
		"Research Portfolio: Create a dedicated research showcase with methodology templates.",
		"Impact Metrics: Quantify how research insights influenced final design decisions.",
	},
	SpecMotion: {
		"Showreel: Create a 60-second highlight reel of your best motion work.",
		"Process Breakdown: Show the animation principles behind key moments.",
	},
}

func buildRecommendations(allText string, platform Platform, spec Specialization) []string {
	var recs []string

	if strings.Contains(allText, "case") || strings.Contains(allText, "study") {
		recs = append(recs, "Outcome Focus: Lead case study titles with results (e.g., 'Increased Conversion by 35%').")
	} else {
		recs = append(recs, "Add Case Studies: Transform project showcases into narrative-driven case studies.")
	}

	recs = append(recs, platformRecommendations[platform]...)
	recs = append(recs, specializationRecommendations[spec]...)

	recs = append(recs,
		"Social Proof: Add testimonials from colleagues, managers, or clients.",
		"About Section: Clearly state your unique value proposition in the first sentence.")

	return truncateList(recs, maxRecommendations)
}

func truncateList(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}
