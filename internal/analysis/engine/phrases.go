package engine

// Category labels used in detailed feedback paragraphs.
const (
	categoryVisual = "Visual Design"
	categoryUX     = "User Experience"
	categoryComm   = "Communication & Storytelling"
)

type tier int

const (
	tierLow tier = iota
	tierMid
	tierHigh
)

func tierForScore(score float64) tier {
	switch {
	case score >= 80:
		return tierHigh
	case score >= 70:
		return tierMid
	default:
		return tierLow
	}
}

func phrasePool(category string, t tier) []string {
	switch category {
	case categoryVisual:
		switch t {
		case tierHigh:
			return phrasesHighVisual
		case tierMid:
			return phrasesMidVisual
		default:
			return phrasesLowVisual
		}
	case categoryUX:
		switch t {
		case tierHigh:
			return phrasesHighUX
		case tierMid:
			return phrasesMidUX
		default:
			return phrasesLowUX
		}
	case categoryComm:
		switch t {
		case tierHigh:
			return phrasesHighComm
		case tierMid:
			return phrasesMidComm
		default:
			return phrasesLowComm
		}
	default:
		return phrasesLowVisual
	}
}

var phrasesHighVisual = []string{
	"masterfully applies the Golden Ratio to establish a harmonious grid structure.",
	"demonstrates exceptional command of typographic rhythm and vertical cadence.",
	"utilizes Gestalt principles (Proximity, Common Region) to create intuitive grouping.",
	"exhibits a refined color methodology that balances brand equity with WCAG 2.1 accessibility.",
	"employs sophisticated use of negative space to drive cognitive focus.",
	"showcases a pixel-perfect execution reminiscent of top-tier agency work.",
	"achieves visual harmony through deliberate contrast ratios and type scaling.",
	"presents a cohesive design system with reusable components and patterns.",
	"demonstrates mastery of visual weight distribution across the layout.",
	"employs a restrained color palette that elevates rather than overwhelms.",
	"showcases exceptional attention to micro-details like icon consistency and shadow depth.",
	"balances aesthetic appeal with functional clarity in every screen.",
	"presents a premium visual language that positions the designer at senior level.",
	"demonstrates understanding of platform-specific design guidelines (iOS/Material).",
	"achieves elegant data visualization that transforms complexity into clarity.",
	"uses motion design principles even in static mockups through implied movement.",
	"showcases typography that breathes - proper line-height and letter-spacing throughout.",
	"presents a color system with clear semantic meaning (success/error/warning states).",
	"demonstrates sophisticated use of depth through layering and elevation.",
	"achieves visual storytelling through thoughtful image selection and cropping.",
}

var phrasesMidVisual = []string{
	"maintains a solid visual hierarchy but could push for more dynamic tension.",
	"adheres to fundamental grid systems, though the gutters feel slightly constrained.",
	"uses a consistent design language that aligns with current material design standards.",
	"achieves a clean aesthetic, though the typographic scale lacks some contrast.",
	"presents a polished interface that communicates reliability.",
	"shows good baseline visual skills with room for elevated execution.",
	"uses color effectively though the palette could be more distinctive.",
	"demonstrates competent layout skills that meet industry expectations.",
	"presents readable typography though the hierarchy could be sharper.",
	"shows understanding of visual principles with some inconsistencies in application.",
	"achieves functional clarity though the visual personality is understated.",
	"uses spacing systematically though the rhythm could be more intentional.",
	"demonstrates solid foundational skills ready for refinement.",
	"presents work that is visually competent with clear growth potential.",
	"shows awareness of trends without fully owning a distinctive style.",
}

var phrasesLowVisual = []string{
	"shows potential but requires more rigour in fundamental execution.",
	"presents ideas clearly, but the visual polish detracts from the solution.",
	"would benefit from a stricter adherence to a 4pt/8pt grid system.",
	"needs stronger typographic hierarchy to guide the viewer's attention.",
	"could improve contrast ratios for better accessibility compliance.",
	"shows emerging skills that would benefit from systematic study.",
	"presents work that prioritizes content over visual refinement.",
	"demonstrates foundational understanding with notable gaps in execution.",
	"would benefit from studying established design systems like Material or HIG.",
	"shows enthusiasm for design with room for technical skill development.",
}

var phrasesHighUX = []string{
	"articulates a user journey map that perfectly addresses pain points and friction.",
	"demonstrates rigorous usability testing methodology with clear iteration cycles.",
	"optimizes interaction cost (Fitt's Law, Hick's Law) to reduce cognitive load.",
	"showcases deep empathy for the persona through comprehensive research artifacts.",
	"seamlessly integrates micro-interactions that enhance perceived performance.",
	"presents a research-driven approach with clear insights-to-design mapping.",
	"demonstrates systems thinking in how components interconnect across flows.",
	"shows evidence of user testing with documented findings and iterations.",
	"articulates clear success metrics and how design decisions ladder up to them.",
	"presents accessibility as a core consideration, not an afterthought.",
	"demonstrates understanding of edge cases and error states in user flows.",
	"shows strategic thinking in feature prioritization and MVP scoping.",
	"presents comprehensive user personas based on actual research data.",
	"documents the design rationale with clear 'why' behind each decision.",
	"shows iteration history that demonstrates responsive problem-solving.",
	"integrates quantitative and qualitative research methodologies.",
	"presents information architecture that scales logically with content growth.",
	"demonstrates cross-functional collaboration in the design process.",
	"shows awareness of technical constraints while pushing for user value.",
	"presents a design that anticipates user needs proactively.",
}

var phrasesMidUX = []string{
	"shows a clear understanding of user flows, though the edge cases need attention.",
	"presents valid wireframes, but high-fidelity prototyping could explore more states.",
	"addresses the primary use case well, but accessibility considerations are unclear.",
	"follows standard heuristic principles (Nielsen's 10) for interface design.",
	"demonstrates process awareness with room for deeper research integration.",
	"shows user-centered thinking though the research artifacts are limited.",
	"presents logical task flows with some gaps in error handling.",
	"demonstrates understanding of UX fundamentals with growing sophistication.",
	"shows awareness of user needs though validation methods are not documented.",
	"presents structured thinking with room for more rigorous methodology.",
	"demonstrates problem-solving skills with opportunity for deeper analysis.",
	"shows good instincts for user needs that would benefit from research validation.",
	"presents organized thinking that could be elevated with more artifacts.",
	"demonstrates process understanding ready for more complex challenges.",
}

var phrasesLowUX = []string{
	"needs to focus on the 'Why' rather than just the 'What' in case studies.",
	"would benefit from documenting the research and discovery process.",
	"shows potential for UX thinking that needs structured methodology.",
	"presents solutions without clearly articulating the problem space.",
	"would benefit from user testing to validate design assumptions.",
	"demonstrates visual skills that could be strengthened with UX process.",
	"needs clearer articulation of user needs and pain points.",
	"shows eagerness to solve problems with room for research skills.",
	"presents work that would benefit from design thinking frameworks.",
	"demonstrates creative solutions that need user validation.",
}

var phrasesHighComm = []string{
	"structures the case study with a compelling STAR narrative.",
	"effectively quantifies design impact using specific KPIs (Conversion, Retention).",
	"balances high-level strategy with granular design decisions seamlessly.",
	"presents 'Concept to Launch' evolution with remarkable clarity and honesty.",
	"demonstrates strategic thinking by linking design outcomes to business goals.",
	"tells a compelling story that hooks the reader from the first paragraph.",
	"uses data visualization to communicate complex metrics accessibly.",
	"presents failures and pivots honestly, showing mature self-reflection.",
	"articulates constraints and tradeoffs with professional candor.",
	"demonstrates clear writing that respects the reader's time.",
	"uses progressive disclosure to guide readers through complexity.",
	"presents before/after comparisons that quantify improvement.",
	"shows awareness of audience by tailoring depth appropriately.",
	"demonstrates thought leadership through unique insights.",
	"uses visual hierarchy in case study layout to guide reading flow.",
	"presents a clear thesis statement for each case study.",
	"shows excellent pacing that maintains reader engagement.",
	"demonstrates ability to synthesize complex projects into digestible narratives.",
	"uses quotes and testimonials to add credibility.",
	"presents work with appropriate confidence and humility balance.",
}

var phrasesMidComm = []string{
	"clearly outlines the problem statement, but the 'Why' behind decisions is brief.",
	"presents the final solution well, but the 'messy middle' process is glossed over.",
	"communicates the design intent, but success metrics are largely qualitative.",
	"structure follows a logical flow, though the narrative hook could be stronger.",
	"presents clear information with room for more engaging storytelling.",
	"shows good organizational skills in presenting work.",
	"demonstrates ability to explain decisions with room for deeper rationale.",
	"presents work professionally with opportunity for more personality.",
	"shows structured thinking in case study organization.",
	"demonstrates clear communication with room for more impact metrics.",
	"presents projects comprehensively with opportunity for better pacing.",
	"shows awareness of storytelling with room for more compelling hooks.",
	"demonstrates professional presentation standards.",
}

var phrasesLowComm = []string{
	"would benefit from clearer problem-solution-outcome structure.",
	"needs more context about the project goals and constraints.",
	"shows work without fully explaining the design thinking behind it.",
	"presents outcomes without quantifying the impact.",
	"would benefit from studying case study best practices.",
	"demonstrates work that could use stronger narrative framing.",
	"shows projects that need clearer articulation of value.",
	"presents work that would benefit from more detailed process documentation.",
	"needs stronger connection between research insights and design decisions.",
	"demonstrates work with room for storytelling skill development.",
}
