package engine

import (
	"math"
	"math/rand"
)

// Score bounds and weights for the heuristic synthesizer.
const (
	subScoreMin    = 40.0
	subScoreMax    = 99.0
	hireabilityMin = 42.0
	hireabilityMax = 99.0

	weightVisual = 0.35
	weightUX     = 0.40
	weightComm   = 0.25
)

// Scores holds the five synthesized scores.
type Scores struct {
	Visual        float64
	UX            float64
	Communication float64
	Overall       float64
	Hireability   float64
}

// synthesizeScores draws the five scores. The draw order (base, visual, ux,
// communication, hireability) is fixed; changing it changes every result.
func synthesizeScores(r *rand.Rand) Scores {
	base := uniform(r, 65, 88)

	visual := clamp(math.Round(base+uniform(r, -10, 10)), subScoreMin, subScoreMax)
	ux := clamp(math.Round(base+uniform(r, -15, 10)), subScoreMin, subScoreMax)
	comm := clamp(math.Round(base+uniform(r, -10, 10)), subScoreMin, subScoreMax)

	overall := math.Round(visual*weightVisual + ux*weightUX + comm*weightComm)
	hireability := clamp(math.Round(overall+uniform(r, -3, 3)), hireabilityMin, hireabilityMax)

	return Scores{
		Visual:        visual,
		UX:            ux,
		Communication: comm,
		Overall:       overall,
		Hireability:   hireability,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
