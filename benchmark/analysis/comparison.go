package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// RulesetComparison contains a statistical comparison of two rulesets
// scored over the same position sample. Scores are centipawns from
// White's perspective.
type RulesetComparison struct {
	Ruleset1 string
	Ruleset2 string

	Stats1 *DescriptiveStats
	Stats2 *DescriptiveStats

	// SignAgreement is the fraction of positions where both rulesets
	// agree on which side is better (treating |score| below the draw
	// margin as balanced).
	SignAgreement float64

	// Correlation is the Pearson correlation of the two score series.
	Correlation float64

	// MeanAbsDiff is the mean absolute score difference in centipawns.
	MeanAbsDiff float64

	// EloDelta approximates the rating difference implied by how
	// often each ruleset is the more optimistic of the two. It is a
	// rough diagnostic, not a calibrated rating.
	EloDelta float64

	MannWhitney *MannWhitneyResult
	EffectSize  *EffectSize
}

// drawMargin is the centipawn band treated as "balanced" when
// comparing score signs.
const drawMargin = 25.0

// Compare runs the full comparison of two score series. The series
// must be position-aligned and the same length.
func Compare(name1 string, scores1 []float64, name2 string, scores2 []float64) (*RulesetComparison, error) {
	if len(scores1) != len(scores2) {
		return nil, fmt.Errorf("analysis: sample sizes differ (%d vs %d)", len(scores1), len(scores2))
	}
	if len(scores1) == 0 {
		return nil, fmt.Errorf("analysis: empty sample")
	}

	c := &RulesetComparison{
		Ruleset1:    name1,
		Ruleset2:    name2,
		Stats1:      Describe(scores1),
		Stats2:      Describe(scores2),
		MannWhitney: MannWhitneyU(scores1, scores2),
		EffectSize:  ComputeEffectSize(scores1, scores2),
	}

	var agree int
	var absDiff float64
	var wins, ties int
	for i := range scores1 {
		if scoreSign(scores1[i]) == scoreSign(scores2[i]) {
			agree++
		}
		absDiff += math.Abs(scores1[i] - scores2[i])
		switch {
		case scores1[i] > scores2[i]:
			wins++
		case scores1[i] == scores2[i]:
			ties++
		}
	}
	n := float64(len(scores1))
	c.SignAgreement = float64(agree) / n
	c.MeanAbsDiff = absDiff / n
	c.Correlation = stat.Correlation(scores1, scores2, nil)
	c.EloDelta = eloFromScore((float64(wins) + float64(ties)/2) / n)

	return c, nil
}

// scoreSign classifies a score as White-better (+1), balanced (0), or
// Black-better (-1) using the draw margin.
func scoreSign(score float64) int {
	switch {
	case score > drawMargin:
		return 1
	case score < -drawMargin:
		return -1
	default:
		return 0
	}
}

// eloFromScore converts an expected score in (0,1) to an Elo
// difference, clamped to ±800 at the extremes.
func eloFromScore(p float64) float64 {
	const limit = 800
	if p <= 0 {
		return -limit
	}
	if p >= 1 {
		return limit
	}
	delta := 400 * math.Log10(p/(1-p))
	return math.Max(-limit, math.Min(limit, delta))
}

// Summary returns a human-readable summary of the comparison.
func (c *RulesetComparison) Summary() string {
	sig := "not statistically significant"
	if c.MannWhitney.Significant {
		sig = fmt.Sprintf("statistically significant (p=%.4f)", c.MannWhitney.PValue)
	}

	return fmt.Sprintf(
		"%s vs %s over %d positions:\n"+
			"  %s: mean=%.1f, median=%.1f, std=%.1f\n"+
			"  %s: mean=%.1f, median=%.1f, std=%.1f\n"+
			"  Sign agreement: %.1f%%  correlation: %.3f  mean |diff|: %.1f cp\n"+
			"  Approx Elo delta: %+.0f  effect size: %.2f (%s)\n"+
			"  Distribution difference: %s",
		c.Ruleset1, c.Ruleset2, c.Stats1.N,
		c.Ruleset1, c.Stats1.Mean, c.Stats1.Median, c.Stats1.StdDev,
		c.Ruleset2, c.Stats2.Mean, c.Stats2.Median, c.Stats2.StdDev,
		c.SignAgreement*100, c.Correlation, c.MeanAbsDiff,
		c.EloDelta, c.EffectSize.CohensD, c.EffectSize.Interpretation,
		sig,
	)
}
