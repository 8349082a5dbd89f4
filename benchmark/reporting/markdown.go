// Package reporting renders ruleset comparison results as Markdown.
package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/discochess/ruleval/benchmark/analysis"
	"github.com/discochess/ruleval/benchmark/pgn"
)

// MarkdownReport generates comparison reports in Markdown format.
type MarkdownReport struct {
	w io.Writer
}

// NewMarkdownReport creates a new Markdown report writer.
func NewMarkdownReport(w io.Writer) *MarkdownReport {
	return &MarkdownReport{w: w}
}

// WriteHeader writes the report header.
func (r *MarkdownReport) WriteHeader(title string) {
	fmt.Fprintf(r.w, "# %s\n\n", title)
	fmt.Fprintf(r.w, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
}

// WriteMethodology writes the position-sample section.
func (r *MarkdownReport) WriteMethodology(stats pgn.Stats, scored int) {
	fmt.Fprintln(r.w, "## Position sample")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Games parsed:** %d\n", stats.TotalGames)
	fmt.Fprintf(r.w, "- **Positions sampled:** %d (%d unique)\n", stats.TotalPositions, stats.UniquePositions)
	fmt.Fprintf(r.w, "- **Positions scored:** %d\n", scored)
	fmt.Fprintf(r.w, "- **Avg plies per game:** %.1f\n", stats.AvgPliesPerGame)
	fmt.Fprintln(r.w, "- **Statistical tests:** Mann-Whitney U (non-parametric), Cohen's d effect size")
	fmt.Fprintln(r.w)
}

// WriteComparison writes the detailed comparison section.
func (r *MarkdownReport) WriteComparison(c *analysis.RulesetComparison) {
	fmt.Fprintf(r.w, "## %s vs %s\n\n", c.Ruleset1, c.Ruleset2)

	fmt.Fprintln(r.w, "### Score distributions (centipawns, White's perspective)")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Metric | "+c.Ruleset1+" | "+c.Ruleset2+" |")
	fmt.Fprintln(r.w, "|--------|"+strings.Repeat("-", len(c.Ruleset1)+2)+"|"+strings.Repeat("-", len(c.Ruleset2)+2)+"|")
	fmt.Fprintf(r.w, "| Mean | %.1f | %.1f |\n", c.Stats1.Mean, c.Stats2.Mean)
	fmt.Fprintf(r.w, "| Median | %.1f | %.1f |\n", c.Stats1.Median, c.Stats2.Median)
	fmt.Fprintf(r.w, "| Std Dev | %.1f | %.1f |\n", c.Stats1.StdDev, c.Stats2.StdDev)
	fmt.Fprintf(r.w, "| Min | %.0f | %.0f |\n", c.Stats1.Min, c.Stats2.Min)
	fmt.Fprintf(r.w, "| Max | %.0f | %.0f |\n", c.Stats1.Max, c.Stats2.Max)
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "### Agreement")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Sign agreement:** %.1f%% of positions\n", c.SignAgreement*100)
	fmt.Fprintf(r.w, "- **Score correlation:** %.3f\n", c.Correlation)
	fmt.Fprintf(r.w, "- **Mean absolute difference:** %.1f cp\n", c.MeanAbsDiff)
	fmt.Fprintf(r.w, "- **Approximate Elo delta:** %+.0f (positive favors %s)\n", c.EloDelta, c.Ruleset1)
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "### Statistical analysis")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Mann-Whitney U:** %.2f (z=%.2f, p=%.4f)\n",
		c.MannWhitney.U, c.MannWhitney.Z, c.MannWhitney.PValue)
	fmt.Fprintf(r.w, "- **Effect size (Cohen's d):** %.2f (%s)\n",
		c.EffectSize.CohensD, c.EffectSize.Interpretation)
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "### Conclusion")
	fmt.Fprintln(r.w)
	if c.MannWhitney.Significant {
		fmt.Fprintf(r.w, "The rulesets produce statistically distinguishable score distributions (p < 0.05, effect size: %s).\n",
			c.EffectSize.Interpretation)
	} else {
		fmt.Fprintln(r.w, "No statistically significant distribution difference detected between the rulesets (p >= 0.05).")
	}
	fmt.Fprintln(r.w)
}

// WriteFooter writes the report footer.
func (r *MarkdownReport) WriteFooter() {
	fmt.Fprintln(r.w, "---")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "*Report generated by ruleval compare*")
}
