package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ramonehamilton/Rank-Forecaster/internal/session"
	"github.com/ramonehamilton/Rank-Forecaster/internal/stats"
	"github.com/ramonehamilton/Rank-Forecaster/internal/traffic"
)

// SummaryDisplayer prints analysis results in a readable terminal format.
type SummaryDisplayer struct {
	out io.Writer
}

// NewSummaryDisplayer creates a displayer writing to stdout.
func NewSummaryDisplayer() *SummaryDisplayer {
	return &SummaryDisplayer{out: os.Stdout}
}

// NewSummaryDisplayerWriter creates a displayer writing to the given writer.
func NewSummaryDisplayerWriter(out io.Writer) *SummaryDisplayer {
	return &SummaryDisplayer{out: out}
}

// DisplayResults prints the full results of a pipeline run: totals,
// position distribution, top opportunities, and any rule warnings.
func (d *SummaryDisplayer) DisplayResults(results *session.Results) error {
	if results == nil || results.Summary == nil {
		fmt.Fprintln(d.out, "No results to display.")
		return nil
	}

	d.displayTotals(results.Summary)
	d.displayDistribution(results.Summary)
	d.displayOpportunities(results.Summary)
	d.displayRuleWarnings(results.InvalidRules)

	return nil
}

// displayTotals prints the aggregate traffic figures.
func (d *SummaryDisplayer) displayTotals(summary *stats.Summary) {
	fmt.Fprintf(d.out, "\n")
	fmt.Fprintf(d.out, "Traffic Projection Summary\n")
	fmt.Fprintf(d.out, "══════════════════════════\n\n")
	fmt.Fprintf(d.out, "Keywords Analyzed:      %d\n", summary.KeywordCount)
	fmt.Fprintf(d.out, "Current Traffic:        %.2f\n", summary.TotalCurrentTraffic)
	fmt.Fprintf(d.out, "Expected Traffic:       %.2f\n", summary.TotalExpectedTraffic)
	fmt.Fprintf(d.out, "Expected Gain:          %+.2f\n", summary.TotalGain)
	fmt.Fprintf(d.out, "Positive Gain Upside:   %.2f\n\n", summary.TotalPositiveGain)
}

// displayDistribution prints the keyword count per position range.
func (d *SummaryDisplayer) displayDistribution(summary *stats.Summary) {
	fmt.Fprintf(d.out, "Position Distribution:\n")
	for _, label := range stats.PositionRanges {
		count := summary.PositionDistribution[label]
		fmt.Fprintf(d.out, "  %-6s %4d  %s\n", label, count, strings.Repeat("█", barLength(count, summary.KeywordCount)))
	}
	fmt.Fprintln(d.out)
}

// displayOpportunities prints the ranked opportunity table.
func (d *SummaryDisplayer) displayOpportunities(summary *stats.Summary) {
	if len(summary.TopOpportunities) == 0 {
		fmt.Fprintln(d.out, "No positive-gain opportunities found.")
		return
	}

	fmt.Fprintf(d.out, "Top Opportunities:\n")
	fmt.Fprintf(d.out, "%-4s %-28s %-10s %-8s %s\n", "#", "Keyword", "Position", "Volume", "Expected Gain")
	fmt.Fprintf(d.out, "%s\n", strings.Repeat("─", 66))
	for i, opp := range summary.TopOpportunities {
		fmt.Fprintf(d.out, "%-4d %-28s %-10d %-8d %+.2f\n",
			i+1,
			opp.Keyword,
			opp.Position,
			opp.SearchVolume,
			opp.ExpectedGain,
		)
	}
	fmt.Fprintln(d.out)
}

// displayRuleWarnings prints a warning for each over-allocated cohort rule.
func (d *SummaryDisplayer) displayRuleWarnings(invalidRules []int) {
	for _, idx := range invalidRules {
		fmt.Fprintf(d.out, "Warning: cohort rule %d allocates more than 100%%; its residual was forced to zero.\n", idx)
	}
	if len(invalidRules) > 0 {
		fmt.Fprintln(d.out)
	}
}

// DisplayKeywordsCompact prints one line per projected keyword.
func (d *SummaryDisplayer) DisplayKeywordsCompact(projected []*traffic.ProjectedKeyword) error {
	if len(projected) == 0 {
		fmt.Fprintln(d.out, "No keywords matched the configured thresholds.")
		return nil
	}

	fmt.Fprintf(d.out, "\n%-28s %-10s %-8s %-12s %-12s %s\n",
		"Keyword", "Position", "Volume", "Current", "Expected", "Cohort")
	fmt.Fprintf(d.out, "%s\n", strings.Repeat("─", 80))

	for _, pk := range projected {
		cohort := pk.Cohort
		if cohort == "" {
			cohort = "-"
		}
		fmt.Fprintf(d.out, "%-28s %-10d %-8d %-12.2f %-12.2f %s\n",
			truncateKeyword(pk.Record.Text, 26),
			pk.Record.Position,
			pk.Record.SearchVolume,
			pk.Projection.CurrentTraffic,
			pk.Forecast.ExpectedTraffic,
			cohort,
		)
	}

	fmt.Fprintln(d.out)
	return nil
}

// barLength scales a count to a bar of at most 30 characters.
func barLength(count, total int) int {
	if total == 0 || count == 0 {
		return 0
	}
	length := count * 30 / total
	if length == 0 {
		return 1
	}
	return length
}

// truncateKeyword truncates a keyword to the specified length, adding "..."
// if truncated.
func truncateKeyword(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
