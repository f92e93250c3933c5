package stats

import (
	"sort"

	"github.com/ramonehamilton/Rank-Forecaster/internal/traffic"
)

const (
	// maxOpportunities caps the ranked opportunity list.
	maxOpportunities = 10

	// keywordDisplayLimit is the display truncation length for keyword text
	// in the opportunity list.
	keywordDisplayLimit = 25
)

// PositionRanges lists the reporting ranges for the count distribution, in
// display order. These are reporting buckets, intentionally coarser than
// the modeling buckets used for CTR lookup.
var PositionRanges = []string{"1-3", "4-10", "11-20", "21-50", "50+"}

// Opportunity is one entry in the ranked opportunity list.
type Opportunity struct {
	Keyword      string  // Display text, truncated; source records are never mutated
	Position     int     // Current rank position
	SearchVolume int     // Monthly search volume
	ExpectedGain float64 // Strictly positive expected traffic gain
}

// Summary is the portfolio-level rollup of a projected keyword collection.
type Summary struct {
	KeywordCount         int
	TotalCurrentTraffic  float64
	TotalExpectedTraffic float64

	// TotalGain is expected minus current and may be negative.
	TotalGain float64

	// TotalPositiveGain sums only keywords whose expected gain is positive.
	TotalPositiveGain float64

	// PositionDistribution counts keywords per reporting range.
	PositionDistribution map[string]int

	TopOpportunities []Opportunity
}

// Summarize reduces per-keyword projections into a portfolio summary.
func Summarize(projected []*traffic.ProjectedKeyword) *Summary {
	summary := &Summary{
		KeywordCount:         len(projected),
		PositionDistribution: make(map[string]int, len(PositionRanges)),
	}
	for _, label := range PositionRanges {
		summary.PositionDistribution[label] = 0
	}

	for _, pk := range projected {
		summary.TotalCurrentTraffic += pk.Projection.CurrentTraffic
		summary.TotalExpectedTraffic += pk.Forecast.ExpectedTraffic
		if pk.Forecast.ExpectedGain > 0 {
			summary.TotalPositiveGain += pk.Forecast.ExpectedGain
		}
		summary.PositionDistribution[positionRange(pk.Record.Position)]++
	}

	summary.TotalGain = summary.TotalExpectedTraffic - summary.TotalCurrentTraffic
	summary.TopOpportunities = topOpportunities(projected)

	return summary
}

// topOpportunities returns the keywords with the largest strictly positive
// expected gains, sorted descending, capped at maxOpportunities.
func topOpportunities(projected []*traffic.ProjectedKeyword) []Opportunity {
	opportunities := make([]Opportunity, 0, len(projected))
	for _, pk := range projected {
		if pk.Forecast.ExpectedGain <= 0 {
			continue
		}
		opportunities = append(opportunities, Opportunity{
			Keyword:      truncateKeyword(pk.Record.Text),
			Position:     pk.Record.Position,
			SearchVolume: pk.Record.SearchVolume,
			ExpectedGain: pk.Forecast.ExpectedGain,
		})
	}

	sort.Slice(opportunities, func(i, j int) bool {
		return opportunities[i].ExpectedGain > opportunities[j].ExpectedGain
	})

	if len(opportunities) > maxOpportunities {
		opportunities = opportunities[:maxOpportunities]
	}

	return opportunities
}

// positionRange maps a rank position to its reporting range label.
func positionRange(position int) string {
	switch {
	case position <= 3:
		return "1-3"
	case position <= 10:
		return "4-10"
	case position <= 20:
		return "11-20"
	case position <= 50:
		return "21-50"
	default:
		return "50+"
	}
}

// truncateKeyword shortens overlong keyword text for display, appending an
// ellipsis. Truncation is rune-aware so multi-byte keywords are not split.
func truncateKeyword(text string) string {
	runes := []rune(text)
	if len(runes) <= keywordDisplayLimit {
		return text
	}
	return string(runes[:keywordDisplayLimit]) + "..."
}
