package cohort

import (
	"math"

	"github.com/ramonehamilton/Rank-Forecaster/internal/keyword"
)

// Cohort names the three movement-probability profiles a rule can allocate
// mass to. "Stays" is not a cohort; it is the derived residual.
const (
	CohortA = "A"
	CohortB = "B"
	CohortC = "C"
)

// Rule assigns keywords to movement-probability cohorts. Every populated
// filter field must match (AND semantics); an unset filter matches
// everything. Numeric bounds are inclusive.
type Rule struct {
	// Optional numeric range filters. Nil means unbounded on that side.
	PositionMin   *int
	PositionMax   *int
	DifficultyMin *float64
	DifficultyMax *float64

	// Optional categorical filters. Empty string matches everything.
	SerpFeature string
	Intent      string
	Country     string
	Device      string

	// Probability weights for cohorts A, B and C, each in [0,1].
	ProbA float64
	ProbB float64
	ProbC float64

	// CohortOverride, when set, assigns matching keywords to that cohort
	// deterministically with no probability blending.
	CohortOverride string
}

// DefaultRules returns the default rule list: one unconditional rule
// splitting movement probability evenly at 0.3 per cohort (residual 0.1).
func DefaultRules() []Rule {
	return []Rule{{ProbA: 0.3, ProbB: 0.3, ProbC: 0.3}}
}

// Residual returns the derived "stays" probability: whatever mass the three
// cohorts leave unallocated, floored at zero.
func (r *Rule) Residual() float64 {
	return math.Max(0, 1-(r.ProbA+r.ProbB+r.ProbC))
}

// Valid reports whether the rule's allocation is consistent. A rule whose
// cohort weights sum above 1 is invalid; the over-allocation is preserved
// and surfaced to the caller rather than silently corrected, and the
// residual is forced to zero.
func (r *Rule) Valid() bool {
	return r.ProbA+r.ProbB+r.ProbC <= 1
}

// Matches reports whether the keyword satisfies every populated filter on
// the rule.
func (r *Rule) Matches(record *keyword.Record) bool {
	if r.PositionMin != nil && record.Position < *r.PositionMin {
		return false
	}
	if r.PositionMax != nil && record.Position > *r.PositionMax {
		return false
	}

	if r.DifficultyMin != nil || r.DifficultyMax != nil {
		if record.Difficulty == nil {
			return false
		}
		if r.DifficultyMin != nil && *record.Difficulty < *r.DifficultyMin {
			return false
		}
		if r.DifficultyMax != nil && *record.Difficulty > *r.DifficultyMax {
			return false
		}
	}

	if r.SerpFeature != "" && !hasFeature(record.SerpFeatures, r.SerpFeature) {
		return false
	}
	if r.Intent != "" && record.Intent != r.Intent {
		return false
	}
	if r.Country != "" && record.Country != r.Country {
		return false
	}
	if r.Device != "" && record.Device != r.Device {
		return false
	}

	return true
}

func hasFeature(features []string, want string) bool {
	for _, feature := range features {
		if feature == want {
			return true
		}
	}
	return false
}

// Allocation is the outcome of matching a keyword against a rule: either a
// deterministic override cohort, or a 3-way probability split plus the
// derived residual.
type Allocation struct {
	ProbA    float64
	ProbB    float64
	ProbC    float64
	Residual float64

	// Override holds the cohort name when the rule bypassed blending.
	Override string

	// Valid is false when the rule's weights sum above 1. Computation
	// proceeds with the forced-zero residual; the flag is for display.
	Valid bool
}

// Allocate produces the rule's allocation for a matched keyword.
func (r *Rule) Allocate() Allocation {
	if r.CohortOverride != "" {
		return Allocation{Override: r.CohortOverride, Valid: true}
	}
	return Allocation{
		ProbA:    r.ProbA,
		ProbB:    r.ProbB,
		ProbC:    r.ProbC,
		Residual: r.Residual(),
		Valid:    r.Valid(),
	}
}

// DominantCohort returns the cohort holding the largest share of the
// allocation, or empty when "stays" dominates. An override wins outright.
func (a Allocation) DominantCohort() string {
	if a.Override != "" {
		return a.Override
	}

	best, bestWeight := "", a.Residual
	for _, candidate := range []struct {
		name   string
		weight float64
	}{
		{CohortA, a.ProbA},
		{CohortB, a.ProbB},
		{CohortC, a.ProbC},
	} {
		if candidate.weight > bestWeight {
			best, bestWeight = candidate.name, candidate.weight
		}
	}
	return best
}

// RuleSet is an ordered rule list. Order is significant: Assign evaluates
// rules top to bottom and the first match wins, so an early narrow rule
// shadows later catch-alls.
type RuleSet struct {
	Rules []Rule
}

// Assign matches the keyword against the rules in order and returns the
// first matching rule's allocation. ok is false when no rule matched.
func (s *RuleSet) Assign(record *keyword.Record) (Allocation, bool) {
	for i := range s.Rules {
		if s.Rules[i].Matches(record) {
			return s.Rules[i].Allocate(), true
		}
	}
	return Allocation{}, false
}
