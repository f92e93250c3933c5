package traffic

import (
	"math"

	"github.com/ramonehamilton/Rank-Forecaster/internal/keyword"
)

// TransitionProbabilities describes the modeled likelihood mass (in percent)
// that a keyword lands in each destination bucket after one forward move.
// Four values are stored; the Pos11to20 mass is always derived, never stored:
// P1120 = max(0, 100 - P13 - P46 - P710 - PStay).
//
// The stored inputs are not normalized. If they already sum above 100 the
// derived mass is 0 and the total modeled mass exceeds 100; Overallocated
// surfaces that state but computation proceeds with the values as given.
type TransitionProbabilities struct {
	P13   float64 // Mass landing in Top 3
	P46   float64 // Mass landing in Pos 4-6
	P710  float64 // Mass landing in Pos 7-10
	PStay float64 // Mass remaining at the current position
}

// DefaultTransitionProbabilities returns the default transition quadruple.
func DefaultTransitionProbabilities() TransitionProbabilities {
	return TransitionProbabilities{P13: 5, P46: 15, P710: 30, PStay: 20}
}

// P1120 returns the derived Pos11to20 mass, floored at zero.
func (p TransitionProbabilities) P1120() float64 {
	return math.Max(0, 100-p.P13-p.P46-p.P710-p.PStay)
}

// Overallocated reports whether the stored inputs alone exceed 100%, i.e.
// the total modeled probability mass is above 100.
func (p TransitionProbabilities) Overallocated() bool {
	return p.P13+p.P46+p.P710+p.PStay > 100
}

// Forecast holds the probability-blended traffic outcome for one keyword.
type Forecast struct {
	ExpectedCTR     float64 // Blended effective CTR percentage
	ExpectedTraffic float64 // volume * ExpectedCTR / 100
	ExpectedGain    float64 // ExpectedTraffic - current estimated traffic
}

// ExpectedTraffic blends the CTR model with the transition probabilities to
// produce one expected-traffic figure for a keyword. This is a single
// forward move, not a Markov chain: the probability mass is spent once.
//
// The stay branch reuses the keyword's current position CTR (per-position
// entry when configured, bucket value otherwise) rather than a fixed value,
// so two keywords with identical probability inputs but different current
// positions get different expected outcomes. The four destination branches
// use bucket CTRs: a move lands somewhere in the bucket, not at a known
// position.
func ExpectedTraffic(record *keyword.Record, model *Model, probs TransitionProbabilities) *Forecast {
	expectedCTR := probs.P13/100*model.CTRForBucket(BucketTop3) +
		probs.P46/100*model.CTRForBucket(BucketPos4to6) +
		probs.P710/100*model.CTRForBucket(BucketPos7to10) +
		probs.P1120()/100*model.CTRForBucket(BucketPos11to20) +
		probs.PStay/100*model.CTRForPosition(record.Position)

	expectedTraffic := float64(record.SearchVolume) * expectedCTR / 100

	return &Forecast{
		ExpectedCTR:     expectedCTR,
		ExpectedTraffic: expectedTraffic,
		ExpectedGain:    expectedTraffic - EstimateCurrentTraffic(record, model),
	}
}
