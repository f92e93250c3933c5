package traffic

import "github.com/ramonehamilton/Rank-Forecaster/internal/keyword"

// ProjectedKeyword is the per-keyword output of the projection pipeline:
// the source record plus its bucket projections and probability-blended
// forecast. It is derived state, recomputed from scratch whenever filters,
// the CTR model, uplift, or transition probabilities change, and is never
// kept independently of its source record.
type ProjectedKeyword struct {
	Record     *keyword.Record
	Projection *Projection
	Forecast   *Forecast

	// Cohort is the movement-profile cohort label assigned by rule
	// matching, or empty when no rule matched.
	Cohort string
}

// ProjectKeyword runs the full per-keyword computation: current-traffic
// estimate, per-bucket projection, and probability-blended forecast. Pure
// and deterministic for fixed inputs.
func ProjectKeyword(record *keyword.Record, model *Model, probs TransitionProbabilities) *ProjectedKeyword {
	return &ProjectedKeyword{
		Record:     record,
		Projection: Project(record, model),
		Forecast:   ExpectedTraffic(record, model, probs),
	}
}
