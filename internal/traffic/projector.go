package traffic

import "github.com/ramonehamilton/Rank-Forecaster/internal/keyword"

// Projection holds the what-if traffic outcomes for one keyword: the traffic
// it would earn in each reachable target bucket and the signed gain relative
// to its current estimated traffic.
type Projection struct {
	CurrentTraffic   float64
	TrafficPerBucket map[Bucket]float64
	GainPerBucket    map[Bucket]float64
}

// Project computes the per-bucket traffic outcomes for a keyword. Gains may
// be negative when the keyword already outperforms a target bucket; they are
// preserved as signed values, never clamped. Aggregate positive-only rollups
// are handled by the stats package, not here.
func Project(record *keyword.Record, model *Model) *Projection {
	current := EstimateCurrentTraffic(record, model)

	projection := &Projection{
		CurrentTraffic:   current,
		TrafficPerBucket: make(map[Bucket]float64, len(TargetBuckets)),
		GainPerBucket:    make(map[Bucket]float64, len(TargetBuckets)),
	}

	for _, bucket := range TargetBuckets {
		traffic := float64(record.SearchVolume) * model.CTRForBucket(bucket) / 100
		projection.TrafficPerBucket[bucket] = traffic
		projection.GainPerBucket[bucket] = traffic - current
	}

	return projection
}
