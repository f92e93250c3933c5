package traffic

// Click-through-rate model. CTR values are percentages (e.g., 6.3 means
// 6.3% of searches produce a click at that rank). The model supports two
// granularities: a five-bucket table and an optional per-position table for
// positions 1-20. Per-position lookups fall back to the position's bucket
// value, and anything the tables don't cover falls back to the beyond-20
// default.

const (
	// beyond20CTR is the fixed CTR default for any position past 20 and the
	// final fallback when no table entry applies.
	beyond20CTR = 0.1
)

// positionCTRSeries holds the empirical per-position CTR percentages for
// positions 1-20 used to seed both table granularities.
var positionCTRSeries = [20]float64{
	28.5, 15.7, 11.0, // 1-3
	8.0, 6.1, 4.8, // 4-6
	3.8, 3.0, 2.5, 2.1, // 7-10
	1.8, 1.5, 1.3, 1.1, 1.0, 0.9, 0.8, 0.7, 0.6, 0.5, // 11-20
}

// Model holds the CTR configuration used by the projection engine: a CTR
// percentage per bucket, an optional per-position override table, and a
// global uplift scalar applied multiplicatively to every lookup.
type Model struct {
	// Buckets maps each bucket to its base CTR percentage.
	Buckets map[Bucket]float64

	// Positions optionally maps a discrete position (1-20) to a base CTR
	// percentage. When a requested position is absent the coarser bucket
	// value is used instead.
	Positions map[int]float64

	// UpliftPct is a percentage adjustment applied to every lookup:
	// effective = base * (1 + UpliftPct/100). Negative uplift is allowed
	// and the result is not clamped at zero.
	UpliftPct float64
}

// DefaultBucketTable returns the default five-bucket CTR table. Each bucket
// value is the average of the empirical per-position series over the
// bucket's range.
func DefaultBucketTable() map[Bucket]float64 {
	return map[Bucket]float64{
		BucketTop3:      avgSeries(1, 3),
		BucketPos4to6:   avgSeries(4, 6),
		BucketPos7to10:  avgSeries(7, 10),
		BucketPos11to20: avgSeries(11, 20),
		BucketPos21Plus: beyond20CTR,
	}
}

// DefaultPositionTable returns the default per-position CTR table seeding
// positions 1-20 from the empirical series.
func DefaultPositionTable() map[int]float64 {
	table := make(map[int]float64, len(positionCTRSeries))
	for i, ctr := range positionCTRSeries {
		table[i+1] = ctr
	}
	return table
}

// NewModel returns a Model seeded with the default bucket table and no
// uplift.
func NewModel() *Model {
	return &Model{
		Buckets: DefaultBucketTable(),
	}
}

// CTRForBucket returns the effective CTR percentage for a bucket with the
// model's uplift applied. A bucket missing from the table uses the beyond-20
// default.
func (m *Model) CTRForBucket(b Bucket) float64 {
	base, ok := m.Buckets[b]
	if !ok {
		base = beyond20CTR
	}
	return m.applyUplift(base)
}

// CTRForPosition returns the effective CTR percentage for a discrete
// position. Lookup order: per-position table, then the position's bucket,
// then the beyond-20 default.
func (m *Model) CTRForPosition(position int) float64 {
	if ctr, ok := m.Positions[position]; ok {
		return m.applyUplift(ctr)
	}
	return m.CTRForBucket(BucketOf(position))
}

// applyUplift applies the multiplicative uplift to a base CTR. The result is
// deliberately not clamped at zero, so a large negative uplift can produce a
// negative effective CTR.
func (m *Model) applyUplift(base float64) float64 {
	return base * (1 + m.UpliftPct/100)
}

// avgSeries averages the empirical series over the inclusive 1-based
// position range [from, to].
func avgSeries(from, to int) float64 {
	sum := 0.0
	for pos := from; pos <= to; pos++ {
		sum += positionCTRSeries[pos-1]
	}
	return sum / float64(to-from+1)
}
