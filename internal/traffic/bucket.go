package traffic

// Bucket represents a coarse rank-position class used for CTR lookup and as
// a projection target.
type Bucket int

const (
	// BucketTop3 covers positions 1-3.
	BucketTop3 Bucket = iota
	// BucketPos4to6 covers positions 4-6.
	BucketPos4to6
	// BucketPos7to10 covers positions 7-10.
	BucketPos7to10
	// BucketPos11to20 covers positions 11-20.
	BucketPos11to20
	// BucketPos21Plus covers every position from 21 upward.
	BucketPos21Plus
)

// TargetBuckets lists the buckets a keyword can be projected into, best
// first. Pos21Plus is never a projection target: moving a keyword into the
// worst bucket is not a modeled opportunity.
var TargetBuckets = []Bucket{BucketTop3, BucketPos4to6, BucketPos7to10, BucketPos11to20}

// BucketOf classifies a rank position into its bucket. The function is total
// over positions >= 1; positions below 1 are rejected upstream by record
// validity filtering, not here.
func BucketOf(position int) Bucket {
	switch {
	case position <= 3:
		return BucketTop3
	case position <= 6:
		return BucketPos4to6
	case position <= 10:
		return BucketPos7to10
	case position <= 20:
		return BucketPos11to20
	default:
		return BucketPos21Plus
	}
}

// String returns the human-readable range label for the bucket.
func (b Bucket) String() string {
	switch b {
	case BucketTop3:
		return "Top 3"
	case BucketPos4to6:
		return "Pos 4-6"
	case BucketPos7to10:
		return "Pos 7-10"
	case BucketPos11to20:
		return "Pos 11-20"
	case BucketPos21Plus:
		return "Pos 21+"
	default:
		return "Unknown"
	}
}
