package traffic

import (
	"testing"

	"github.com/ramonehamilton/Rank-Forecaster/internal/keyword"
)

func TestProject(t *testing.T) {
	model := NewModel()
	record := &keyword.Record{Text: "shoes", Position: 5, SearchVolume: 1000}

	projection := Project(record, model)

	if !floatEquals(projection.CurrentTraffic, 63.0) {
		t.Errorf("CurrentTraffic = %v, want 63.0", projection.CurrentTraffic)
	}

	wantTraffic := map[Bucket]float64{
		BucketTop3:      1000 * 18.4 / 100,
		BucketPos4to6:   1000 * 6.3 / 100,
		BucketPos7to10:  1000 * 2.85 / 100,
		BucketPos11to20: 1000 * 1.02 / 100,
	}

	for bucket, want := range wantTraffic {
		got := projection.TrafficPerBucket[bucket]
		if !floatEquals(got, want) {
			t.Errorf("traffic for %v = %v, want %v", bucket, got, want)
		}
		if gain := projection.GainPerBucket[bucket]; !floatEquals(gain, want-63.0) {
			t.Errorf("gain for %v = %v, want %v", bucket, gain, want-63.0)
		}
	}

	if _, ok := projection.TrafficPerBucket[BucketPos21Plus]; ok {
		t.Error("Pos 21+ must not appear as a projection target")
	}
}

func TestProjectWithUplift(t *testing.T) {
	model := NewModel()
	model.UpliftPct = 10

	record := &keyword.Record{Text: "shoes", Position: 5, SearchVolume: 1000}
	projection := Project(record, model)

	// Current: 1000 * 6.3 * 1.1 / 100 = 69.3
	// Top 3:   1000 * 18.4 * 1.1 / 100 = 202.4
	if !floatEquals(projection.CurrentTraffic, 69.3) {
		t.Errorf("CurrentTraffic = %v, want 69.3", projection.CurrentTraffic)
	}
	if got := projection.TrafficPerBucket[BucketTop3]; !floatEquals(got, 202.4) {
		t.Errorf("Top 3 traffic = %v, want 202.4", got)
	}
	if got := projection.GainPerBucket[BucketTop3]; !floatEquals(got, 202.4-69.3) {
		t.Errorf("Top 3 gain = %v, want %v", got, 202.4-69.3)
	}
}

// A keyword already in the top bucket has a negative gain toward worse
// buckets; the sign must be preserved, not clamped.
func TestProjectNegativeGainPreserved(t *testing.T) {
	model := NewModel()
	record := &keyword.Record{Text: "brand term", Position: 1, SearchVolume: 500}

	projection := Project(record, model)

	gain := projection.GainPerBucket[BucketPos11to20]
	if gain >= 0 {
		t.Errorf("expected negative gain moving from Top 3 to Pos 11-20, got %v", gain)
	}
}

func TestProjectUsesObservedTrafficAsBaseline(t *testing.T) {
	model := NewModel()
	observed := 10.0
	record := &keyword.Record{Text: "shoes", Position: 5, SearchVolume: 1000, ObservedTraffic: &observed}

	projection := Project(record, model)

	if !floatEquals(projection.CurrentTraffic, 10.0) {
		t.Errorf("CurrentTraffic = %v, want observed 10.0", projection.CurrentTraffic)
	}
	if got := projection.GainPerBucket[BucketTop3]; !floatEquals(got, 184.0-10.0) {
		t.Errorf("Top 3 gain = %v, want %v", got, 184.0-10.0)
	}
}
