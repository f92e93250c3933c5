package export

import (
	"math"

	"github.com/ramonehamilton/Rank-Forecaster/internal/traffic"
)

// Row is one exported projection row. Column labels are explicit via csv
// tags; every floating value is rounded to two decimals here, at the export
// boundary, and nowhere inside the model.
type Row struct {
	Keyword          string  `csv:"Keyword" json:"keyword"`
	Position         int     `csv:"Current Position" json:"position"`
	SearchVolume     int     `csv:"Search Volume" json:"search_volume"`
	CurrentTraffic   float64 `csv:"Current Traffic" json:"current_traffic"`
	TrafficTop3      float64 `csv:"Traffic @ Top 3" json:"traffic_top3"`
	GainTop3         float64 `csv:"Gain @ Top 3" json:"gain_top3"`
	TrafficPos4to6   float64 `csv:"Traffic @ Pos 4-6" json:"traffic_pos4to6"`
	GainPos4to6      float64 `csv:"Gain @ Pos 4-6" json:"gain_pos4to6"`
	TrafficPos7to10  float64 `csv:"Traffic @ Pos 7-10" json:"traffic_pos7to10"`
	GainPos7to10     float64 `csv:"Gain @ Pos 7-10" json:"gain_pos7to10"`
	TrafficPos11to20 float64 `csv:"Traffic @ Pos 11-20" json:"traffic_pos11to20"`
	GainPos11to20    float64 `csv:"Gain @ Pos 11-20" json:"gain_pos11to20"`
	ExpectedTraffic  float64 `csv:"Expected Traffic" json:"expected_traffic"`
	ExpectedGain     float64 `csv:"Expected Gain" json:"expected_gain"`
	Cohort           string  `csv:"Cohort" json:"cohort,omitempty"`
}

// BuildRows converts projected keywords into export rows.
func BuildRows(projected []*traffic.ProjectedKeyword) []Row {
	rows := make([]Row, 0, len(projected))
	for _, pk := range projected {
		rows = append(rows, Row{
			Keyword:          pk.Record.Text,
			Position:         pk.Record.Position,
			SearchVolume:     pk.Record.SearchVolume,
			CurrentTraffic:   round2(pk.Projection.CurrentTraffic),
			TrafficTop3:      round2(pk.Projection.TrafficPerBucket[traffic.BucketTop3]),
			GainTop3:         round2(pk.Projection.GainPerBucket[traffic.BucketTop3]),
			TrafficPos4to6:   round2(pk.Projection.TrafficPerBucket[traffic.BucketPos4to6]),
			GainPos4to6:      round2(pk.Projection.GainPerBucket[traffic.BucketPos4to6]),
			TrafficPos7to10:  round2(pk.Projection.TrafficPerBucket[traffic.BucketPos7to10]),
			GainPos7to10:     round2(pk.Projection.GainPerBucket[traffic.BucketPos7to10]),
			TrafficPos11to20: round2(pk.Projection.TrafficPerBucket[traffic.BucketPos11to20]),
			GainPos11to20:    round2(pk.Projection.GainPerBucket[traffic.BucketPos11to20]),
			ExpectedTraffic:  round2(pk.Forecast.ExpectedTraffic),
			ExpectedGain:     round2(pk.Forecast.ExpectedGain),
			Cohort:           pk.Cohort,
		})
	}
	return rows
}

// round2 rounds to two decimal places.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
