package traffic

import "github.com/ramonehamilton/Rank-Forecaster/internal/keyword"

// EstimateCurrentTraffic estimates the monthly click count a keyword earns
// at its current position. When the record carries an observed traffic value
// it is returned verbatim: measured ground truth always takes precedence
// over the modeled estimate. Otherwise the estimate is
// volume * ctr(position)/100, where the CTR resolves through the model's
// per-position table when one is configured and degrades to the bucket
// value otherwise.
//
// No rounding happens at this layer; presentation rounding is an export
// concern.
func EstimateCurrentTraffic(record *keyword.Record, model *Model) float64 {
	if record.HasObservedTraffic() {
		return *record.ObservedTraffic
	}
	ctr := model.CTRForPosition(record.Position)
	return float64(record.SearchVolume) * ctr / 100
}
