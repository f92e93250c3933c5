package keyword

// Record represents a single keyword row from a ranking export.
// Records are immutable once parsed; the projection pipeline only reads them.
type Record struct {
	Text            string   // The keyword phrase
	Position        int      // Current organic rank position (1-based)
	SearchVolume    int      // Monthly search volume
	ObservedTraffic *float64 // Measured traffic, if the export supplied one

	// Optional attributes used by cohort rule matching. Zero values mean
	// the source export did not carry the column.
	Difficulty   *float64 // Keyword difficulty score
	SerpFeatures []string // SERP feature tags (e.g., "featured_snippet")
	Intent       string   // Search intent (e.g., "informational")
	Country      string   // Target country code
	Device       string   // "desktop" or "mobile"
}

// IsValid reports whether the record passes the ingestion validity filter.
// Rows failing this filter are dropped silently, never reported as errors.
func (r *Record) IsValid() bool {
	return r.Text != "" && r.Position > 0 && r.SearchVolume > 0
}

// HasObservedTraffic reports whether the export supplied a measured traffic
// value for this keyword.
func (r *Record) HasObservedTraffic() bool {
	return r.ObservedTraffic != nil
}
