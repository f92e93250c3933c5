package session

import (
	"fmt"
	"sync"

	"github.com/ramonehamilton/Rank-Forecaster/internal/config"
	"github.com/ramonehamilton/Rank-Forecaster/internal/keyword"
	"github.com/ramonehamilton/Rank-Forecaster/internal/stats"
	"github.com/ramonehamilton/Rank-Forecaster/internal/traffic"
)

// Session holds one in-memory analysis: the parsed keyword records, the
// current configuration, and the latest computed results. Nothing is
// persisted; closing the session discards everything.
//
// Recompute re-runs the entire pipeline from scratch on every call. There
// is no incremental update: keyword counts are bounded to interactive
// sizes, so a full pass is cheap and keeps the engine pure.
type Session struct {
	mu      sync.RWMutex
	config  *config.Config
	records []*keyword.Record
	results *Results
}

// Results is the output of one pipeline run.
type Results struct {
	Projected []*traffic.ProjectedKeyword
	Summary   *stats.Summary

	// InvalidRules holds the 1-based indices of cohort rules whose
	// allocation sums above 1. Computation proceeds with their forced-zero
	// residual; the indices are surfaced for display.
	InvalidRules []int
}

// New creates a session with the given configuration. A nil config uses
// the defaults.
func New(cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Session{config: cfg}
}

// SetRecords replaces the session's keyword records.
func (s *Session) SetRecords(records []*keyword.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}

// SetConfig replaces the session's configuration.
func (s *Session) SetConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// Config returns the session's current configuration.
func (s *Session) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Results returns the latest computed results, or nil before the first
// successful Recompute.
func (s *Session) Results() *Results {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}

// Recompute runs the full pipeline: threshold filtering, per-keyword
// projection and forecast, cohort assignment, and aggregation. The run
// either fully completes and replaces the previous results atomically, or
// fails up front leaving them untouched — no partial results are surfaced.
func (s *Session) Recompute() (*Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Read-only snapshot of the configuration for this pass.
	model := s.config.Model()
	probs := s.config.Probabilities()
	ruleSet := s.config.Rules()

	retained := filterRecords(s.records, s.config.Filters)

	projected := make([]*traffic.ProjectedKeyword, 0, len(retained))
	for _, record := range retained {
		pk := traffic.ProjectKeyword(record, model, probs)
		if allocation, ok := ruleSet.Assign(record); ok {
			pk.Cohort = allocation.DominantCohort()
		}
		projected = append(projected, pk)
	}

	results := &Results{
		Projected:    projected,
		Summary:      stats.Summarize(projected),
		InvalidRules: invalidRuleIndices(s.config),
	}

	s.results = results
	return results, nil
}

// filterRecords applies the volume and position thresholds. Records below
// the volume floor or ranked worse than the position ceiling are dropped.
func filterRecords(records []*keyword.Record, filters config.FilterConfig) []*keyword.Record {
	retained := make([]*keyword.Record, 0, len(records))
	for _, record := range records {
		if record.SearchVolume < filters.MinSearchVolume {
			continue
		}
		if record.Position > filters.MaxPosition {
			continue
		}
		retained = append(retained, record)
	}
	return retained
}

// invalidRuleIndices returns the 1-based indices of over-allocated cohort
// rules.
func invalidRuleIndices(cfg *config.Config) []int {
	var invalid []int
	for i, rule := range cfg.Rules().Rules {
		if !rule.Valid() {
			invalid = append(invalid, i+1)
		}
	}
	return invalid
}
