package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/Rank-Forecaster/internal/cohort"
	"github.com/ramonehamilton/Rank-Forecaster/internal/traffic"
)

// Config represents the analysis configuration. It is the single mutable
// surface around the projection engine: editors mutate this struct and
// re-run the pipeline; the engine itself never mutates state.
type Config struct {
	// Keyword filtering thresholds
	Filters FilterConfig `toml:"filters"`

	// CTR table and uplift
	CTR CTRConfig `toml:"ctr"`

	// Transition probability quadruple
	Transition TransitionConfig `toml:"transition"`

	// Ordered cohort rule list
	CohortRules []CohortRuleConfig `toml:"cohort_rules"`
}

// FilterConfig contains the keyword retention thresholds.
type FilterConfig struct {
	MinSearchVolume int `toml:"min_search_volume"` // Keywords below this volume are dropped
	MaxPosition     int `toml:"max_position"`      // Keywords ranked worse than this are dropped
}

// CTRConfig contains the click-through-rate table and the global uplift.
type CTRConfig struct {
	UpliftPct float64 `toml:"uplift_pct"` // Percentage uplift applied to every CTR lookup

	// Bucket CTR percentages
	Top3      float64 `toml:"top3"`
	Pos4to6   float64 `toml:"pos4to6"`
	Pos7to10  float64 `toml:"pos7to10"`
	Pos11to20 float64 `toml:"pos11to20"`
	Pos21Plus float64 `toml:"pos21plus"`

	// Positions optionally overrides individual positions 1-20. TOML keys
	// are the position numbers as strings.
	Positions map[string]float64 `toml:"positions,omitempty"`
}

// TransitionConfig contains the stored transition probability inputs, in
// percent. The Pos11to20 mass is always derived, never configured.
type TransitionConfig struct {
	P13   float64 `toml:"p13"`    // Mass landing in Top 3
	P46   float64 `toml:"p46"`    // Mass landing in Pos 4-6
	P710  float64 `toml:"p710"`   // Mass landing in Pos 7-10
	PStay float64 `toml:"p_stay"` // Mass remaining at the current position
}

// CohortRuleConfig is one cohort rule entry. Nil/empty filter fields match
// everything.
type CohortRuleConfig struct {
	PositionMin   *int     `toml:"position_min,omitempty"`
	PositionMax   *int     `toml:"position_max,omitempty"`
	DifficultyMin *float64 `toml:"difficulty_min,omitempty"`
	DifficultyMax *float64 `toml:"difficulty_max,omitempty"`
	SerpFeature   string   `toml:"serp_feature,omitempty"`
	Intent        string   `toml:"intent,omitempty"`
	Country       string   `toml:"country,omitempty"`
	Device        string   `toml:"device,omitempty"`

	ProbA float64 `toml:"prob_a"`
	ProbB float64 `toml:"prob_b"`
	ProbC float64 `toml:"prob_c"`

	CohortOverride string `toml:"cohort_override,omitempty"`
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() *Config {
	buckets := traffic.DefaultBucketTable()
	return &Config{
		Filters: FilterConfig{
			MinSearchVolume: 10,
			MaxPosition:     50,
		},
		CTR: CTRConfig{
			UpliftPct: 0,
			Top3:      buckets[traffic.BucketTop3],
			Pos4to6:   buckets[traffic.BucketPos4to6],
			Pos7to10:  buckets[traffic.BucketPos7to10],
			Pos11to20: buckets[traffic.BucketPos11to20],
			Pos21Plus: buckets[traffic.BucketPos21Plus],
		},
		Transition: TransitionConfig{
			P13:   5,
			P46:   15,
			P710:  30,
			PStay: 20,
		},
		CohortRules: []CohortRuleConfig{
			{ProbA: 0.3, ProbB: 0.3, ProbC: 0.3},
		},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".rank-forecaster")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the given path. Returns the default
// config if the file doesn't exist. Fields absent from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the given path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values. Cohort over-allocation
// (A+B+C > 1) is deliberately not an error here; it is surfaced per rule at
// computation time.
func (c *Config) Validate() error {
	if c.Filters.MinSearchVolume < 0 {
		return fmt.Errorf("min search volume cannot be negative: %d", c.Filters.MinSearchVolume)
	}
	if c.Filters.MaxPosition < 1 {
		return fmt.Errorf("max position must be at least 1: %d", c.Filters.MaxPosition)
	}

	bucketValues := map[string]float64{
		"top3":      c.CTR.Top3,
		"pos4to6":   c.CTR.Pos4to6,
		"pos7to10":  c.CTR.Pos7to10,
		"pos11to20": c.CTR.Pos11to20,
		"pos21plus": c.CTR.Pos21Plus,
	}
	for name, value := range bucketValues {
		if value < 0 || value > 100 {
			return fmt.Errorf("CTR for %s must be a percentage in [0,100]: %v", name, value)
		}
	}

	for key, value := range c.CTR.Positions {
		position, err := strconv.Atoi(key)
		if err != nil || position < 1 || position > 20 {
			return fmt.Errorf("per-position CTR key must be a position 1-20: %q", key)
		}
		if value < 0 || value > 100 {
			return fmt.Errorf("CTR for position %s must be a percentage in [0,100]: %v", key, value)
		}
	}

	probValues := map[string]float64{
		"p13":    c.Transition.P13,
		"p46":    c.Transition.P46,
		"p710":   c.Transition.P710,
		"p_stay": c.Transition.PStay,
	}
	for name, value := range probValues {
		if value < 0 || value > 100 {
			return fmt.Errorf("transition probability %s must be in [0,100]: %v", name, value)
		}
	}

	for i, rule := range c.CohortRules {
		for _, prob := range []float64{rule.ProbA, rule.ProbB, rule.ProbC} {
			if prob < 0 || prob > 1 {
				return fmt.Errorf("cohort rule %d: probabilities must be in [0,1]", i+1)
			}
		}
		if rule.PositionMin != nil && rule.PositionMax != nil && *rule.PositionMin > *rule.PositionMax {
			return fmt.Errorf("cohort rule %d: position_min exceeds position_max", i+1)
		}
		if rule.DifficultyMin != nil && rule.DifficultyMax != nil && *rule.DifficultyMin > *rule.DifficultyMax {
			return fmt.Errorf("cohort rule %d: difficulty_min exceeds difficulty_max", i+1)
		}
	}

	return nil
}

// Model builds the CTR model the engine consumes from this configuration.
func (c *Config) Model() *traffic.Model {
	model := &traffic.Model{
		Buckets: map[traffic.Bucket]float64{
			traffic.BucketTop3:      c.CTR.Top3,
			traffic.BucketPos4to6:   c.CTR.Pos4to6,
			traffic.BucketPos7to10:  c.CTR.Pos7to10,
			traffic.BucketPos11to20: c.CTR.Pos11to20,
			traffic.BucketPos21Plus: c.CTR.Pos21Plus,
		},
		UpliftPct: c.CTR.UpliftPct,
	}

	if len(c.CTR.Positions) > 0 {
		model.Positions = make(map[int]float64, len(c.CTR.Positions))
		for key, value := range c.CTR.Positions {
			if position, err := strconv.Atoi(key); err == nil {
				model.Positions[position] = value
			}
		}
	}

	return model
}

// Probabilities builds the transition quadruple the forecaster consumes.
func (c *Config) Probabilities() traffic.TransitionProbabilities {
	return traffic.TransitionProbabilities{
		P13:   c.Transition.P13,
		P46:   c.Transition.P46,
		P710:  c.Transition.P710,
		PStay: c.Transition.PStay,
	}
}

// Rules builds the ordered cohort rule set.
func (c *Config) Rules() *cohort.RuleSet {
	rules := make([]cohort.Rule, len(c.CohortRules))
	for i, rc := range c.CohortRules {
		rules[i] = cohort.Rule{
			PositionMin:    rc.PositionMin,
			PositionMax:    rc.PositionMax,
			DifficultyMin:  rc.DifficultyMin,
			DifficultyMax:  rc.DifficultyMax,
			SerpFeature:    rc.SerpFeature,
			Intent:         rc.Intent,
			Country:        rc.Country,
			Device:         rc.Device,
			ProbA:          rc.ProbA,
			ProbB:          rc.ProbB,
			ProbC:          rc.ProbC,
			CohortOverride: rc.CohortOverride,
		}
	}
	return &cohort.RuleSet{Rules: rules}
}
