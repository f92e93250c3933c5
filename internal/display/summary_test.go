package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ramonehamilton/Rank-Forecaster/internal/keyword"
	"github.com/ramonehamilton/Rank-Forecaster/internal/session"
)

func sampleResults(t *testing.T) *session.Results {
	t.Helper()

	s := session.New(nil)
	s.SetRecords([]*keyword.Record{
		{Text: "running shoes", Position: 5, SearchVolume: 1000},
		{Text: "trail shoes", Position: 12, SearchVolume: 400},
		{Text: "barefoot shoes", Position: 45, SearchVolume: 150},
	})

	results, err := s.Recompute()
	if err != nil {
		t.Fatalf("Recompute() error: %v", err)
	}
	return results
}

func TestDisplayResults(t *testing.T) {
	var buf bytes.Buffer
	displayer := NewSummaryDisplayerWriter(&buf)

	if err := displayer.DisplayResults(sampleResults(t)); err != nil {
		t.Fatalf("DisplayResults failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Traffic Projection Summary",
		"Keywords Analyzed:      3",
		"Position Distribution:",
		"Top Opportunities:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestDisplayResultsNil(t *testing.T) {
	var buf bytes.Buffer
	displayer := NewSummaryDisplayerWriter(&buf)

	if err := displayer.DisplayResults(nil); err != nil {
		t.Fatalf("DisplayResults with nil results failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No results to display.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDisplayResultsRuleWarnings(t *testing.T) {
	var buf bytes.Buffer
	displayer := NewSummaryDisplayerWriter(&buf)

	results := sampleResults(t)
	results.InvalidRules = []int{2}

	if err := displayer.DisplayResults(results); err != nil {
		t.Fatalf("DisplayResults failed: %v", err)
	}
	if !strings.Contains(buf.String(), "cohort rule 2 allocates more than 100%") {
		t.Error("output missing over-allocation warning")
	}
}

func TestDisplayKeywordsCompact(t *testing.T) {
	var buf bytes.Buffer
	displayer := NewSummaryDisplayerWriter(&buf)

	results := sampleResults(t)
	if err := displayer.DisplayKeywordsCompact(results.Projected); err != nil {
		t.Fatalf("DisplayKeywordsCompact failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "running shoes") {
		t.Error("output missing keyword row")
	}
	if !strings.Contains(out, "Cohort") {
		t.Error("output missing table header")
	}
}

func TestDisplayKeywordsCompactEmpty(t *testing.T) {
	var buf bytes.Buffer
	displayer := NewSummaryDisplayerWriter(&buf)

	if err := displayer.DisplayKeywordsCompact(nil); err != nil {
		t.Fatalf("DisplayKeywordsCompact with no keywords failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No keywords matched") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestTruncateKeyword(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "no truncation needed",
			input:    "short",
			maxLen:   10,
			expected: "short",
		},
		{
			name:     "exact length",
			input:    "exactly10!",
			maxLen:   10,
			expected: "exactly10!",
		},
		{
			name:     "needs truncation",
			input:    "a very long keyword phrase indeed",
			maxLen:   15,
			expected: "a very long ...",
		},
		{
			name:     "multibyte runes",
			input:    "zapatillas de montaña para correr",
			maxLen:   15,
			expected: "zapatillas d...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncateKeyword(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateKeyword(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}
