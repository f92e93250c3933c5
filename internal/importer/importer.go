package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ramonehamilton/Rank-Forecaster/internal/keyword"
)

// The importer reads spreadsheet-derived keyword exports. Different SEO
// tools label the same logical column differently, so each logical field
// resolves against a priority-ordered alias list. Rows that fail the
// validity filter are dropped silently: they shrink the output count but
// never surface as errors. Only a whole-source failure (unreadable file,
// no usable header) is fatal.

// columnAliases maps each logical field to its recognized header spellings,
// in priority order. Matching is case-insensitive on trimmed headers.
var columnAliases = map[string][]string{
	"keyword":    {"keyword", "query", "search term", "term"},
	"position":   {"position", "current position", "rank", "ranking", "pos"},
	"volume":     {"search volume", "volume", "monthly searches", "monthly volume", "sv"},
	"traffic":    {"traffic", "organic traffic", "current traffic", "estimated traffic", "clicks"},
	"difficulty": {"difficulty", "keyword difficulty", "kd"},
	"features":   {"serp features", "features"},
	"intent":     {"intent", "search intent"},
	"country":    {"country", "location"},
	"device":     {"device"},
}

// requiredColumns are the logical fields a usable export must carry.
var requiredColumns = []string{"keyword", "position", "volume"}

// Result holds the outcome of one import operation.
type Result struct {
	Records     []*keyword.Record
	RowsRead    int      // Data rows seen (header excluded)
	RowsDropped int      // Rows removed by the validity filter
	Warnings    []string // Per-row diagnostics; informational only
}

// ImportFile reads a keyword export from disk. The delimiter is chosen by
// extension: .tsv and .txt are tab-separated, everything else is treated as
// CSV.
func ImportFile(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keyword export: %w", err)
	}
	defer file.Close()

	delimiter := ','
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		delimiter = '\t'
	}

	return Import(file, delimiter)
}

// Import reads a keyword export from a reader using the given delimiter.
func Import(r io.Reader, delimiter rune) (*Result, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	result := &Result{Records: make([]*keyword.Record, 0)}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		result.RowsRead++

		record, warning := parseRow(row, columns)
		if warning != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %s", line, warning))
		}
		if record == nil || !record.IsValid() {
			result.RowsDropped++
			continue
		}

		result.Records = append(result.Records, record)
	}

	return result, nil
}

// resolveColumns maps logical fields to header indices using the alias
// lists. Missing optional columns resolve to -1; a missing required column
// fails the whole import.
func resolveColumns(header []string) (map[string]int, error) {
	normalized := make([]string, len(header))
	for i, name := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(name))
	}

	columns := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		columns[field] = -1
		for _, alias := range aliases {
			if idx := indexOf(normalized, alias); idx >= 0 {
				columns[field] = idx
				break
			}
		}
	}

	for _, field := range requiredColumns {
		if columns[field] < 0 {
			return nil, fmt.Errorf("no recognized %s column in header (accepted: %s)",
				field, strings.Join(columnAliases[field], ", "))
		}
	}

	return columns, nil
}

func indexOf(values []string, want string) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}

// parseRow converts one data row into a Record. A row with unparseable
// required numerics yields a nil record and a diagnostic; the caller drops
// it without raising an error.
func parseRow(row []string, columns map[string]int) (*keyword.Record, string) {
	record := &keyword.Record{
		Text: strings.TrimSpace(cell(row, columns["keyword"])),
	}

	position, err := parseInt(cell(row, columns["position"]))
	if err != nil {
		return nil, fmt.Sprintf("unparseable position %q", cell(row, columns["position"]))
	}
	record.Position = position

	volume, err := parseInt(cell(row, columns["volume"]))
	if err != nil {
		return nil, fmt.Sprintf("unparseable search volume %q", cell(row, columns["volume"]))
	}
	record.SearchVolume = volume

	if raw := strings.TrimSpace(cell(row, columns["traffic"])); raw != "" {
		if traffic, err := parseFloat(raw); err == nil && traffic >= 0 {
			record.ObservedTraffic = &traffic
		}
	}

	if raw := strings.TrimSpace(cell(row, columns["difficulty"])); raw != "" {
		if difficulty, err := parseFloat(raw); err == nil {
			record.Difficulty = &difficulty
		}
	}

	record.SerpFeatures = splitFeatures(cell(row, columns["features"]))
	record.Intent = strings.ToLower(strings.TrimSpace(cell(row, columns["intent"])))
	record.Country = strings.ToUpper(strings.TrimSpace(cell(row, columns["country"])))
	record.Device = strings.ToLower(strings.TrimSpace(cell(row, columns["device"])))

	return record, ""
}

// cell safely fetches a column value; short rows and unresolved columns
// read as empty.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseInt parses an integer cell, tolerating thousands separators and a
// fractional export format like "1200.0".
func parseInt(raw string) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty numeric cell")
	}
	if value, err := strconv.Atoi(cleaned); err == nil {
		return value, nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

func parseFloat(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}

// splitFeatures splits a SERP-features cell on semicolons or pipes, the two
// separators keyword tools use inside a single cell.
func splitFeatures(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '|'
	})

	features := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			features = append(features, trimmed)
		}
	}
	if len(features) == 0 {
		return nil
	}
	return features
}
