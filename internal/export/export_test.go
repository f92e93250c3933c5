package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ramonehamilton/Rank-Forecaster/internal/keyword"
	"github.com/ramonehamilton/Rank-Forecaster/internal/traffic"
)

func sampleRows(t *testing.T) []Row {
	t.Helper()

	model := traffic.NewModel()
	probs := traffic.DefaultTransitionProbabilities()
	record := &keyword.Record{Text: "shoes", Position: 5, SearchVolume: 1000}

	pk := traffic.ProjectKeyword(record, model, probs)
	pk.Cohort = "A"

	return BuildRows([]*traffic.ProjectedKeyword{pk})
}

func TestBuildRowsRoundsAtBoundary(t *testing.T) {
	rows := sampleRows(t)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row.Keyword != "shoes" || row.Position != 5 || row.SearchVolume != 1000 {
		t.Errorf("row identity fields = %+v", row)
	}
	if row.CurrentTraffic != 63.0 {
		t.Errorf("CurrentTraffic = %v, want 63.0", row.CurrentTraffic)
	}
	if row.TrafficTop3 != 184.0 {
		t.Errorf("TrafficTop3 = %v, want 184.0", row.TrafficTop3)
	}
	if row.GainTop3 != 121.0 {
		t.Errorf("GainTop3 = %v, want 121.0", row.GainTop3)
	}
	// 1000 * (0.05*18.4 + 0.15*6.3 + 0.30*2.85 + 0.30*1.02 + 0.20*6.3) / 100
	// = 42.86 exactly at two decimals.
	if row.ExpectedTraffic != 42.86 {
		t.Errorf("ExpectedTraffic = %v, want 42.86", row.ExpectedTraffic)
	}
	if row.ExpectedGain != -20.14 {
		t.Errorf("ExpectedGain = %v, want -20.14", row.ExpectedGain)
	}
	if row.Cohort != "A" {
		t.Errorf("Cohort = %q, want A", row.Cohort)
	}
}

func TestExportCSVHeaderAndValues(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportToWriter(&buf, FormatCSV, sampleRows(t), false); err != nil {
		t.Fatalf("ExportToWriter() error: %v", err)
	}

	reader := csv.NewReader(&buf)
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("reading exported CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d CSV records, want header + 1 row", len(records))
	}

	header := records[0]
	wantHeader := []string{
		"Keyword", "Current Position", "Search Volume", "Current Traffic",
		"Traffic @ Top 3", "Gain @ Top 3",
		"Traffic @ Pos 4-6", "Gain @ Pos 4-6",
		"Traffic @ Pos 7-10", "Gain @ Pos 7-10",
		"Traffic @ Pos 11-20", "Gain @ Pos 11-20",
		"Expected Traffic", "Expected Gain", "Cohort",
	}
	if len(header) != len(wantHeader) {
		t.Fatalf("header has %d columns, want %d", len(header), len(wantHeader))
	}
	for i, want := range wantHeader {
		if header[i] != want {
			t.Errorf("header[%d] = %q, want %q", i, header[i], want)
		}
	}

	row := records[1]
	if row[0] != "shoes" || row[1] != "5" || row[2] != "1000" {
		t.Errorf("row identity = %v", row[:3])
	}
	if row[3] != "63.00" {
		t.Errorf("current traffic cell = %q, want 63.00", row[3])
	}
	if row[13] != "-20.14" {
		t.Errorf("expected gain cell = %q, want -20.14", row[13])
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportToWriter(&buf, FormatJSON, sampleRows(t), true); err != nil {
		t.Fatalf("ExportToWriter() error: %v", err)
	}

	var decoded []Row
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal exported JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d rows, want 1", len(decoded))
	}
	if decoded[0].Keyword != "shoes" || decoded[0].ExpectedTraffic != 42.86 {
		t.Errorf("decoded row = %+v", decoded[0])
	}
}

// Exporting an empty result set is a no-op failure, not a crash.
func TestExportEmptyRowsFails(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportToWriter(&buf, FormatCSV, nil, false); err == nil {
		t.Fatal("expected an error exporting zero rows")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on an empty export")
	}
}

func TestExporterRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	exporter := NewExporter(Options{Format: FormatCSV, FilePath: path})
	if err := exporter.Export(sampleRows(t)); err == nil {
		t.Fatal("expected an error without the overwrite option")
	}

	exporter = NewExporter(Options{Format: FormatCSV, FilePath: path, Overwrite: true})
	if err := exporter.Export(sampleRows(t)); err != nil {
		t.Fatalf("overwrite export failed: %v", err)
	}
}

func TestBuilder(t *testing.T) {
	var buf bytes.Buffer

	err := NewBuilder().
		WithFormat(FormatJSON).
		WithWriter(&buf).
		WithPrettyJSON(true).
		Export(sampleRows(t))
	if err != nil {
		t.Fatalf("builder export failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"keyword": "shoes"`) {
		t.Error("pretty JSON output missing expected content")
	}
}

func TestBuilderValidation(t *testing.T) {
	if err := NewBuilder().Export(sampleRows(t)); err == nil {
		t.Error("expected an error when neither path nor writer is set")
	}

	err := NewBuilder().WithFormat(Format("xml")).WithWriter(&bytes.Buffer{}).Export(sampleRows(t))
	if err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
