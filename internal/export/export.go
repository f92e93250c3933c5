package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"
)

// Format represents the export format.
type Format string

const (
	// FormatCSV represents CSV export format.
	FormatCSV Format = "csv"
	// FormatJSON represents JSON export format.
	FormatJSON Format = "json"
)

// Options holds configuration for export operations.
type Options struct {
	Format     Format
	FilePath   string
	PrettyJSON bool
	Overwrite  bool
}

// Exporter handles exporting projection rows to various formats.
type Exporter struct {
	opts Options
}

// NewExporter creates a new Exporter with the given options.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export exports the given rows. An empty row set is an error: exporting
// nothing is a caller-facing no-op failure, never a crash.
func (e *Exporter) Export(rows []Row) (err error) {
	if len(rows) == 0 {
		return fmt.Errorf("no projected keywords to export")
	}

	file, err := e.createFile()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return writeRows(file, e.opts.Format, rows, e.opts.PrettyJSON)
}

// ExportToWriter exports rows to an io.Writer instead of a file. Useful for
// writing to stdout or other streams.
func ExportToWriter(w io.Writer, format Format, rows []Row, prettyJSON bool) error {
	if len(rows) == 0 {
		return fmt.Errorf("no projected keywords to export")
	}
	return writeRows(w, format, rows, prettyJSON)
}

func writeRows(w io.Writer, format Format, rows []Row, prettyJSON bool) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		if prettyJSON {
			encoder.SetIndent("", "  ")
		}
		return encoder.Encode(rows)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// writeCSV writes the rows with a header derived from the Row struct's csv
// tags.
func writeCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	rowType := reflect.TypeOf(Row{})
	if err := writer.Write(csvHeaders(rowType)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range rows {
		record := csvRecord(reflect.ValueOf(rows[i]))
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	return nil
}

// csvHeaders extracts column labels from a struct type's csv tags, falling
// back to the field name.
func csvHeaders(t reflect.Type) []string {
	var headers []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("csv") == "-" {
			continue
		}
		if csvTag := field.Tag.Get("csv"); csvTag != "" {
			headers = append(headers, csvTag)
		} else {
			headers = append(headers, field.Name)
		}
	}
	return headers
}

// csvRecord converts a struct value to a CSV record.
func csvRecord(v reflect.Value) []string {
	t := v.Type()
	var record []string
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("csv") == "-" {
			continue
		}
		record = append(record, valueToString(v.Field(i)))
	}
	return record
}

// valueToString converts a reflect.Value to its CSV string representation.
// Floats use two decimals: rounding for presentation happens at this
// boundary only.
func valueToString(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// createFile creates the output file, handling overwrite settings.
func (e *Exporter) createFile() (*os.File, error) {
	dir := filepath.Dir(e.opts.FilePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if _, err := os.Stat(e.opts.FilePath); err == nil && !e.opts.Overwrite {
		return nil, fmt.Errorf("file already exists: %s (use overwrite option to replace)", e.opts.FilePath)
	}

	file, err := os.Create(e.opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return file, nil
}

// GenerateFilename generates a default timestamped filename for an export.
func GenerateFilename(prefix string, format Format) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", prefix, timestamp, format)
}
