package export

import (
	"fmt"
	"io"
)

// Builder provides a fluent API for configuring and executing export
// operations.
//
// Example usage:
//
//	err := export.NewBuilder().
//	    WithFormat(export.FormatCSV).
//	    WithFilePath("projections.csv").
//	    WithOverwrite(true).
//	    Export(rows)
type Builder struct {
	format     Format
	filePath   string
	prettyJSON bool
	overwrite  bool
	writer     io.Writer
	useWriter  bool
}

// NewBuilder creates a Builder with default settings (CSV, compact JSON,
// no overwrite).
func NewBuilder() *Builder {
	return &Builder{format: FormatCSV}
}

// WithFormat sets the export format.
func (b *Builder) WithFormat(format Format) *Builder {
	b.format = format
	return b
}

// WithFilePath sets the output file path for the export.
func (b *Builder) WithFilePath(filePath string) *Builder {
	b.filePath = filePath
	b.useWriter = false
	return b
}

// WithWriter sets an io.Writer as the output destination instead of a file.
func (b *Builder) WithWriter(w io.Writer) *Builder {
	b.writer = w
	b.useWriter = true
	return b
}

// WithPrettyJSON enables pretty-printing for JSON exports.
func (b *Builder) WithPrettyJSON(pretty bool) *Builder {
	b.prettyJSON = pretty
	return b
}

// WithOverwrite enables overwriting existing files.
func (b *Builder) WithOverwrite(overwrite bool) *Builder {
	b.overwrite = overwrite
	return b
}

// WithTimestampedFilename generates an output filename from a prefix and
// the current time, e.g. "projections_20240101_120000.csv".
func (b *Builder) WithTimestampedFilename(prefix string) *Builder {
	b.filePath = GenerateFilename(prefix, b.format)
	b.useWriter = false
	return b
}

// Build creates an Options struct from the builder's configuration.
func (b *Builder) Build() Options {
	return Options{
		Format:     b.format,
		FilePath:   b.filePath,
		PrettyJSON: b.prettyJSON,
		Overwrite:  b.overwrite,
	}
}

// Export executes the export operation with the configured settings.
func (b *Builder) Export(rows []Row) error {
	if err := b.validate(); err != nil {
		return err
	}

	if b.useWriter {
		return ExportToWriter(b.writer, b.format, rows, b.prettyJSON)
	}

	return NewExporter(b.Build()).Export(rows)
}

// validate checks that the builder configuration is usable.
func (b *Builder) validate() error {
	if !b.useWriter && b.filePath == "" {
		return fmt.Errorf("either file path or writer must be set")
	}

	switch b.format {
	case FormatCSV, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported export format: %s", b.format)
	}
}
