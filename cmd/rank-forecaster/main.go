package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ramonehamilton/Rank-Forecaster/internal/charts"
	"github.com/ramonehamilton/Rank-Forecaster/internal/config"
	"github.com/ramonehamilton/Rank-Forecaster/internal/display"
	"github.com/ramonehamilton/Rank-Forecaster/internal/export"
	"github.com/ramonehamilton/Rank-Forecaster/internal/importer"
	"github.com/ramonehamilton/Rank-Forecaster/internal/session"
)

var (
	// Input flags
	inputPath  = flag.String("input", "", "Path to the keyword CSV/TSV export to analyze (required)")
	configPath = flag.String("config-path", "", "Path to the TOML configuration file (default: ~/.rank-forecaster/config.toml)")

	// Threshold override flags; when set they take precedence over the
	// configuration file for this run.
	minSearchVolume = flag.Int("min-search-volume", 0, "Minimum search volume threshold (overrides configuration)")
	maxPosition     = flag.Int("max-position", 0, "Maximum position threshold (overrides configuration)")
	upliftCTR       = flag.Float64("uplift-ctr", 0, "CTR uplift percentage (overrides configuration)")

	// Output flags
	exportPath   = flag.String("export-path", "", "Write projected keywords to this file")
	exportFormat = flag.String("export-format", "csv", "Export format: csv or json")
	overwrite    = flag.Bool("overwrite", false, "Overwrite the export file if it already exists")
	chartsDir    = flag.String("charts-dir", "", "Write interactive HTML charts to this directory")
	openCharts   = flag.Bool("open-charts", false, "Open generated charts in the default browser")
	compact      = flag.Bool("compact", false, "Also print the per-keyword table")

	// Application mode flags
	watchMode      = flag.Bool("watch", false, "Keep running and recompute when the input or configuration changes")
	debugMode      = flag.Bool("debug-mode", false, "Enable verbose debug logging")
	debugModeShort = flag.Bool("d", false, "Enable debug logging (shorthand for -debug-mode)")
)

func main() {
	flag.Parse()

	if *debugModeShort {
		*debugMode = true
	}

	if *inputPath == "" {
		printUsage()
		os.Exit(1)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			log.Fatalf("Error resolving configuration path: %v", err)
		}
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	s := session.New(cfg)
	if err := reload(s, *inputPath); err != nil {
		log.Fatalf("Error analyzing %s: %v", *inputPath, err)
	}

	if err := writeOutputs(s); err != nil {
		log.Fatalf("Error writing outputs: %v", err)
	}

	if !*watchMode {
		return
	}

	runWatch(s, cfgPath)
}

// loadConfig reads the configuration file and applies any threshold flags
// that were explicitly set on the command line.
func loadConfig(cfgPath string) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-search-volume":
			cfg.Filters.MinSearchVolume = *minSearchVolume
		case "max-position":
			cfg.Filters.MaxPosition = *maxPosition
		case "uplift-ctr":
			cfg.CTR.UpliftPct = *upliftCTR
		}
	})

	if *debugMode {
		log.Printf("[DEBUG] Configuration: filters=%+v uplift=%.2f rules=%d",
			cfg.Filters, cfg.CTR.UpliftPct, len(cfg.CohortRules))
	}

	return cfg, nil
}

// reload re-imports the input file into the session and recomputes.
func reload(s *session.Session, path string) error {
	result, err := importer.ImportFile(path)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "[WARN] %s\n", warning)
	}
	if *debugMode {
		log.Printf("[DEBUG] Imported %d rows (%d dropped) from %s", result.RowsRead, result.RowsDropped, path)
	}

	s.SetRecords(result.Records)
	if _, err := s.Recompute(); err != nil {
		return err
	}
	return nil
}

// writeOutputs prints the summary and produces the optional export and
// chart artifacts.
func writeOutputs(s *session.Session) error {
	results := s.Results()

	displayer := display.NewSummaryDisplayer()
	if err := displayer.DisplayResults(results); err != nil {
		return err
	}
	if *compact {
		if err := displayer.DisplayKeywordsCompact(results.Projected); err != nil {
			return err
		}
	}

	if *exportPath != "" {
		err := export.NewBuilder().
			WithFormat(export.Format(*exportFormat)).
			WithFilePath(*exportPath).
			WithOverwrite(*overwrite).
			Export(export.BuildRows(results.Projected))
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Printf("Exported %d keywords to %s\n", len(results.Projected), *exportPath)
	}

	if *chartsDir != "" {
		if err := writeCharts(results, *chartsDir); err != nil {
			return fmt.Errorf("chart generation failed: %w", err)
		}
	}

	return nil
}

// writeCharts renders the distribution, opportunity, and comparison charts.
func writeCharts(results *session.Results, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create charts directory: %w", err)
	}

	chartConfig := charts.DefaultChartConfig()

	type chartJob struct {
		path   string
		render func(path string) error
	}
	jobs := []chartJob{
		{
			path: filepath.Join(dir, "position-distribution.html"),
			render: func(path string) error {
				return charts.RenderPositionDistribution(results.Summary, chartConfig, path)
			},
		},
		{
			path: filepath.Join(dir, "top-opportunities.html"),
			render: func(path string) error {
				return charts.RenderTopOpportunities(results.Summary, chartConfig, path)
			},
		},
		{
			path: filepath.Join(dir, "traffic-comparison.html"),
			render: func(path string) error {
				return charts.RenderTrafficComparison(results.Projected, chartConfig, path)
			},
		},
	}

	for _, job := range jobs {
		if err := job.render(job.path); err != nil {
			// A dataset without positive gains has nothing to chart; skip
			// the opportunity charts rather than failing the run.
			fmt.Fprintf(os.Stderr, "[WARN] Skipping %s: %v\n", filepath.Base(job.path), err)
			continue
		}
		fmt.Printf("Chart written to %s\n", job.path)
		if *openCharts {
			if err := charts.OpenInBrowser(job.path); err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] Could not open %s: %v\n", job.path, err)
			}
		}
	}

	return nil
}

// runWatch blocks, recomputing whenever the input or configuration file
// changes, until interrupted.
func runWatch(s *session.Session, cfgPath string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	onChange := func(path string) {
		if *debugMode {
			log.Printf("[DEBUG] Change detected: %s", path)
		}

		if path == cfgPath {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] Ignoring configuration change: %v\n", err)
				return
			}
			s.SetConfig(cfg)
		}

		if err := reload(s, *inputPath); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Recompute failed, keeping previous results: %v\n", err)
			return
		}
		if err := writeOutputs(s); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Output failed: %v\n", err)
		}
	}

	fmt.Printf("Watching %s and %s for changes (Ctrl+C to stop)...\n", *inputPath, cfgPath)

	watcher := session.NewWatcher([]string{*inputPath, cfgPath}, onChange)
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Watcher error: %v", err)
	}

	fmt.Println("\nShutting down.")
}

func printUsage() {
	fmt.Println("Rank Forecaster - Keyword Traffic Projection")
	fmt.Println("============================================")
	fmt.Println()
	fmt.Println("Usage: rank-forecaster -input <keywords.csv> [options]")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  rank-forecaster -input keywords.csv")
	fmt.Println("  rank-forecaster -input keywords.csv -uplift-ctr 10 -export-path out.csv")
	fmt.Println("  rank-forecaster -input keywords.tsv -charts-dir ./charts -open-charts")
	fmt.Println("  rank-forecaster -input keywords.csv -watch")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}
