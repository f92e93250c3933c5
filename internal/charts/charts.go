package charts

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/Rank-Forecaster/internal/stats"
	"github.com/ramonehamilton/Rank-Forecaster/internal/traffic"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	Colors     []string // Custom colors
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE"},
	}
}

// DataPoint represents a single data point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// SeriesData represents a data series for multi-series charts.
type SeriesData struct {
	Name   string
	Points []DataPoint
}

// RenderPositionDistribution writes a bar chart of the keyword count per
// reporting position range.
func RenderPositionDistribution(summary *stats.Summary, config ChartConfig, outputPath string) error {
	if config.Title == "" {
		config.Title = "Keyword Position Distribution"
	}

	data := make([]DataPoint, 0, len(stats.PositionRanges))
	for _, label := range stats.PositionRanges {
		data = append(data, DataPoint{
			Label: label,
			Value: float64(summary.PositionDistribution[label]),
		})
	}

	return renderBar("Keywords", data, config, outputPath)
}

// RenderTopOpportunities writes a bar chart of the expected traffic gain
// for the top opportunity keywords.
func RenderTopOpportunities(summary *stats.Summary, config ChartConfig, outputPath string) error {
	if len(summary.TopOpportunities) == 0 {
		return fmt.Errorf("no opportunities to chart")
	}
	if config.Title == "" {
		config.Title = "Top Traffic Opportunities"
		config.Subtitle = "Expected traffic gain per keyword"
	}

	data := make([]DataPoint, 0, len(summary.TopOpportunities))
	for _, opp := range summary.TopOpportunities {
		data = append(data, DataPoint{Label: opp.Keyword, Value: opp.ExpectedGain})
	}

	return renderBar("Expected Gain", data, config, outputPath)
}

// RenderTrafficComparison writes a two-series bar chart comparing current
// and expected traffic per keyword.
func RenderTrafficComparison(projected []*traffic.ProjectedKeyword, config ChartConfig, outputPath string) error {
	if len(projected) == 0 {
		return fmt.Errorf("no keywords to chart")
	}
	if config.Title == "" {
		config.Title = "Current vs Expected Traffic"
	}

	currentSeries := SeriesData{Name: "Current Traffic"}
	expectedSeries := SeriesData{Name: "Expected Traffic"}
	for _, pk := range projected {
		currentSeries.Points = append(currentSeries.Points, DataPoint{Label: pk.Record.Text, Value: pk.Projection.CurrentTraffic})
		expectedSeries.Points = append(expectedSeries.Points, DataPoint{Label: pk.Record.Text, Value: pk.Forecast.ExpectedTraffic})
	}

	return renderMultiBar([]SeriesData{currentSeries, expectedSeries}, config, outputPath)
}

// renderBar creates a single-series interactive bar chart HTML file.
func renderBar(seriesName string, data []DataPoint, config ChartConfig, outputPath string) error {
	config = withDefaultColors(config)

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(config)...)

	xLabels := make([]string, len(data))
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(seriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// renderMultiBar creates a multi-series bar chart HTML file.
func renderMultiBar(series []SeriesData, config ChartConfig, outputPath string) error {
	if len(series) == 0 {
		return fmt.Errorf("no data series provided")
	}
	config = withDefaultColors(config)

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(config)...)

	xLabels := make([]string, len(series[0].Points))
	for i, point := range series[0].Points {
		xLabels[i] = point.Label
	}
	bar.SetXAxis(xLabels)

	for i, s := range series {
		yData := make([]opts.BarData, len(s.Points))
		for j, point := range s.Points {
			yData[j] = opts.BarData{Value: point.Value}
		}

		color := config.Colors[i%len(config.Colors)]
		bar.AddSeries(s.Name, yData).
			SetSeriesOptions(
				charts.WithLabelOpts(opts.Label{
					Show: opts.Bool(false),
				}),
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color: color,
				}),
			)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// withDefaultColors fills an empty color palette with the defaults so a
// zero-value ChartConfig is safe to render with.
func withDefaultColors(config ChartConfig) ChartConfig {
	if len(config.Colors) == 0 {
		config.Colors = DefaultChartConfig().Colors
	}
	return config
}

func globalOptions(config ChartConfig) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors{
			config.Colors[0],
		}),
	}
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
