package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/nmoreland/gridiron/internal/predict"
	"github.com/nmoreland/gridiron/internal/stats"
)

// ChartConfig holds chart rendering options.
type ChartConfig struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
	Theme    string
}

// DefaultChartConfig returns the default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:  "Super Bowl Prediction",
		Width:  "1100px",
		Height: "550px",
		Theme:  "light",
	}
}

// RenderReport writes a single HTML page with the ranking bar chart and the
// feature correlation heatmap.
func RenderReport(rankings []predict.Ranking, matrix *stats.Matrix, config ChartConfig, outputPath string) error {
	page := components.NewPage()
	page.AddCharts(rankingBarChart(rankings, config))
	if matrix != nil {
		page.AddCharts(correlationHeatmap(matrix, config))
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}

// rankingBarChart plots composite scores best-first, one bar per team.
func rankingBarChart(rankings []predict.Ranking, config ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
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
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"},
		}),
	)

	xLabels := make([]string, len(rankings))
	scores := make([]opts.BarData, len(rankings))
	confidence := make([]opts.BarData, len(rankings))
	for i, r := range rankings {
		xLabels[i] = r.Team
		scores[i] = opts.BarData{Value: r.Score}
		confidence[i] = opts.BarData{Value: r.Confidence}
	}

	bar.SetXAxis(xLabels).
		AddSeries("Composite score", scores).
		AddSeries("Confidence %", confidence).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)
	return bar
}

// correlationHeatmap renders the full feature correlation matrix with a
// diverging [-1, 1] color scale.
func correlationHeatmap(m *stats.Matrix, config ChartConfig) *charts.HeatMap {
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Feature correlation matrix",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      m.Names,
			AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"},
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      m.Names,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: []string{"#313695", "#ffffff", "#a50026"}},
		}),
	)

	data := make([]opts.HeatMapData, 0, len(m.Names)*len(m.Names))
	for i := range m.Names {
		for j := range m.Names {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, m.Cells[i][j]}})
		}
	}
	hm.AddSeries("correlation", data)
	return hm
}
