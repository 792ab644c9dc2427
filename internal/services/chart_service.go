package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/nycdan-n2p/call-intel-widget/internal/models"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Fixed chart filenames. Reports reference charts by these names.
const (
	CallResultChartFile       = "call_result.png"
	DailyVolumeChartFile      = "daily_volume.png"
	AbandonmentTrendChartFile = "abandonment_trends.png"
	HourlyPatternsChartFile   = "hourly_patterns.png"
	AgentPerformanceChartFile = "agent_performance.png"
)

// ChartService renders fixed-size PNG charts into a directory. Every
// renderer skips (returns "") when its series is empty; rendering is
// never allowed to fail the run, so callers treat errors as a skipped
// chart.
type ChartService struct {
	dir string
}

// NewChartService creates a chart service writing into dir.
func NewChartService(dir string) *ChartService {
	return &ChartService{dir: dir}
}

// CallResultChart renders a bar chart of call-result counts.
func (s *ChartService) CallResultChart(results []ValueCount) (string, error) {
	if len(results) == 0 {
		return "", nil
	}

	bars := make([]chart.Value, 0, len(results))
	for _, r := range results {
		bars = append(bars, chart.Value{Label: r.Value, Value: float64(r.Count)})
	}

	bc := chart.BarChart{
		Title:    "Call-Result Distribution",
		Width:    1024,
		Height:   512,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}
	return s.render(CallResultChartFile, func(f *os.File) error {
		return bc.Render(chart.PNG, f)
	})
}

// DailyVolumeChart renders a line chart of calls per day over the fixed
// window.
func (s *ChartService) DailyVolumeChart(days []DailyCount) (string, error) {
	if len(days) < 2 {
		return "", nil
	}

	xs := make([]time.Time, 0, len(days))
	ys := make([]float64, 0, len(days))
	for _, d := range days {
		xs = append(xs, d.Date)
		ys = append(ys, float64(d.Calls))
	}

	c := chart.Chart{
		Title:  "Daily Call Volume – last " + strconv.Itoa(len(days)) + " days",
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{Name: "Calls"},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Calls",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue},
			},
		},
	}
	return s.render(DailyVolumeChartFile, func(f *os.File) error {
		return c.Render(chart.PNG, f)
	})
}

// AbandonmentTrendChart renders per-interval call volumes by type with
// the abandonment rate and its 5%/10% reference lines on a secondary
// axis. Intervals with no offered calls are excluded.
func (s *ChartService) AbandonmentTrendChart(intervals []models.QueueInterval) (string, error) {
	var active []models.QueueInterval
	for _, iv := range intervals {
		if iv.Offered() > 0 {
			active = append(active, iv)
		}
	}
	if len(active) < 2 {
		return "", nil
	}

	xs := make([]time.Time, 0, len(active))
	answered := make([]float64, 0, len(active))
	abandoned := make([]float64, 0, len(active))
	overflowed := make([]float64, 0, len(active))
	rate := make([]float64, 0, len(active))
	target := make([]float64, 0, len(active))
	warning := make([]float64, 0, len(active))
	for _, iv := range active {
		xs = append(xs, iv.Start)
		answered = append(answered, float64(iv.Answered))
		abandoned = append(abandoned, float64(iv.Abandoned))
		overflowed = append(overflowed, float64(iv.Overflowed))
		rate = append(rate, offeredRate(iv.Abandoned, iv.Offered()))
		target = append(target, 5)
		warning = append(warning, 10)
	}

	dashed := []float64{5.0, 5.0}
	c := chart.Chart{
		Title:  "Call Volume and Abandonment Rate",
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04"),
		},
		YAxis:          chart.YAxis{Name: "Call Count"},
		YAxisSecondary: chart.YAxis{Name: "Abandonment Rate (%)"},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Answered", XValues: xs, YValues: answered, Style: chart.Style{StrokeColor: chart.ColorGreen}},
			chart.TimeSeries{Name: "Abandoned", XValues: xs, YValues: abandoned, Style: chart.Style{StrokeColor: chart.ColorRed}},
			chart.TimeSeries{Name: "Overflowed", XValues: xs, YValues: overflowed, Style: chart.Style{StrokeColor: chart.ColorOrange}},
			chart.TimeSeries{Name: "Abandonment %", XValues: xs, YValues: rate, YAxis: chart.YAxisSecondary, Style: chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2}},
			chart.TimeSeries{Name: "5% Target", XValues: xs, YValues: target, YAxis: chart.YAxisSecondary, Style: chart.Style{StrokeColor: chart.ColorOrange, StrokeDashArray: dashed}},
			chart.TimeSeries{Name: "10% Warning", XValues: xs, YValues: warning, YAxis: chart.YAxisSecondary, Style: chart.Style{StrokeColor: chart.ColorRed, StrokeDashArray: dashed}},
		},
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	return s.render(AbandonmentTrendChartFile, func(f *os.File) error {
		return c.Render(chart.PNG, f)
	})
}

// HourlyPatternsChart renders stacked bars of the hourly call mix.
func (s *ChartService) HourlyPatternsChart(trends []models.HourlyTrend) (string, error) {
	if len(trends) == 0 {
		return "", nil
	}

	ordered := make([]models.HourlyTrend, len(trends))
	copy(ordered, trends)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Hour < ordered[j].Hour
	})

	bars := make([]chart.StackedBar, 0, len(ordered))
	for _, t := range ordered {
		bars = append(bars, chart.StackedBar{
			Name:  fmt.Sprintf("%02d", t.Hour),
			Width: 40,
			Values: []chart.Value{
				{Label: "Answered", Value: float64(t.Answered), Style: chart.Style{FillColor: chart.ColorGreen, StrokeColor: chart.ColorGreen}},
				{Label: "Abandoned", Value: float64(t.Abandoned), Style: chart.Style{FillColor: chart.ColorRed, StrokeColor: chart.ColorRed}},
				{Label: "Overflowed", Value: float64(t.Overflowed), Style: chart.Style{FillColor: chart.ColorOrange, StrokeColor: chart.ColorOrange}},
			},
		})
	}

	sbc := chart.StackedBarChart{
		Title:      "Hourly Call Volume Distribution",
		Width:      1280,
		Height:     720,
		BarSpacing: 24,
		XAxis:      chart.Style{},
		YAxis:      chart.Style{},
		Bars:       bars,
	}
	return s.render(HourlyPatternsChartFile, func(f *os.File) error {
		return sbc.Render(chart.PNG, f)
	})
}

// AgentPerformanceChart renders a bar chart of the top volume agents.
func (s *ChartService) AgentPerformanceChart(agents []models.AgentPerformance) (string, error) {
	if len(agents) == 0 {
		return "", nil
	}

	bars := make([]chart.Value, 0, len(agents))
	for _, a := range agents {
		bars = append(bars, chart.Value{Label: a.Agent, Value: float64(a.Answered)})
	}

	bc := chart.BarChart{
		Title:    "Top Agents by Call Volume",
		Width:    1024,
		Height:   512,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}
	return s.render(AgentPerformanceChartFile, func(f *os.File) error {
		return bc.Render(chart.PNG, f)
	})
}

func (s *ChartService) render(name string, draw func(f *os.File) error) (string, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("unable to create chart file: %w", err)
	}
	defer f.Close()
	if err := draw(f); err != nil {
		return "", fmt.Errorf("unable to render chart %s: %w", name, err)
	}
	return path, nil
}
