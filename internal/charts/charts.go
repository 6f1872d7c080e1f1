// Package charts renders dashboard reports as PNG images with go-chart.
package charts

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jmagar/movieboard/internal/models"
)

// ErrNoData is returned when a report has nothing to plot.
var ErrNoData = errors.New("no data to chart")

const (
	defaultWidth  = 1024
	defaultHeight = 512
	maxLabelRunes = 18
)

// BarColor is the fill used for ranked bars (#008080).
var BarColor = drawing.ColorFromHex("008080")

// Options controls the canvas size. Zero values use the defaults.
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// RenderTopBar draws one bar per ranked movie, highest first.
func RenderTopBar(report models.TopMoviesReport, w io.Writer, opts ...Options) error {
	if len(report.Items) == 0 {
		return ErrNoData
	}
	width, height := pick(opts).size()

	maxValue := 0.0
	bars := make([]chart.Value, 0, len(report.Items))
	for _, item := range report.Items {
		maxValue = max(maxValue, item.Popularity)
		bars = append(bars, chart.Value{
			Label: truncate(item.Title),
			Value: item.Popularity,
			Style: chart.Style{
				FillColor:   BarColor,
				StrokeColor: BarColor,
				StrokeWidth: 1,
			},
		})
	}

	barWidth := min(max((width-120)/(2*len(bars)), 6), 60)
	bc := chart.BarChart{
		Title:      report.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  "Popularity Score",
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(maxValue)},
		},
		Bars: bars,
	}

	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return nil
}

// RenderTrendLine draws mean popularity against release year.
func RenderTrendLine(report models.TrendReport, w io.Writer, opts ...Options) error {
	if len(report.Points) == 0 {
		return ErrNoData
	}
	width, height := pick(opts).size()

	xs := make([]float64, len(report.Points))
	ys := make([]float64, len(report.Points))
	maxValue := 0.0
	for i, p := range report.Points {
		xs[i] = float64(p.Year)
		ys[i] = p.MeanPopularity
		maxValue = max(maxValue, p.MeanPopularity)
	}

	// go-chart needs at least two distinct x values, so a lone year is
	// drawn as a flat segment spanning half a year either side.
	if len(xs) == 1 {
		x, y := xs[0], ys[0]
		xs = []float64{x - 0.5, x + 0.5}
		ys = []float64{y, y}
	}
	lo, hi := xs[0]-0.5, xs[len(xs)-1]+0.5

	ticks := make([]chart.Tick, 0, len(report.Points))
	step := max(len(report.Points)/12, 1)
	for i, p := range report.Points {
		if i%step == 0 || i == len(report.Points)-1 {
			ticks = append(ticks, chart.Tick{Value: float64(p.Year), Label: strconv.Itoa(p.Year)})
		}
	}

	ch := chart.Chart{
		Title:      report.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Release Year",
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Mean Popularity Score",
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(maxValue)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    report.Query.Genre,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: BarColor,
					StrokeWidth: 2,
					DotColor:    BarColor,
					DotWidth:    4,
				},
			},
		},
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render trend chart: %w", err)
	}
	return nil
}

func pick(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[0]
}

func headroom(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}

func truncate(label string) string {
	if utf8.RuneCountInString(label) <= maxLabelRunes {
		return label
	}
	runes := []rune(label)
	return string(runes[:maxLabelRunes-1]) + "…"
}
