package chart

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"gopower/app"
	"gopower/internal/errors"
)

// Renderer draws a sweep result as a PNG line chart: the varying parameter
// on the x axis (percentage formatted), required per-group sample size on
// the y axis, with point labels in thousands.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer with the default canvas size.
func NewRenderer() *Renderer {
	return &Renderer{Width: 900, Height: 520}
}

// RenderPNG writes the sweep chart to w.
func (r *Renderer) RenderPNG(result *app.SweepResult, w io.Writer) error {
	if len(result.Evaluations) == 0 {
		return errors.InvalidInput("sweep result has no evaluations to chart")
	}

	xs := make([]float64, len(result.Evaluations))
	ys := make([]float64, len(result.Evaluations))
	labels := make([]chart.Value2, 0, len(result.Evaluations))
	for i, ev := range result.Evaluations {
		xs[i] = ev.Point.Value
		ys[i] = ev.RawN
		labels = append(labels, chart.Value2{
			XValue: ev.Point.Value,
			YValue: ev.RawN,
			Label:  KiloLabel(float64(ev.RequiredN)),
		})
	}

	line := chart.ContinuousSeries{
		Name:    "required per-group sample size",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			StrokeWidth: 2.0,
			DotColor:    chart.ColorBlue,
			DotWidth:    3.0,
		},
	}

	annotations := chart.AnnotationSeries{
		Annotations: labels,
		Style: chart.Style{
			StrokeColor: drawing.ColorTransparent,
			FillColor:   drawing.ColorTransparent,
			FontSize:    9.0,
		},
	}

	graph := chart.Chart{
		Title:  chartTitle(result),
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 48, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:           axisName(result),
			ValueFormatter: PercentFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "per-group sample size",
			ValueFormatter: kiloFormatter,
		},
		Series: []chart.Series{line, annotations},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return errors.RenderError("failed to render sweep chart", err)
	}
	return nil
}

func chartTitle(result *app.SweepResult) string {
	return fmt.Sprintf("Required sample size vs %s (power %.0f%%)", axisName(result), result.Fixed.Power*100)
}

func axisName(result *app.SweepResult) string {
	switch result.Axis {
	case "mde":
		return "minimum detectable effect"
	case "alpha":
		return "significance level"
	case "baseline":
		return "baseline conversion rate"
	default:
		return string(result.Axis)
	}
}

// PercentFormatter renders a fractional axis value as a percentage with one
// decimal place.
func PercentFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.1f%%", f*100)
}

// KiloLabel formats a sample size in thousands with one decimal ("6.3k").
// Small values keep their raw count.
func KiloLabel(n float64) string {
	if n < 1000 {
		return fmt.Sprintf("%.0f", n)
	}
	return fmt.Sprintf("%.1fk", n/1000)
}

func kiloFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return KiloLabel(f)
}
