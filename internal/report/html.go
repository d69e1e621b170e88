package report

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrEmptyTrace is returned when there is nothing to plot.
var ErrEmptyTrace = errors.New("trace has no samples")

// RenderHTML writes a self-contained line chart page for tr.
func RenderHTML(w io.Writer, tr Trace) error {
	if len(tr.Samples) == 0 {
		return ErrEmptyTrace
	}

	ticks := make([]int64, 0, len(tr.Samples))
	speed := make([]opts.LineData, 0, len(tr.Samples))
	commanded := make([]opts.LineData, 0, len(tr.Samples))
	curve := make([]opts.LineData, 0, len(tr.Samples))
	following := make([]opts.LineData, 0, len(tr.Samples))
	for _, s := range tr.Samples {
		ticks = append(ticks, s.Tick)
		speed = append(speed, lineValue(s.Speed))
		commanded = append(commanded, lineValue(s.Commanded))
		curve = append(curve, lineValue(s.CurveCap))
		following = append(following, lineValue(s.FollowingCap))
	}

	label := unitLabel(tr.SpeedUnit)
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: tr.Title, Width: "100%", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: tr.Title, Subtitle: fmt.Sprintf("ticks=%d", len(tr.Samples))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Tick", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Speed (" + label + ")", NameLocation: "middle", NameGap: 40}),
	)

	noSymbol := charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})
	line.SetXAxis(ticks).
		AddSeries("actual", speed, noSymbol).
		AddSeries("commanded", commanded, noSymbol).
		AddSeries("curve cap", curve, noSymbol).
		AddSeries("following cap", following, noSymbol)

	return line.Render(w)
}

// lineValue maps NaN to echarts' missing-value marker so unset caps leave
// gaps instead of dropping to zero.
func lineValue(v float64) opts.LineData {
	if math.IsNaN(v) {
		return opts.LineData{Value: "-"}
	}
	return opts.LineData{Value: math.Round(v*100) / 100}
}
