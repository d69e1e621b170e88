package report

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	pngWidth  = 14 * vg.Inch
	pngHeight = 6 * vg.Inch
)

// RenderPNG writes a static PNG chart for tr.
func RenderPNG(w io.Writer, tr Trace) error {
	if len(tr.Samples) == 0 {
		return ErrEmptyTrace
	}

	p := plot.New()
	p.Title.Text = tr.Title
	p.X.Label.Text = "Tick"
	p.Y.Label.Text = fmt.Sprintf("Speed (%s)", unitLabel(tr.SpeedUnit))
	p.Add(plotter.NewGrid())

	series := []struct {
		name string
		get  func(Sample) float64
	}{
		{"actual", func(s Sample) float64 { return s.Speed }},
		{"commanded", func(s Sample) float64 { return s.Commanded }},
		{"curve cap", func(s Sample) float64 { return s.CurveCap }},
		{"following cap", func(s Sample) float64 { return s.FollowingCap }},
	}
	for i, sr := range series {
		segs := segments(tr.Samples, sr.get)
		for j, pts := range segs {
			l, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("%s line: %w", sr.name, err)
			}
			l.Color = plotutil.Color(i)
			l.Width = vg.Points(1)
			if i >= 2 {
				l.Dashes = plotutil.Dashes(1)
			}
			p.Add(l)
			if j == 0 {
				p.Legend.Add(sr.name, l)
			}
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// segments splits a series into contiguous runs of defined values.
func segments(samples []Sample, get func(Sample) float64) []plotter.XYs {
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	for _, s := range samples {
		v := get(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(s.Tick), Y: v})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
