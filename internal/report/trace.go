package report

import (
	"math"

	"github.com/banshee-data/velocity.assist/internal/assist"
	"github.com/banshee-data/velocity.assist/internal/tracedb"
	"github.com/banshee-data/velocity.assist/internal/units"
)

// Sample is one tick of a trace in display units. Caps are NaN when unset.
type Sample struct {
	Tick         int64
	Speed        float64
	Commanded    float64
	CurveCap     float64
	FollowingCap float64
}

// Trace is a titled run ready to render.
type Trace struct {
	Title     string
	SpeedUnit string
	Samples   []Sample
}

// FromFrames converts session frames. system picks the display speed unit
// (metric or imperial).
func FromFrames(title, system string, frames []assist.Frame) Trace {
	unit := units.SpeedUnitFor(system)
	tr := Trace{Title: title, SpeedUnit: unit, Samples: make([]Sample, 0, len(frames))}
	for _, f := range frames {
		tr.Samples = append(tr.Samples, Sample{
			Tick:         int64(f.Tick),
			Speed:        units.ConvertSpeed(f.Telemetry.Speed, unit),
			Commanded:    units.ConvertSpeed(f.Decision.Effective, unit),
			CurveCap:     displayCap(f.CurveCap, unit),
			FollowingCap: displayCap(f.FollowingCap, unit),
		})
	}
	return tr
}

// FromDecisions converts rows read back from a trace database.
func FromDecisions(title, system string, rows []tracedb.DecisionRow) Trace {
	unit := units.SpeedUnitFor(system)
	tr := Trace{Title: title, SpeedUnit: unit, Samples: make([]Sample, 0, len(rows))}
	for _, d := range rows {
		tr.Samples = append(tr.Samples, Sample{
			Tick:         int64(d.Tick),
			Speed:        units.ConvertSpeed(d.Speed, unit),
			Commanded:    units.ConvertSpeed(d.Effective, unit),
			CurveCap:     displayCap(d.CurveCap, unit),
			FollowingCap: displayCap(d.FollowingCap, unit),
		})
	}
	return tr
}

func displayCap(v float64, unit string) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return math.NaN()
	}
	return units.ConvertSpeed(v, unit)
}

func unitLabel(unit string) string {
	switch unit {
	case units.MPH:
		return "mph"
	case units.KMPH:
		return "km/h"
	default:
		return "m/s"
	}
}
