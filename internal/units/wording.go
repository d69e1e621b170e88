package units

import (
	"fmt"
	"math"
)

const metresPerFoot = 0.3048

// FormatDistance renders a distance in metres for speech. Metric distances
// are rounded to 10 m; imperial distances below a quarter mile are spoken
// in feet rounded to 50 ft, otherwise in tenths of a mile.
func FormatDistance(metres float64, system string) string {
	if metres < 0 {
		metres = 0
	}
	if system == Imperial {
		feet := metres / metresPerFoot
		if feet < 1320 {
			ft := math.Max(50, math.Round(feet/50)*50)
			return fmt.Sprintf("%.0f feet", ft)
		}
		return fmt.Sprintf("%.1f miles", feet/5280)
	}
	if metres >= 1000 {
		return fmt.Sprintf("%.1f kilometers", metres/1000)
	}
	m := math.Max(10, math.Round(metres/10)*10)
	return fmt.Sprintf("%.0f meters", m)
}

// FormatSpeed renders a speed in m/s as a whole number in the system's unit.
func FormatSpeed(speedMPS float64, system string) string {
	unit := SpeedUnitFor(system)
	v := math.Round(ConvertSpeed(speedMPS, unit))
	if unit == MPH {
		return fmt.Sprintf("%.0f miles per hour", v)
	}
	return fmt.Sprintf("%.0f kilometers per hour", v)
}
