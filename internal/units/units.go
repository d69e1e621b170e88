// Package units provides speed unit conversion and the spoken wording of
// distances and speeds used in narration.
package units

// Speed unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
)

// Measurement systems for narration.
const (
	Metric   = "metric"
	Imperial = "imperial"
)

// ValidSystems contains all valid narration systems
var ValidSystems = []string{Metric, Imperial}

// IsValidSystem checks if the given name is a valid narration system
func IsValidSystem(system string) bool {
	for _, s := range ValidSystems {
		if system == s {
			return true
		}
	}
	return false
}

// GetValidSystemsString returns a comma-separated string of valid systems for error messages
func GetValidSystemsString() string {
	return "metric, imperial"
}

// ConvertSpeed converts a speed from metres per second to the target units.
// The engine works in m/s throughout; conversion only happens for wording.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedMPS * 2.2369362920544
	case KMPH:
		return speedMPS * 3.6
	default:
		return speedMPS
	}
}

// SpeedUnitFor returns the speed unit spoken in a narration system.
func SpeedUnitFor(system string) string {
	if system == Imperial {
		return MPH
	}
	return KMPH
}
