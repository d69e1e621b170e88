package roadscan

import "math"

// Turn is the manoeuvre made through a junction, derived from the heading
// change between entering and leaving it.
type Turn int

const (
	TurnStraight Turn = iota
	TurnBearRight
	TurnRight
	TurnBearLeft
	TurnLeft
	TurnUTurn
)

// Heading-change boundaries in degrees.
const (
	straightMaxDeg = 15.0
	squareMinDeg   = 60.0
	squareMaxDeg   = 120.0
	uTurnMinDeg    = 150.0
)

// ClassifyTurn maps a heading delta in (-180, 180] to a Turn. Positive
// deltas are turns to the right.
func ClassifyTurn(deltaDeg float64) Turn {
	abs := math.Abs(deltaDeg)
	switch {
	case abs < straightMaxDeg:
		return TurnStraight
	case abs > uTurnMinDeg:
		return TurnUTurn
	case deltaDeg >= squareMinDeg && deltaDeg <= squareMaxDeg:
		return TurnRight
	case deltaDeg <= -squareMinDeg && deltaDeg >= -squareMaxDeg:
		return TurnLeft
	case deltaDeg > 0:
		return TurnBearRight
	default:
		return TurnBearLeft
	}
}

func (t Turn) String() string {
	switch t {
	case TurnBearRight:
		return "bear_right"
	case TurnRight:
		return "right"
	case TurnBearLeft:
		return "bear_left"
	case TurnLeft:
		return "left"
	case TurnUTurn:
		return "u_turn"
	default:
		return "straight"
	}
}

// Phrase is the narration for a completed crossing.
func (t Turn) Phrase() string {
	switch t {
	case TurnBearRight:
		return "Bearing right through the intersection"
	case TurnRight:
		return "Turned right"
	case TurnBearLeft:
		return "Bearing left through the intersection"
	case TurnLeft:
		return "Turned left"
	case TurnUTurn:
		return "Made a U-turn"
	default:
		return "Continued straight through the intersection"
	}
}
