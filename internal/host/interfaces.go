package host

import "gonum.org/v1/gonum/spatial/r3"

// TelemetrySource is polled once per tick for the ego vehicle state.
type TelemetrySource interface {
	Telemetry() (Telemetry, error)
}

// RoadGraph answers road-node queries around a world point.
type RoadGraph interface {
	// NearestNode returns the closest road node within radius metres of point.
	// found is false when no node lies within the radius.
	NearestNode(point r3.Vec, radius float64) (node RoadNodeSample, found bool, err error)

	// NodeProperties returns the density and flag bits of the node at point.
	NodeProperties(point r3.Vec) (density float64, flags NodeFlags, err error)
}

// ProximityQuery lists dynamic agents near a point.
type ProximityQuery interface {
	NearbyAgents(center r3.Vec, radius float64) ([]Agent, error)
}

// LeadDistanceSource reports the distance to the vehicle ahead as measured
// by the host's collision detector. ok is false when nothing is ahead.
type LeadDistanceSource interface {
	LeadDistance() (distance float64, ok bool)
}

// Actuator receives fire-and-forget cruise commands.
type Actuator interface {
	SetCruiseSpeed(v float64) error
	SetCruiseCeiling(v float64) error
}

// AnnouncementSink accepts narration events.
type AnnouncementSink interface {
	Announce(a Announcement) error
}
