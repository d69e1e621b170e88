// Package traffic watches the vehicle's own lane position and the traffic
// around it.
//
// Responsibilities: lane-change detection from lateral drift, overtake
// detection from per-agent longitudinal state transitions, and following
// distance classification with rate-limited speed smoothing published to
// the arbiter as the following cap.
// Key types: Awareness, LaneChangeDetector, OvertakeTracker,
// FollowingMonitor, Band.
//
// Each detector returns the announcements it wants made; Awareness owns the
// throttles, the host queries and the sink.
package traffic
