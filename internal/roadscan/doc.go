// Package roadscan samples the road graph ahead of the vehicle and reports
// curves, traffic lights and intersections.
//
// Responsibilities: speed-scaled forward sampling, curve classification via
// the curve package, cooldown-gated narration, curve slowdown (published to
// the arbiter as the curve cap) and intersection-crossing turn detection at
// the vehicle's own position.
// Key types: Scanner, Config, Slowdown, Crossing, Turn.
//
// Only one feature is narrated per tick. Host query failures are logged; a
// failed nearest-node query ends the scan for that tick.
package roadscan
