// Package assist drives one driving-assist session tick by tick.
//
// A Session owns the road scanner, traffic awareness and speed arbiter and
// runs them in a fixed order every tick: telemetry is polled and validated,
// the scanner and awareness push their caps and narration, and only then
// does the arbiter make its single actuation decision.
package assist
