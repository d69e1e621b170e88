// Package host defines the boundary between the assist engine and the
// vehicle simulation that hosts it.
//
// Responsibilities: telemetry and road/proximity sample types, the
// interfaces the host implements (telemetry, road graph, proximity,
// actuation, narration), and the single validation point for incoming
// telemetry. Inner algorithms assume values that passed Validate.
//
// Dependency rule: host depends only on timeutil and gonum; every other
// internal package may depend on host.
package host
