// Package sim is a deterministic in-process host for replaying driving
// scenarios against an assist session.
//
// A Scenario describes a road polyline, the ego vehicle and the agents
// sharing the road. Host implements every host interface on top of it and
// advances one tick per Step. Replay runs a full scenario through a
// Session and collects the frames.
package sim
