package sim

import (
	"fmt"
	"math"
)

// Kinematics is a constant-acceleration motion model for the ego vehicle.
type Kinematics struct {
	AAcc float64 `json:"a_acc"` // traction acceleration, m/s²
	ADcc float64 `json:"a_dcc"` // service braking deceleration, m/s² (positive)
}

// Validate rejects negative or non-finite rates. Zero rates mean the
// vehicle reaches its target instantly.
func (k Kinematics) Validate() error {
	if math.IsNaN(k.AAcc) || math.IsInf(k.AAcc, 0) || k.AAcc < 0 {
		return fmt.Errorf("a_acc must be a non-negative number, got %v", k.AAcc)
	}
	if math.IsNaN(k.ADcc) || math.IsInf(k.ADcc, 0) || k.ADcc < 0 {
		return fmt.Errorf("a_dcc must be a non-negative number, got %v", k.ADcc)
	}
	return nil
}

// Step moves toward targetV over dt seconds and returns the distance
// travelled and the new speed.
func (k Kinematics) Step(v, targetV, dt float64) (float64, float64) {
	if targetV >= v {
		return k.AccelerateStep(v, targetV, dt)
	}
	return k.DecelerateStep(v, targetV, dt)
}

// AccelerateStep handles mid-step transitions: if targetV is reached
// before dt expires the vehicle cruises for the remainder.
func (k Kinematics) AccelerateStep(v, targetV, dt float64) (float64, float64) {
	if k.AAcc <= 0 || v >= targetV {
		return targetV * dt, targetV
	}
	tToTarget := (targetV - v) / k.AAcc
	if tToTarget <= dt {
		s1 := v*tToTarget + 0.5*k.AAcc*tToTarget*tToTarget
		s2 := targetV * (dt - tToTarget)
		return s1 + s2, targetV
	}
	return v*dt + 0.5*k.AAcc*dt*dt, v + k.AAcc*dt
}

// DecelerateStep brakes toward targetV (>= 0) over dt seconds.
func (k Kinematics) DecelerateStep(v, targetV, dt float64) (float64, float64) {
	if k.ADcc <= 0 || v <= targetV {
		return targetV * dt, targetV
	}
	tToTarget := (v - targetV) / k.ADcc
	if tToTarget <= dt {
		s1 := v*tToTarget - 0.5*k.ADcc*tToTarget*tToTarget
		s2 := targetV * (dt - tToTarget)
		return math.Max(0, s1) + s2, targetV
	}
	return math.Max(0, v*dt-0.5*k.ADcc*dt*dt), v - k.ADcc*dt
}
