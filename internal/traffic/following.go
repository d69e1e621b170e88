package traffic

import (
	"math"

	"github.com/banshee-data/velocity.assist/internal/arbiter"
	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/timeutil"
)

// CategoryFollowing is the announcement category for following bands.
const CategoryFollowing = "following"

// Band is a following-safety class derived from the time gap to the lead
// vehicle.
type Band int

const (
	BandClear Band = iota
	BandSafe
	BandNormal
	BandClose
	BandDangerous
)

// Lower time-gap bounds in seconds.
const (
	ClearGapSeconds  = 4.0
	SafeGapSeconds   = 3.0
	NormalGapSeconds = 2.0
	CloseGapSeconds  = 1.5
)

func (b Band) String() string {
	switch b {
	case BandSafe:
		return "safe"
	case BandNormal:
		return "normal"
	case BandClose:
		return "close"
	case BandDangerous:
		return "dangerous"
	default:
		return "clear"
	}
}

func (b Band) tight() bool { return b == BandClose || b == BandDangerous }

// ClassifyGap maps a time gap in seconds to a band. +Inf is Clear and NaN
// is treated as Dangerous.
func ClassifyGap(gap float64) Band {
	switch {
	case gap >= ClearGapSeconds:
		return BandClear
	case gap >= SafeGapSeconds:
		return BandSafe
	case gap >= NormalGapSeconds:
		return BandNormal
	case gap >= CloseGapSeconds:
		return BandClose
	default:
		return BandDangerous
	}
}

// StyleRates returns the accel and decel limits in m/s per evaluation.
func StyleRates(style host.DrivingStyle) (accel, decel float64) {
	switch style {
	case host.StyleCautious:
		return 0.5, 1.5
	case host.StyleFast:
		return 1.5, 2.5
	case host.StyleReckless:
		return 2.0, 3.0
	default:
		return 1.0, 2.0
	}
}

// SpeedControl is the slice of the arbiter the following monitor needs.
// *arbiter.Arbiter satisfies it.
type SpeedControl interface {
	SetCap(src arbiter.CapSource, speed float64)
	ClearCap(src arbiter.CapSource)
	ComputeEffectiveSpeedWithout(src arbiter.CapSource) float64
}

// FollowingMonitor classifies the gap to the lead vehicle and, under
// autonomy, smooths speed toward a band-dependent target.
type FollowingMonitor struct {
	cfg      FollowingConfig
	speeds   SpeedControl
	cooldown *timeutil.Cooldown

	band      Band
	gap       float64
	capActive bool
	capSpeed  float64
}

// NewFollowingMonitor returns a monitor in the Clear band. speeds may be
// nil, which disables smoothing.
func NewFollowingMonitor(cfg FollowingConfig, speeds SpeedControl) *FollowingMonitor {
	return &FollowingMonitor{
		cfg:      cfg,
		speeds:   speeds,
		cooldown: timeutil.NewCooldown(),
		band:     BandClear,
		gap:      math.Inf(1),
	}
}

// Band returns the current band.
func (m *FollowingMonitor) Band() Band { return m.band }

// Gap returns the last time gap in seconds; +Inf when clear.
func (m *FollowingMonitor) Gap() float64 { return m.gap }

// Smoothing reports the following cap currently published, if any.
func (m *FollowingMonitor) Smoothing() (float64, bool) { return m.capSpeed, m.capActive }

// TimeGap returns distance/speed for a lead vehicle closer than the clear
// distance, and +Inf otherwise or when speed is below MinSpeed.
func (m *FollowingMonitor) TimeGap(speed, distance float64, hasLead bool) float64 {
	if !hasLead || !host.IsFinite(distance) || distance < 0 || distance >= m.cfg.ClearDistance {
		return math.Inf(1)
	}
	if speed < m.cfg.MinSpeed {
		return math.Inf(1)
	}
	return distance / speed
}

// Evaluate classifies the gap, smooths speed when autonomy is on and
// returns a band-change announcement when one is due. speed must come from
// validated telemetry.
func (m *FollowingMonitor) Evaluate(speed, distance float64, hasLead bool, now timeutil.Tick, style host.DrivingStyle, autonomy bool) (host.Announcement, bool) {
	m.gap = m.TimeGap(speed, distance, hasLead)
	band := ClassifyGap(m.gap)

	if autonomy {
		m.smooth(band, speed, style)
	} else {
		m.clearCap()
	}

	if band == m.band {
		return host.Announcement{}, false
	}
	prev := m.band
	m.band = band

	text, priority, ok := bandText(prev, band)
	if !ok || !m.cooldown.TryFire(CategoryFollowing, now, m.cfg.CooldownTicks) {
		return host.Announcement{}, false
	}
	return host.Announcement{Text: text, Priority: priority, Tick: now, Category: CategoryFollowing}, true
}

// smooth moves the following cap one rate-limited step toward the band's
// target. The cap is cleared once it reaches the speed the arbiter would
// command without it.
func (m *FollowingMonitor) smooth(band Band, speed float64, style host.DrivingStyle) {
	if m.speeds == nil {
		return
	}
	base := m.speeds.ComputeEffectiveSpeedWithout(arbiter.CapFollowing)
	accel, decel := StyleRates(style)

	from := speed
	if m.capActive {
		from = m.capSpeed
	}

	var target float64
	switch band {
	case BandClear, BandSafe:
		target = base
	case BandNormal:
		target = math.Min(from, base)
	case BandClose:
		target = math.Max(m.cfg.FloorSpeed, speed-decel)
	case BandDangerous:
		decel *= 2
		target = math.Max(m.cfg.FloorSpeed, speed-decel)
	}

	next := from + clamp(target-from, -decel, accel)
	if next >= base {
		m.clearCap()
		return
	}
	m.capActive = true
	m.capSpeed = next
	m.speeds.SetCap(arbiter.CapFollowing, next)
}

func (m *FollowingMonitor) clearCap() {
	if !m.capActive {
		return
	}
	m.capActive = false
	m.capSpeed = 0
	if m.speeds != nil {
		m.speeds.ClearCap(arbiter.CapFollowing)
	}
}

// Reset returns to the Clear band and drops any published cap.
func (m *FollowingMonitor) Reset() {
	m.clearCap()
	m.band = BandClear
	m.gap = math.Inf(1)
	m.cooldown.Reset()
}

// bandText words a transition. Close and Dangerous are always worded;
// the relaxed bands only when recovering from one of them.
func bandText(prev, next Band) (string, host.Priority, bool) {
	switch next {
	case BandDangerous:
		return "Dangerously close to the vehicle ahead", host.PriorityCritical, true
	case BandClose:
		return "Following too closely", host.PriorityHigh, true
	}
	if !prev.tight() {
		return "", host.PriorityLow, false
	}
	if next == BandClear {
		return "Road ahead clear", host.PriorityLow, true
	}
	return "Following distance normal", host.PriorityLow, true
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
