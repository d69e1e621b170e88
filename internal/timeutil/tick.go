// Package timeutil provides tick-stamped deadlines, cooldowns and throttles.
//
// Every timer in the assist engine is expressed in host ticks rather than wall
// clock time. The host supplies a monotonically increasing counter and each
// component compares it against deadlines it recorded earlier.
package timeutil

// Tick is one discrete host-driven evaluation step.
type Tick int64

// Deadline is a tick after which some timed state lapses.
// The zero value is unset and never expires.
type Deadline struct {
	at  Tick
	set bool
}

// NewDeadline returns a deadline that expires strictly after now+duration.
func NewDeadline(now Tick, duration int64) Deadline {
	return Deadline{at: now + Tick(duration), set: true}
}

// At returns the recorded expiry tick.
func (d Deadline) At() Tick { return d.at }

// IsSet reports whether the deadline has been armed.
func (d Deadline) IsSet() bool { return d.set }

// Expired reports whether now is strictly after the recorded tick.
func (d Deadline) Expired(now Tick) bool {
	return d.set && now > d.at
}

// Throttle gates a periodic check to at most once per Interval ticks.
type Throttle struct {
	Interval int64

	last    Tick
	started bool
}

// NewThrottle returns a throttle that fires on the first call to Due.
func NewThrottle(interval int64) *Throttle {
	return &Throttle{Interval: interval}
}

// Due reports whether the interval has elapsed since the last firing and,
// if so, records now as the new firing tick.
func (t *Throttle) Due(now Tick) bool {
	if t.started && int64(now-t.last) < t.Interval {
		return false
	}
	t.last = now
	t.started = true
	return true
}

// Reset makes the next Due call fire immediately.
func (t *Throttle) Reset() {
	t.last = 0
	t.started = false
}

// Cooldown tracks the last tick each category fired.
type Cooldown struct {
	last map[string]Tick
}

// NewCooldown returns an empty cooldown table.
func NewCooldown() *Cooldown {
	return &Cooldown{last: make(map[string]Tick)}
}

// Ready reports whether at least window ticks have passed since category
// last fired. A category that never fired is always ready.
func (c *Cooldown) Ready(category string, now Tick, window int64) bool {
	last, ok := c.last[category]
	if !ok {
		return true
	}
	return int64(now-last) >= window
}

// Mark records that category fired at now.
func (c *Cooldown) Mark(category string, now Tick) {
	c.last[category] = now
}

// TryFire marks category and returns true when it is ready.
func (c *Cooldown) TryFire(category string, now Tick, window int64) bool {
	if !c.Ready(category, now, window) {
		return false
	}
	c.Mark(category, now)
	return true
}

// Reset forgets every category.
func (c *Cooldown) Reset() {
	c.last = make(map[string]Tick)
}
