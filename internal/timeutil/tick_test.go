package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeadline(t *testing.T) {
	t.Parallel()

	var zero Deadline
	assert.False(t, zero.Expired(1_000_000), "unset deadline never expires")

	d := NewDeadline(100, 50)
	assert.Equal(t, Tick(150), d.At())
	assert.True(t, d.IsSet())
	assert.False(t, d.Expired(149))
	assert.False(t, d.Expired(150), "expiry is strictly after the recorded tick")
	assert.True(t, d.Expired(151))
}

func TestThrottle(t *testing.T) {
	t.Parallel()

	th := NewThrottle(10)
	assert.True(t, th.Due(5), "first call fires")
	assert.False(t, th.Due(6))
	assert.False(t, th.Due(14))
	assert.True(t, th.Due(15))
	assert.False(t, th.Due(20))

	th.Reset()
	assert.True(t, th.Due(21))
}

func TestThrottleZeroIntervalAlwaysFires(t *testing.T) {
	t.Parallel()

	th := NewThrottle(0)
	for i := Tick(0); i < 5; i++ {
		assert.True(t, th.Due(i))
	}
}

func TestCooldown(t *testing.T) {
	t.Parallel()

	c := NewCooldown()
	assert.True(t, c.Ready("curve", 0, 100))
	assert.True(t, c.TryFire("curve", 10, 100))
	assert.False(t, c.TryFire("curve", 50, 100))
	assert.True(t, c.Ready("junction", 50, 100), "categories are independent")
	assert.False(t, c.Ready("curve", 109, 100))
	assert.True(t, c.Ready("curve", 110, 100))

	c.Reset()
	assert.True(t, c.Ready("curve", 11, 100))
}
