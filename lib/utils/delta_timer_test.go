package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeltaTimer(t *testing.T) {
	var d DeltaTimer
	assert.Zero(t, d.Next(), "first call has nothing to compare against")

	start := time.Now().Add(-time.Second)
	d.Set(start)
	dt := d.Next()
	assert.GreaterOrEqual(t, dt, time.Second)
	assert.Less(t, d.Next(), time.Second)
}

func TestDeltaTimerMax(t *testing.T) {
	d := DeltaTimer{Max: 100 * time.Millisecond}
	d.Set(time.Now().Add(-time.Minute))
	assert.Equal(t, 100*time.Millisecond, d.Next())

	d.Set(time.Now().Add(-time.Minute))
	assert.InDelta(t, 0.1, d.NextSeconds(), 1e-6)
}
