package utils

import "time"

// DeltaTimer measures the time between consecutive frames.
type DeltaTimer struct {
	time.Time

	// Max caps a single step so that a stalled frame (window drag, debugger)
	// does not move the simulation in one big jump. Zero means no cap.
	Max time.Duration
}

func (d *DeltaTimer) Next() time.Duration {
	// acquire timestamp exactly once to ensure we're not accumulating error
	now := time.Now()

	defer d.Set(now)
	if d.IsZero() {
		return 0
	}
	dt := now.Sub(d.Time)
	if d.Max > 0 && dt > d.Max {
		return d.Max
	}
	return dt
}

// NextSeconds is Next as float seconds, the unit the simulation steps in.
func (d *DeltaTimer) NextSeconds() float32 {
	return float32(d.Next().Seconds())
}

func (d *DeltaTimer) Set(t time.Time) {
	d.Time = t
}
