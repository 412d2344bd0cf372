// Package volume maps fingertip distances to volume percentages and drives
// the system audio mixer through an optional backend.
package volume

import "math"

// Distance range, in pixels, mapped linearly onto 0-100%.
const (
	MinDistance = 20.0
	MaxDistance = 200.0
)

// Hysteresis is the dead-band, in percentage points, inside which a new
// target does not reach the sink.
const Hysteresis = 2

// TargetVolume maps a smoothed distance onto [0,100].
// Distances below MinDistance give 0 and above MaxDistance give 100.
func TargetVolume(distance float64) int {
	d := math.Min(math.Max(distance, MinDistance), MaxDistance)
	pct := (d - MinDistance) / (MaxDistance - MinDistance) * 100
	return clampPercent(int(pct))
}

func clampPercent(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Controller applies target volumes to a Sink with hysteresis.
// It is owned by a single goroutine and is not safe for concurrent use.
type Controller struct {
	sink *Sink
	last int
}

// NewController creates a Controller whose last applied volume starts at the
// sink's current level.
func NewController(sink *Sink) *Controller {
	return &Controller{
		sink: sink,
		last: sink.Get(),
	}
}

// Apply pushes target to the sink when it differs from the last applied
// volume by more than Hysteresis. It returns the volume to report and whether
// the sink was updated.
func (c *Controller) Apply(target int) (int, bool) {
	target = clampPercent(target)

	diff := target - c.last
	if diff < 0 {
		diff = -diff
	}
	if diff <= Hysteresis {
		return c.last, false
	}

	c.sink.Set(target)
	c.last = target
	return c.last, true
}

// Last returns the last applied volume.
func (c *Controller) Last() int {
	return c.last
}
