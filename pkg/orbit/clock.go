package orbit

import "math"

// Clock is the animation time model owned by a renderer. It holds the
// current true anomaly and advances it in fixed steps. Clock is a value type:
// each method returns the updated clock.
type Clock struct {
	Anomaly float64
	Step    float64
	Start   float64
	Params  Params
	Paused  bool
}

// NewClock creates a clock starting at the given anomaly
func NewClock(p Params, start, step float64) Clock {
	return Clock{
		Anomaly: start,
		Step:    step,
		Start:   start,
		Params:  p,
	}
}

// Tick advances the clock unless it is paused
func (c Clock) Tick() Clock {
	if c.Paused {
		return c
	}
	return c.Advance()
}

// Advance moves the anomaly forward one step. Bound orbits wrap around; a
// hyperbolic flyby restarts from its start anomaly once the body leaves the
// physical branch.
func (c Clock) Advance() Clock {
	return c.Set(c.Anomaly + c.Step)
}

// Rewind moves the anomaly back one step
func (c Clock) Rewind() Clock {
	return c.Set(c.Anomaly - c.Step)
}

// Set places the clock at an externally chosen anomaly, as a slider does
func (c Clock) Set(theta float64) Clock {
	if !c.Params.Hyperbolic() {
		c.Anomaly = wrap(theta)
		return c
	}

	limit := c.Params.AnomalyLimit()
	switch {
	case theta >= limit:
		c.Anomaly = c.Start
	case theta <= -limit:
		c.Anomaly = -limit + c.Step
	default:
		c.Anomaly = theta
	}
	return c
}

// TogglePause flips the paused state
func (c Clock) TogglePause() Clock {
	c.Paused = !c.Paused
	return c
}

// Position returns the scaled position for the current anomaly
func (c Clock) Position(scaleFactor float64) Point {
	return c.Params.At(c.Anomaly, scaleFactor)
}

// wrap normalizes an angle to (-Pi, Pi]
func wrap(theta float64) float64 {
	theta = math.Mod(theta+math.Pi, 2*math.Pi)
	if theta <= 0 {
		theta += 2 * math.Pi
	}
	return theta - math.Pi
}
