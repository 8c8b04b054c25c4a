package core

import "time"

// Clock is a restartable stopwatch. The engine keeps one on the
// producer side to time texture imports.
type Clock struct {
	startTime time.Time
	elapsed   time.Duration
}

func NewClock() *Clock {
	return &Clock{}
}

// Start begins a new measurement. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = time.Now()
	c.elapsed = 0
}

// Stop freezes elapsed time. Has no effect on non-started clocks.
func (c *Clock) Stop() {
	if !c.startTime.IsZero() {
		c.elapsed = time.Since(c.startTime)
		c.startTime = time.Time{}
	}
}

// ElapsedSeconds reports the last measured interval in seconds.
func (c *Clock) ElapsedSeconds() float64 {
	return c.elapsed.Seconds()
}
