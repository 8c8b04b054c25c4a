package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockMeasuresInterval(t *testing.T) {
	c := NewClock()
	c.Start()
	time.Sleep(10 * time.Millisecond)
	c.Stop()
	assert.GreaterOrEqual(t, c.ElapsedSeconds(), 0.01)
}

func TestClockStopWithoutStart(t *testing.T) {
	c := NewClock()
	c.Stop()
	assert.Zero(t, c.ElapsedSeconds())
}

func TestClockRestartResetsElapsed(t *testing.T) {
	c := NewClock()
	c.Start()
	time.Sleep(time.Millisecond)
	c.Stop()
	assert.Positive(t, c.ElapsedSeconds())

	c.Start()
	assert.Zero(t, c.ElapsedSeconds())
}
