package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWall(t *testing.T) {
	current := time.Unix(1000, 0)
	w := &Wall{now: func() time.Time { return current }}
	w.Reset()

	assert.Equal(t, uint64(0), w.ElapsedMs())
	assert.Equal(t, 0.0, w.DeltaSec())

	current = current.Add(250 * time.Millisecond)
	d := w.Tick()
	assert.Equal(t, 250*time.Millisecond, d)
	assert.Equal(t, uint64(250), w.ElapsedMs())
	assert.InDelta(t, 0.25, w.ElapsedSec(), 1e-9)
	assert.InDelta(t, 0.25, w.DeltaSec(), 1e-9)

	t.Run("time going backwards yields zero delta", func(t *testing.T) {
		current = current.Add(-time.Second)
		w.Tick()
		assert.Equal(t, 0.0, w.DeltaSec())
	})

	t.Run("reset restarts at zero", func(t *testing.T) {
		w.Reset()
		assert.Equal(t, uint64(0), w.ElapsedMs())
		assert.Equal(t, 0.0, w.DeltaSec())
	})
}

func TestManual(t *testing.T) {
	m := NewManual(0)
	m.Advance(16 * time.Millisecond)
	m.Advance(16 * time.Millisecond)
	assert.Equal(t, uint64(32), m.ElapsedMs())
	assert.InDelta(t, 0.016, m.DeltaSec(), 1e-9)

	m.SetMs(1500, 10)
	assert.Equal(t, uint64(1500), m.ElapsedMs())
	assert.InDelta(t, 1.5, m.ElapsedSec(), 1e-9)
	assert.InDelta(t, 0.01, m.DeltaSec(), 1e-9)

	m.Advance(-time.Second)
	assert.Equal(t, uint64(1500), m.ElapsedMs())
	assert.Equal(t, 0.0, m.DeltaSec())

	m.Reset()
	assert.Equal(t, uint64(0), m.ElapsedMs())
}
