package lifecycle_test

import (
	"testing"

	"github.com/plus3/ember/lifecycle"
	"github.com/stretchr/testify/assert"
)

func TestWindowActiveIsExclusiveAtUntil(t *testing.T) {
	w := lifecycle.Window{FromMs: 100, UntilMs: 200}

	assert.False(t, w.Active(99))
	assert.True(t, w.Active(100))
	assert.True(t, w.Active(199))
	assert.False(t, w.Active(200))
}

func TestWindowDegenerate(t *testing.T) {
	for _, w := range []lifecycle.Window{{FromMs: 5, UntilMs: 5}, {FromMs: 10, UntilMs: 5}} {
		assert.True(t, w.Degenerate())
		for _, cycle := range []uint64{0, 5, 10} {
			_, ok := w.Fraction(cycle)
			assert.False(t, ok)
		}
	}
}

func TestWindowFraction(t *testing.T) {
	w := lifecycle.Window{FromMs: 0, UntilMs: 1000}

	f, ok := w.Fraction(0)
	assert.True(t, ok)
	assert.Equal(t, 0.0, f)

	f, ok = w.Fraction(250)
	assert.True(t, ok)
	assert.Equal(t, 0.25, f)

	prev := -1.0
	for c := uint64(0); c < 1000; c += 7 {
		f, ok := w.Fraction(c)
		assert.True(t, ok)
		assert.GreaterOrEqual(t, f, prev)
		assert.Less(t, f, 1.0)
		prev = f
	}
}

func TestTween(t *testing.T) {
	w := lifecycle.Window{FromMs: 0, UntilMs: 1000}

	v, ok := lifecycle.Tween(w, 500, 0.0, 10.0, lifecycle.Lerp)
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)

	v, ok = lifecycle.Tween(w, 1500, 0.0, 10.0, lifecycle.Lerp)
	assert.False(t, ok)
	assert.Equal(t, 0.0, v)

	type pair struct{ a, b float64 }
	lerpPair := func(x, y pair, f float64) pair {
		return pair{lifecycle.Lerp(x.a, y.a, f), lifecycle.Lerp(x.b, y.b, f)}
	}
	p, ok := lifecycle.Tween(w, 750, pair{0, 4}, pair{4, 0}, lerpPair)
	assert.True(t, ok)
	assert.Equal(t, pair{3, 1}, p)
}
