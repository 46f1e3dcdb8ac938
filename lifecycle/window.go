package lifecycle

import "github.com/plus3/ember/persist"

// Window is the active range [FromMs, UntilMs) of a window-based behaviour,
// expressed in milliseconds relative to the behaviour's cycle.
type Window struct {
	FromMs  uint64 `yaml:"from_ms" json:"from_ms"`
	UntilMs uint64 `yaml:"until_ms" json:"until_ms"`
}

// Degenerate reports whether the window can never be active.
func (w Window) Degenerate() bool {
	return w.UntilMs <= w.FromMs
}

// Active reports whether cycleMs is inside [FromMs, UntilMs).
func (w Window) Active(cycleMs uint64) bool {
	if w.Degenerate() {
		return false
	}
	return cycleMs >= w.FromMs && cycleMs < w.UntilMs
}

// Fraction returns the progress of cycleMs through the window. ok is false when
// the window is inactive at cycleMs, in which case callers skip mutation.
func (w Window) Fraction(cycleMs uint64) (f float64, ok bool) {
	if !w.Active(cycleMs) {
		return 0, false
	}
	return float64(cycleMs-w.FromMs) / float64(w.UntilMs-w.FromMs), true
}

// Tween interpolates from start to end across w at cycleMs using lerp. ok is
// false outside the window; the returned value is then the zero value and must
// not be applied.
//
// Particle and emitter behaviours share this routine so their boundary handling
// cannot drift apart.
func Tween[T any](w Window, cycleMs uint64, start, end T, lerp func(a, b T, f float64) T) (v T, ok bool) {
	f, ok := w.Fraction(cycleMs)
	if !ok {
		return v, false
	}
	return lerp(start, end, f), true
}

// Lerp is the scalar linear interpolation start + f*(end-start).
func Lerp(start, end, f float64) float64 {
	return start + f*(end-start)
}

// Put writes the window bounds into rec as from_ms and until_ms.
func (w Window) Put(rec persist.Record) persist.Record {
	return rec.Set("from_ms", w.FromMs).Set("until_ms", w.UntilMs)
}

// ReadWindow reads the bounds written by Window.Put.
func ReadWindow(rd *persist.Reader) Window {
	return Window{FromMs: rd.Uint("from_ms"), UntilMs: rd.Uint("until_ms")}
}
