package engine

import "github.com/plus3/ember/clock"

// System is one step of a tick. Systems run in registration order and may
// keep their own state between ticks.
type System interface {
	Execute(frame *Frame)
}

// Frame is what a system sees during one tick. World edits must go through
// Commands; they are applied after every system has run.
type Frame struct {
	Clock    clock.Clock
	DeltaSec float64
	World    *World
	Commands *Commands
}
