// Package ramp animates integer levels across frames, used for PWM-style
// brightness fades in the demo screens.
package ramp

import "eecsim-go/x/mathx"

// Fader moves a level linearly toward a target. It is driven by the
// cooperative frame loop: call Tick once per frame and apply the level.
type Fader struct {
	from, to uint16
	top      uint16
	frames   int
	elapsed  int
	active   bool
}

// Start begins a fade from cur to target over the given number of frames.
// frames<=0 snaps to the target on the next Tick.
func (f *Fader) Start(cur, target, top uint16, frames int) {
	f.from = mathx.Min(cur, top)
	f.to = mathx.Min(target, top)
	f.top = top
	f.frames = frames
	f.elapsed = 0
	f.active = true
}

// Active reports whether a fade is in progress.
func (f *Fader) Active() bool { return f.active }

// Tick advances one frame and returns the level to apply, never above
// the top passed to Start. ok is false when no fade is running.
func (f *Fader) Tick() (level uint16, ok bool) {
	if !f.active {
		return 0, false
	}
	f.elapsed++
	if f.frames <= 0 || f.elapsed >= f.frames {
		f.active = false
		return f.to, true
	}
	t := uint16(uint32(f.elapsed) * 65535 / uint32(f.frames))
	return mathx.Min(mathx.LerpU16(f.from, f.to, t), f.top), true
}
