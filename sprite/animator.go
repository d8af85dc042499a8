package sprite

import "math"

// Playback selects the direction and wrapping of an Animator.
type Playback struct {
	Reverse bool
	Loop    bool
}

var (
	Forward     = Playback{Loop: true}
	ForwardOnce = Playback{}
	ReverseOnce = Playback{Reverse: true}
)

// Animator steps through the frames of one sprite sheet.
type Animator struct {
	FrameCount    int
	FrameDuration float64
	Frame         int
	Elapsed       float64
	Flipped       bool
	Playback      Playback

	finished bool
}

// NewAnimator returns a looping forward animator on frame 0.
func NewAnimator(frameCount int, frameDuration float64) Animator {
	if frameCount < 1 {
		frameCount = 1
	}
	return Animator{
		FrameCount:    frameCount,
		FrameDuration: frameDuration,
		Playback:      Forward,
	}
}

func (a *Animator) terminal() int {
	if a.Playback.Reverse {
		return 0
	}
	return a.FrameCount - 1
}

// Step advances the animation by dt seconds. Overrun beyond a whole frame
// is carried into the next call. It reports whether the frame changed.
func (a *Animator) Step(dt float64) bool {
	if a.FrameDuration <= 0 {
		return false
	}

	a.Elapsed += dt
	start := a.Frame

	// whole cycles of a looping clip land back on the same frame
	if cycle := float64(a.FrameCount) * a.FrameDuration; a.Playback.Loop && a.Elapsed >= cycle {
		a.Elapsed = math.Mod(a.Elapsed, cycle)
	}

	for a.Elapsed >= a.FrameDuration {
		if !a.Playback.Loop && a.Frame == a.terminal() {
			a.finished = true
			a.Elapsed = math.Mod(a.Elapsed, a.FrameDuration)
			break
		}
		a.Elapsed -= a.FrameDuration

		if a.Playback.Reverse {
			a.Frame = (a.Frame - 1 + a.FrameCount) % a.FrameCount
		} else {
			a.Frame = (a.Frame + 1) % a.FrameCount
		}
	}

	return a.Frame != start
}

// IsFinished reports whether a non-looping animation has held its last
// frame for at least one frame duration.
func (a *Animator) IsFinished() bool {
	return !a.Playback.Loop && a.finished && a.Frame == a.terminal()
}

// SetFlip sets horizontal mirroring and reports whether it changed.
func (a *Animator) SetFlip(flipped bool) bool {
	if a.Flipped == flipped {
		return false
	}
	a.Flipped = flipped
	return true
}

// SetPlayback changes direction and wrapping without moving the frame.
func (a *Animator) SetPlayback(p Playback) {
	if a.Playback != p {
		a.finished = false
	}
	a.Playback = p
}

// Restart jumps to the first frame of the current playback.
func (a *Animator) Restart() {
	a.Elapsed = 0
	a.finished = false
	if a.Playback.Reverse {
		a.Frame = a.FrameCount - 1
	} else {
		a.Frame = 0
	}
}

// Rect returns the texture rectangle of the current frame.
func (a *Animator) Rect() Rect {
	return FrameRect(a.Frame, a.FrameCount, a.Flipped)
}
