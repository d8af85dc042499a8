package sprite

import "fmt"

// Clip names one sprite-sheet animation of a character.
type Clip int

const (
	ClipIdle Clip = iota
	ClipWalk
	ClipRun
	ClipSit

	NumClips
)

var clipNames = [NumClips]string{"idle", "walk", "run", "sit"}

func (c Clip) String() string {
	if c < 0 || c >= NumClips {
		return fmt.Sprintf("Clip(%d)", int(c))
	}
	return clipNames[c]
}

// ParseClip is the inverse of Clip.String.
func ParseClip(s string) (Clip, error) {
	for i, name := range clipNames {
		if name == s {
			return Clip(i), nil
		}
	}
	return 0, fmt.Errorf("unknown clip %q", s)
}

// Set holds one Animator per clip and remembers which one is active.
type Set struct {
	Animators [NumClips]Animator
	Active    Clip
}

// Current returns the active animator.
func (s *Set) Current() *Animator {
	return &s.Animators[s.Active]
}
