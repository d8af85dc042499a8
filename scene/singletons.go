package scene

import (
	"math/rand/v2"

	"github.com/plus3/capypet/behavior"
	"github.com/plus3/capypet/config"
	"github.com/plus3/capypet/sprite"
)

// Viewport maps world coordinates onto the window. World x = 0 is the
// horizontal centre, world y = 0 sits Ground pixels above the bottom edge.
type Viewport struct {
	Width, Height int
	HalfWidth     float64
	Ground        float64
	Scale         float64 // pixels per world unit
}

// NewViewport returns a viewport showing [-halfWidth, halfWidth] across the
// window once Resize has been called.
func NewViewport(halfWidth float64) Viewport {
	return Viewport{HalfWidth: halfWidth}
}

// Resize recomputes the projection for a window of width x height pixels.
func (v *Viewport) Resize(width, height int) {
	v.Width, v.Height = width, height
	v.Scale = 0
	if v.HalfWidth > 0 {
		v.Scale = float64(width) / (2 * v.HalfWidth)
	}
}

// Project maps a world point to window pixels, y pointing down.
func (v *Viewport) Project(x, y float64) (float32, float32) {
	sx := float64(v.Width)/2 + x*v.Scale
	sy := float64(v.Height) - v.Ground - y*v.Scale
	return float32(sx), float32(sy)
}

// Random is the scene's one source of randomness.
type Random struct {
	*rand.Rand
	Seed uint64
}

// NewRandom returns a PCG source seeded from seed.
func NewRandom(seed uint64) Random {
	return Random{
		Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Seed: seed,
	}
}

// Graphics holds the renderer pets are drawn with. A nil Renderer draws
// nothing.
type Graphics struct {
	Renderer Renderer
}

// Settings are the tunables pets are spawned and animated with.
type Settings struct {
	Params        behavior.Params
	FrameDuration float64
	FrameCounts   [sprite.NumClips]int
	PetSize       float64
}

// DefaultSettings returns settings for sheets of frameCount frames each.
func DefaultSettings(frameCount int) Settings {
	s := Settings{
		Params:        behavior.DefaultParams(),
		FrameDuration: 0.1,
		PetSize:       1.2,
	}
	for i := range s.FrameCounts {
		s.FrameCounts[i] = frameCount
	}
	return s
}

// Stats accumulates what the pets have been doing.
type Stats struct {
	Ticks       uint64
	Elapsed     float64
	Occupancy   [behavior.NumStates]float64 // pet-seconds spent in each state
	Entered     [behavior.NumStates]uint64
	Transitions [behavior.NumStates][behavior.NumStates]uint64 // [from][to]
	Population  int
}

// OccupancyShare returns the fraction of pet-time spent in state.
func (s *Stats) OccupancyShare(state behavior.State) float64 {
	var total float64
	for _, v := range s.Occupancy {
		total += v
	}
	if total == 0 {
		return 0
	}
	return s.Occupancy[state] / total
}

// TotalTransitions returns the number of state changes recorded.
func (s *Stats) TotalTransitions() uint64 {
	var n uint64
	for _, v := range s.Entered {
		n += v
	}
	return n
}

// SettingsFromConfig builds Settings from a loaded config and the frame
// count of each clip's sheet.
func SettingsFromConfig(cfg *config.Config, frameCounts [sprite.NumClips]int) Settings {
	return Settings{
		Params:        cfg.Behavior,
		FrameDuration: cfg.Sprites.FrameDuration,
		FrameCounts:   frameCounts,
		PetSize:       cfg.Scene.PetSize,
	}
}
