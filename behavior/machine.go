// Package behavior drives a capybara's randomized behavior: idling,
// wandering to random points, running, sitting down and getting back up.
package behavior

import "github.com/plus3/capypet/sprite"

// Rand is the random source a Machine draws from. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// Cumulative thresholds for the state picked when an idle spell ends.
var idleExits = [...]struct {
	below float64
	state State
}{
	{0.2, Idle},
	{0.6, Walk},
	{0.8, Run},
	{1.0, Sit},
}

// States picked uniformly on reaching a walk or run target.
var arrivalExits = [...]State{Walk, Run, Idle, Sit}

// Machine is the behavior state of one capybara.
type Machine struct {
	Params Params

	State    State
	Previous State
	Timer    float64
	IdleFor  float64

	Position Vec2
	Target   Vec2
	Speed    float64
	Flipped  bool

	// JustEntered is set by the update that entered State, or by the
	// first update after Force.
	JustEntered bool
	Transitions uint64

	forced bool
}

// New returns a machine at position in state, with the entry effects of
// state applied.
func New(params Params, position Vec2, state State, rng Rand) Machine {
	m := Machine{
		Params:   params,
		Position: position,
		Target:   position,
		Speed:    params.Speed,
	}
	m.Force(state, rng)
	m.Transitions = 0
	m.forced = false
	return m
}

// Spawn returns a machine with a random position, starting state, speed and
// timer.
func Spawn(params Params, rng Rand) Machine {
	x := params.MinX + rng.Float64()*(params.MaxX-params.MinX)
	state := State(min(int(rng.Float64()*float64(Sit+1)), int(Sit)))

	m := New(params, Vec2{X: x}, state, rng)
	m.Speed = params.Speed * (1 + params.SpeedJitter*(2*rng.Float64()-1))

	switch state {
	case Idle:
		m.Timer = rng.Float64() * m.IdleFor
	case Sit:
		m.Timer = rng.Float64() * params.SitDuration
	}
	return m
}

// Update advances the machine by dt seconds and reports whether a state
// was entered since the previous update.
func (m *Machine) Update(dt float64, rng Rand) bool {
	m.JustEntered = m.forced
	m.forced = false
	m.Timer += dt

	switch m.State {
	case Idle:
		if m.Timer > m.IdleFor {
			next := pickIdleExit(rng.Float64())
			m.Target = m.randomTarget(rng)
			m.enter(next, rng)
		}
	case Walk, Run:
		m.move(dt, rng)
	case Sit:
		if m.Timer > m.Params.SitDuration {
			m.enter(GetUp, rng)
		}
	case GetUp:
		if m.Timer >= m.Params.GetUpDuration {
			m.enter(Idle, rng)
		}
	}

	return m.JustEntered
}

func (m *Machine) move(dt float64, rng Rand) {
	offset := m.Target.Sub(m.Position)
	dist := offset.Len()

	if dist < m.Params.ArriveRadius {
		idx := min(int(rng.Float64()*float64(len(arrivalExits))), len(arrivalExits)-1)
		next := arrivalExits[idx]
		if next.Moving() {
			m.Target = m.randomTarget(rng)
		}
		m.enter(next, rng)
		return
	}

	dir, ok := offset.Normalize()
	if !ok {
		return
	}

	step := min(m.Speed*m.Params.factor(m.State)*dt, dist)
	m.Position = m.Position.Add(dir.Scale(step))
	m.Flipped = dir.X > 0
}

// Force puts the machine into state immediately, as if a transition rule
// had fired. Moving states get a fresh target.
func (m *Machine) Force(state State, rng Rand) {
	if state.Moving() {
		m.Target = m.randomTarget(rng)
	}
	m.enter(state, rng)
	m.forced = true
}

func (m *Machine) enter(state State, rng Rand) {
	m.Previous = m.State
	m.State = state
	m.Timer = 0
	m.JustEntered = true
	m.Transitions++

	if state == Idle {
		m.IdleFor = m.Params.IdleMin + rng.Float64()*(m.Params.IdleMax-m.Params.IdleMin)
	}
}

func (m *Machine) randomTarget(rng Rand) Vec2 {
	return Vec2{X: m.Params.MinX + rng.Float64()*(m.Params.MaxX-m.Params.MinX)}
}

func pickIdleExit(r float64) State {
	for _, exit := range idleExits {
		if r < exit.below {
			return exit.state
		}
	}
	return Sit
}

// Clip returns the animation the current state plays and how it plays it.
// GetUp is the sit animation run backwards.
func (m *Machine) Clip() (sprite.Clip, sprite.Playback) {
	return ClipFor(m.State)
}

// ClipFor maps a state to its animation.
func ClipFor(s State) (sprite.Clip, sprite.Playback) {
	switch s {
	case Walk:
		return sprite.ClipWalk, sprite.Forward
	case Run:
		return sprite.ClipRun, sprite.Forward
	case Sit:
		return sprite.ClipSit, sprite.ForwardOnce
	case GetUp:
		return sprite.ClipSit, sprite.ReverseOnce
	default:
		return sprite.ClipIdle, sprite.Forward
	}
}
