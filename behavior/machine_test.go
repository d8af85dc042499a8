package behavior_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/plus3/capypet/behavior"
	"github.com/plus3/capypet/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns the same draw every time.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// seqRand returns its draws in order and then repeats the last one.
type seqRand struct {
	draws []float64
	i     int
}

func (s *seqRand) Float64() float64 {
	d := s.draws[min(s.i, len(s.draws)-1)]
	s.i++
	return d
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestIdleToWalkScenario(t *testing.T) {
	rng := fixedRand(0.5)
	m := behavior.New(behavior.DefaultParams(), behavior.Vec2{X: 2}, behavior.Idle, rng)
	m.Timer = 10

	changed := m.Update(1.0/60, rng)

	require.True(t, changed)
	assert.Equal(t, behavior.Walk, m.State)
	assert.Zero(t, m.Timer)
	assert.GreaterOrEqual(t, m.Target.X, -5.0)
	assert.LessOrEqual(t, m.Target.X, 5.0)
	assert.Zero(t, m.Target.Y)
	assert.Equal(t, 0.0, m.Target.X, "a draw of 0.5 lands in the middle of [-5,5]")
}

func TestIdleWaitsForItsDuration(t *testing.T) {
	rng := fixedRand(0.5)
	m := behavior.New(behavior.DefaultParams(), behavior.Vec2{}, behavior.Idle, rng)
	assert.Equal(t, 4.5, m.IdleFor)

	for i := 0; i < 4; i++ {
		assert.False(t, m.Update(1, rng))
	}
	assert.Equal(t, behavior.Idle, m.State)
	assert.True(t, m.Update(1, rng))
}

func TestIdleExitDistribution(t *testing.T) {
	rng := seeded()
	counts := map[behavior.State]int{}

	const trials = 10000
	for i := 0; i < trials; i++ {
		m := behavior.New(behavior.DefaultParams(), behavior.Vec2{}, behavior.Idle, rng)
		m.Timer = 100
		m.Update(0, rng)
		counts[m.State]++
	}

	want := map[behavior.State]float64{
		behavior.Idle: 0.2,
		behavior.Walk: 0.4,
		behavior.Run:  0.2,
		behavior.Sit:  0.2,
	}
	for state, p := range want {
		assert.InDelta(t, p, float64(counts[state])/trials, 0.02, "state %s", state)
	}
	assert.Zero(t, counts[behavior.GetUp])
}

func TestIdleExitThresholds(t *testing.T) {
	tests := []struct {
		draw float64
		want behavior.State
	}{
		{0.0, behavior.Idle},
		{0.19, behavior.Idle},
		{0.2, behavior.Walk},
		{0.59, behavior.Walk},
		{0.6, behavior.Run},
		{0.79, behavior.Run},
		{0.8, behavior.Sit},
		{0.99, behavior.Sit},
	}
	for _, tt := range tests {
		m := behavior.New(behavior.DefaultParams(), behavior.Vec2{}, behavior.Idle, fixedRand(0))
		m.Timer = 100
		m.Update(0, &seqRand{draws: []float64{tt.draw, 0.5, 0.5}})
		assert.Equal(t, tt.want, m.State, "draw %v", tt.draw)
	}
}

func TestWalkMovesTowardTarget(t *testing.T) {
	p := behavior.DefaultParams()
	m := behavior.New(p, behavior.Vec2{}, behavior.Idle, fixedRand(0.5))
	m.Force(behavior.Walk, fixedRand(0.9)) // target x = 4

	require.Equal(t, 4.0, m.Target.X)
	m.Update(1, fixedRand(0))

	assert.InDelta(t, 0.5, m.Position.X, 1e-9, "walk speed is half of base speed")
	assert.True(t, m.Flipped, "moving right flips the sprite")

	m.Target = behavior.Vec2{X: -4}
	m.Update(1, fixedRand(0))
	assert.InDelta(t, 0.0, m.Position.X, 1e-9)
	assert.False(t, m.Flipped)
}

func TestRunIsFasterThanWalk(t *testing.T) {
	m := behavior.New(behavior.DefaultParams(), behavior.Vec2{}, behavior.Run, fixedRand(1))
	m.Target = behavior.Vec2{X: 5}
	m.Update(1, fixedRand(0))
	assert.InDelta(t, 1.0, m.Position.X, 1e-9)
}

func TestMoveNeverOvershoots(t *testing.T) {
	m := behavior.New(behavior.DefaultParams(), behavior.Vec2{}, behavior.Run, fixedRand(1))
	m.Target = behavior.Vec2{X: 0.3}
	m.Update(10, fixedRand(0))
	assert.InDelta(t, 0.3, m.Position.X, 1e-9)
	assert.Equal(t, behavior.Run, m.State)
}

func TestArrivalPicksUniformly(t *testing.T) {
	tests := []struct {
		draw float64
		want behavior.State
	}{
		{0.1, behavior.Walk},
		{0.3, behavior.Run},
		{0.6, behavior.Idle},
		{0.9, behavior.Sit},
	}
	for _, tt := range tests {
		m := behavior.New(behavior.DefaultParams(), behavior.Vec2{X: 1}, behavior.Walk, fixedRand(0))
		m.Target = behavior.Vec2{X: 1.05}
		m.Timer = 2

		assert.True(t, m.Update(0.01, fixedRand(tt.draw)))
		assert.Equal(t, tt.want, m.State)
		assert.Zero(t, m.Timer)
	}
}

func TestTargetEqualsPositionNeverProducesNaN(t *testing.T) {
	for _, state := range []behavior.State{behavior.Walk, behavior.Run} {
		p := behavior.DefaultParams()
		m := behavior.New(p, behavior.Vec2{X: 1.5}, state, fixedRand(0))
		m.Target = m.Position
		m.Flipped = true

		m.Update(0.016, fixedRand(0.1))
		assert.False(t, math.IsNaN(m.Position.X))
		assert.False(t, math.IsNaN(m.Position.Y))

		// with no arrival radius the guard is what keeps the position sane
		m = behavior.New(p, behavior.Vec2{X: 1.5}, state, fixedRand(0))
		m.Params.ArriveRadius = 0
		m.Target = m.Position
		m.Flipped = true

		m.Update(0.016, fixedRand(0.1))
		assert.Equal(t, 1.5, m.Position.X)
		assert.Zero(t, m.Position.Y)
		assert.True(t, m.Flipped, "facing is kept when there is no direction")
		assert.Equal(t, state, m.State)
	}
}

func TestSitThenGetUpThenIdle(t *testing.T) {
	rng := fixedRand(0.5)
	m := behavior.New(behavior.DefaultParams(), behavior.Vec2{}, behavior.Sit, rng)

	clip, playback := m.Clip()
	assert.Equal(t, sprite.ClipSit, clip)
	assert.Equal(t, sprite.ForwardOnce, playback)

	for i := 0; i < 29; i++ {
		m.Update(0.1, rng)
	}
	assert.Equal(t, behavior.Sit, m.State)
	m.Update(0.2, rng)
	require.Equal(t, behavior.GetUp, m.State)
	assert.Equal(t, behavior.Sit, m.Previous)

	clip, playback = m.Clip()
	assert.Equal(t, sprite.ClipSit, clip)
	assert.Equal(t, sprite.ReverseOnce, playback)

	m.Update(0.25, rng)
	assert.Equal(t, behavior.GetUp, m.State)
	m.Update(0.25, rng)
	assert.Equal(t, behavior.Idle, m.State)
	assert.Equal(t, behavior.GetUp, m.Previous)
	assert.Zero(t, m.Timer)
}

func TestSitHoldsThroughItsFullDuration(t *testing.T) {
	rng := fixedRand(0.5)
	m := behavior.New(behavior.DefaultParams(), behavior.Vec2{}, behavior.Sit, rng)

	assert.False(t, m.Update(3.0, rng))
	assert.Equal(t, behavior.Sit, m.State)
	assert.True(t, m.Update(0.01, rng))
	assert.Equal(t, behavior.GetUp, m.State)

	assert.True(t, m.Update(0.5, rng), "get up ends once its timer reaches the duration")
	assert.Equal(t, behavior.Idle, m.State)
}

func TestClipFor(t *testing.T) {
	tests := []struct {
		state    behavior.State
		clip     sprite.Clip
		playback sprite.Playback
	}{
		{behavior.Idle, sprite.ClipIdle, sprite.Forward},
		{behavior.Walk, sprite.ClipWalk, sprite.Forward},
		{behavior.Run, sprite.ClipRun, sprite.Forward},
		{behavior.Sit, sprite.ClipSit, sprite.ForwardOnce},
		{behavior.GetUp, sprite.ClipSit, sprite.ReverseOnce},
	}
	for _, tt := range tests {
		clip, playback := behavior.ClipFor(tt.state)
		assert.Equal(t, tt.clip, clip, tt.state.String())
		assert.Equal(t, tt.playback, playback, tt.state.String())
	}
}

func TestSpawnIsReproducible(t *testing.T) {
	p := behavior.DefaultParams()
	p.SpeedJitter = 0.2

	a := behavior.Spawn(p, rand.New(rand.NewPCG(7, 7)))
	b := behavior.Spawn(p, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)

	rng := seeded()
	for i := 0; i < 200; i++ {
		m := behavior.Spawn(p, rng)
		assert.GreaterOrEqual(t, m.Position.X, p.MinX)
		assert.LessOrEqual(t, m.Position.X, p.MaxX)
		assert.NotEqual(t, behavior.GetUp, m.State)
		assert.InDelta(t, p.Speed, m.Speed, p.Speed*p.SpeedJitter+1e-9)
		assert.True(t, m.JustEntered)
		assert.Zero(t, m.Transitions)
	}
}

func TestRunsIndefinitely(t *testing.T) {
	rng := seeded()
	m := behavior.Spawn(behavior.DefaultParams(), rng)

	visited := map[behavior.State]bool{}
	for i := 0; i < 60*60*10; i++ {
		m.Update(1.0/60, rng)
		visited[m.State] = true
		require.False(t, math.IsNaN(m.Position.X))
		require.GreaterOrEqual(t, m.Position.X, -5.0)
		require.LessOrEqual(t, m.Position.X, 5.0)
	}
	for s := behavior.State(0); s < behavior.NumStates; s++ {
		assert.True(t, visited[s], "state %s never visited", s)
	}
}

func TestParseState(t *testing.T) {
	s, err := behavior.ParseState("getup")
	require.NoError(t, err)
	assert.Equal(t, behavior.GetUp, s)

	_, err = behavior.ParseState("swim")
	assert.Error(t, err)
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, behavior.DefaultParams().Validate())

	bad := behavior.DefaultParams()
	bad.IdleMax = 1
	assert.Error(t, bad.Validate())

	bad = behavior.DefaultParams()
	bad.ArriveRadius = 0
	assert.Error(t, bad.Validate())

	bad = behavior.DefaultParams()
	bad.Speed = -1
	assert.Error(t, bad.Validate())
}

func TestForceIsReportedByNextUpdate(t *testing.T) {
	rng := fixedRand(0.5)
	m := behavior.New(behavior.DefaultParams(), behavior.Vec2{}, behavior.Idle, rng)

	m.Force(behavior.Sit, rng)
	assert.Equal(t, behavior.Sit, m.State)
	assert.Equal(t, behavior.Idle, m.Previous)

	assert.True(t, m.Update(0.01, rng))
	assert.True(t, m.JustEntered)
	assert.False(t, m.Update(0.01, rng))
	assert.False(t, m.JustEntered)
}
