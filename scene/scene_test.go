package scene_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/plus3/capypet/behavior"
	"github.com/plus3/capypet/ecs"
	"github.com/plus3/capypet/scene"
	"github.com/plus3/capypet/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenderer logs every call it receives.
type recordingRenderer struct {
	calls    []string
	vertices [][]sprite.Vertex
	bound    []sprite.Clip
}

func (r *recordingRenderer) BindTexture(clip sprite.Clip) {
	r.calls = append(r.calls, "bind")
	r.bound = append(r.bound, clip)
}

func (r *recordingRenderer) UploadQuadVertices(vertices []sprite.Vertex) {
	r.calls = append(r.calls, "upload")
	r.vertices = append(r.vertices, append([]sprite.Vertex(nil), vertices...))
}

func (r *recordingRenderer) DrawIndexed(count int) {
	r.calls = append(r.calls, fmt.Sprintf("draw %d", count))
}

func (r *recordingRenderer) SetShaderUniform(name string, value any) {
	r.calls = append(r.calls, "uniform "+name)
}

func newScene(t *testing.T, pets int, r scene.Renderer) *scene.Scene {
	t.Helper()
	s := scene.New(scene.Options{
		Settings:  scene.DefaultSettings(8),
		Seed:      7,
		Pets:      pets,
		HalfWidth: 6,
		Renderer:  r,
	})
	s.Resize(600, 200)
	return s
}

func TestRenderCallOrder(t *testing.T) {
	r := &recordingRenderer{}
	s := newScene(t, 2, r)

	s.Tick(1.0 / 60)
	s.Render()

	perPet := []string{"bind", "uniform Tint", "upload", "draw 6"}
	assert.Equal(t, append(append([]string{}, perPet...), perPet...), r.calls)
	for _, v := range r.vertices {
		assert.Len(t, v, 4)
	}
}

func TestRenderFollowsEntityOrder(t *testing.T) {
	r := &recordingRenderer{}
	s := newScene(t, 5, r)

	var want []sprite.Clip
	for _, pet := range s.Pets() {
		want = append(want, pet.Set.Active)
	}

	s.Render()
	assert.Equal(t, want, r.bound)
}

func TestRenderWithoutRendererIsNoop(t *testing.T) {
	s := newScene(t, 3, nil)
	assert.NotPanics(t, func() {
		s.Tick(0.1)
		s.Render()
	})
}

func TestRenderProjectsQuadOntoGround(t *testing.T) {
	r := &recordingRenderer{}
	s := newScene(t, 1, r)

	for _, pet := range s.Pets() {
		pet.Machine.Position = behavior.Vec2{}
		pet.Machine.Force(behavior.Sit, s.Random())
	}
	s.Tick(0.01)
	s.Render()

	require.Len(t, r.vertices, 1)
	quad := r.vertices[0]
	// 600px across 12 world units is 50px per unit; a 1.2 unit pet is 60px
	assert.InDelta(t, 330, quad[sprite.TopRight].X, 1e-3)
	assert.InDelta(t, 140, quad[sprite.TopRight].Y, 1e-3)
	assert.InDelta(t, 270, quad[sprite.BottomLeft].X, 1e-3)
	assert.InDelta(t, 200, quad[sprite.BottomLeft].Y, 1e-3)
}

func TestTickAnimatesAndFlips(t *testing.T) {
	s := newScene(t, 1, nil)

	var pet scene.PetView
	for _, p := range s.Pets() {
		pet = p
	}
	pet.Set.Active = sprite.ClipSit
	pet.Machine.Position = behavior.Vec2{X: -3}
	pet.Machine.Force(behavior.Walk, s.Random())
	pet.Machine.Target = behavior.Vec2{X: 4}

	rev := pet.Instance.Revision
	s.Tick(0.05)

	assert.Equal(t, sprite.ClipWalk, pet.Set.Active)
	assert.True(t, pet.Machine.Flipped, "walking right mirrors the sheet")
	assert.True(t, pet.Set.Current().Flipped)
	assert.Greater(t, pet.Instance.Revision, rev)
	assert.Greater(t, pet.Instance.UV[sprite.BottomLeft][0], pet.Instance.UV[sprite.BottomRight][0])
	assert.InDelta(t, pet.Machine.Position.X, pet.Instance.X, 1e-9)
	assert.InDelta(t, pet.Instance.Height/2, pet.Instance.Y, 1e-9)

	rev = pet.Instance.Revision
	s.Tick(0.01)
	assert.Equal(t, rev, pet.Instance.Revision, "no frame or flip change, no rewrite")
}

func TestSitRestartsAndGetUpReverses(t *testing.T) {
	s := newScene(t, 1, nil)

	var pet scene.PetView
	for _, p := range s.Pets() {
		pet = p
	}
	sit := &pet.Set.Animators[sprite.ClipSit]
	sit.Frame = 5

	pet.Machine.Force(behavior.Sit, s.Random())
	s.Tick(0.01)
	assert.Equal(t, sprite.ClipSit, pet.Set.Active)
	assert.Equal(t, 0, sit.Frame, "entering sit restarts the clip")

	for i := 0; i < 250; i++ {
		s.Tick(0.01)
	}
	require.Equal(t, behavior.Sit, pet.Machine.State)
	assert.Equal(t, 7, sit.Frame, "sit holds its last frame")
	assert.True(t, sit.IsFinished())

	for i := 0; i < 100 && pet.Machine.State == behavior.Sit; i++ {
		s.Tick(0.01)
	}
	require.Equal(t, behavior.GetUp, pet.Machine.State)
	assert.Equal(t, sprite.ReverseOnce, sit.Playback)
	assert.GreaterOrEqual(t, sit.Frame, 6, "get up reverses from the current frame")

	for i := 0; i < 100 && pet.Machine.State == behavior.GetUp; i++ {
		s.Tick(0.01)
	}
	assert.Equal(t, behavior.Idle, pet.Machine.State)
	assert.Less(t, sit.Frame, 7)
}

func TestStatsSystem(t *testing.T) {
	s := newScene(t, 4, nil)

	for i := 0; i < 600; i++ {
		s.Tick(0.1)
	}

	stats := s.Stats()
	assert.Equal(t, uint64(600), stats.Ticks)
	assert.InDelta(t, 60, stats.Elapsed, 1e-6)
	assert.Equal(t, 4, stats.Population)

	var occupied float64
	for _, v := range stats.Occupancy {
		occupied += v
	}
	assert.InDelta(t, 240, occupied, 1e-6, "four pets for sixty seconds")

	var fromTo uint64
	for from := range stats.Transitions {
		for to := range stats.Transitions[from] {
			fromTo += stats.Transitions[from][to]
		}
	}
	assert.Equal(t, stats.TotalTransitions(), fromTo)
	assert.Positive(t, stats.TotalTransitions())
	assert.Zero(t, stats.Transitions[behavior.Walk][behavior.GetUp], "get up only follows sit")
}

func TestDeterministicForSeed(t *testing.T) {
	run := func() []behavior.Vec2 {
		s := newScene(t, 3, nil)
		for i := 0; i < 1000; i++ {
			s.Tick(1.0 / 60)
		}
		var out []behavior.Vec2
		for _, pet := range s.Pets() {
			out = append(out, pet.Machine.Position)
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestNoNaNOverLongRun(t *testing.T) {
	s := newScene(t, 6, nil)
	for i := 0; i < 20000; i++ {
		s.Tick(1.0 / 30)
	}
	for _, pet := range s.Pets() {
		assert.False(t, math.IsNaN(pet.Machine.Position.X))
		assert.GreaterOrEqual(t, pet.Machine.Position.X, -5.0)
		assert.LessOrEqual(t, pet.Machine.Position.X, 5.0)
		assert.Less(t, pet.Set.Current().Frame, pet.Set.Current().FrameCount)
	}
}

func TestSpawnAndTeardown(t *testing.T) {
	s := newScene(t, 3, nil)
	ids := s.Spawn(2)
	assert.Len(t, ids, 2)

	var names []string
	for _, pet := range s.Pets() {
		names = append(names, pet.Pet.Name)
	}
	assert.Equal(t, []string{"Kapi", "Mochi", "Yuzu", "Pancake", "Bean"}, names)

	s.Teardown()
	assert.Equal(t, 0, s.Storage.Len())
	assert.False(t, s.Storage.Alive(ids[0]))
}

func TestRespawnKeepsSpawnOrder(t *testing.T) {
	r := &recordingRenderer{}
	s := newScene(t, 3, r)
	s.Teardown()
	ids := s.Spawn(3)

	var order []ecs.EntityId
	var names []string
	for id, pet := range s.Pets() {
		order = append(order, id)
		names = append(names, pet.Pet.Name)
	}
	assert.Equal(t, ids, order)
	assert.Equal(t, []string{"Kapi", "Mochi", "Yuzu"}, names)
}

func TestSpawnSeedsComponents(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scene.RegisterComponents(storage.Registry())

	settings := scene.DefaultSettings(6)
	rng := scene.NewRandom(3)
	ids := scene.Spawn(storage, settings, rng, 10)
	require.Len(t, ids, 10)

	for _, id := range ids {
		m := ecs.ReadComponent[behavior.Machine](storage, id)
		set := ecs.ReadComponent[sprite.Set](storage, id)
		inst := ecs.ReadComponent[sprite.Instance](storage, id)
		require.NotNil(t, m)
		require.NotNil(t, set)
		require.NotNil(t, inst)

		assert.NotEqual(t, behavior.GetUp, m.State)
		clip, _ := m.Clip()
		assert.Equal(t, clip, set.Active)
		for _, a := range set.Animators {
			assert.Equal(t, 6, a.FrameCount)
			assert.Equal(t, m.Flipped, a.Flipped)
		}
		assert.Equal(t, settings.PetSize, inst.Width)
		assert.Equal(t, m.Position.X, inst.X)
		assert.Equal(t, m.Position.Y+settings.PetSize/2, inst.Y)
	}
}

func TestPetName(t *testing.T) {
	assert.Equal(t, "Kapi", scene.PetName(0))
	assert.Equal(t, "Miso", scene.PetName(7))
	assert.Equal(t, "Kapi 2", scene.PetName(8))
}
