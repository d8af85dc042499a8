package scene

import (
	"github.com/plus3/capypet/behavior"
	"github.com/plus3/capypet/ecs"
	"github.com/plus3/capypet/sprite"
)

// BehaviorSystem advances every pet's state machine.
type BehaviorSystem struct {
	Random ecs.Singleton[Random]
	Pets   ecs.Query[struct{ *behavior.Machine }]
}

func (s *BehaviorSystem) Execute(frame *ecs.UpdateFrame) {
	rng := s.Random.Get()
	for pet := range s.Pets.Values() {
		pet.Machine.Update(frame.DeltaTime, rng)
	}
}

// AnimationSystem keeps each pet's animators and quad in step with its
// behavior state.
type AnimationSystem struct {
	Pets ecs.Query[struct {
		*behavior.Machine
		*sprite.Set
		*sprite.Instance
	}]
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	for pet := range s.Pets.Values() {
		animate(pet.Machine, pet.Set, pet.Instance, frame.DeltaTime)
	}
}

func animate(m *behavior.Machine, set *sprite.Set, inst *sprite.Instance, dt float64) {
	clip, playback := m.Clip()

	dirty := set.Active != clip
	set.Active = clip

	anim := set.Current()
	anim.SetPlayback(playback)
	if m.JustEntered && m.State == behavior.Sit {
		anim.Restart()
		dirty = true
	}

	if anim.Step(dt) {
		dirty = true
	}
	if anim.SetFlip(m.Flipped) {
		dirty = true
	}
	if dirty {
		inst.Sync(anim.Rect())
	}

	// the quad is centred, so lift it by half its height to stand on y
	inst.X = m.Position.X
	inst.Y = m.Position.Y + inst.Height/2
}

// StatsSystem records state occupancy and transitions.
type StatsSystem struct {
	Stats ecs.Singleton[Stats]
	Pets  ecs.Query[struct{ *behavior.Machine }]
}

func (s *StatsSystem) Execute(frame *ecs.UpdateFrame) {
	stats := s.Stats.Get()
	stats.Ticks++
	stats.Elapsed += frame.DeltaTime
	stats.Population = s.Pets.Len()

	for pet := range s.Pets.Values() {
		m := pet.Machine
		stats.Occupancy[m.State] += frame.DeltaTime
		if m.JustEntered {
			stats.Entered[m.State]++
			stats.Transitions[m.Previous][m.State]++
		}
	}
}

// RenderSystem draws every pet in entity order.
type RenderSystem struct {
	Graphics ecs.Singleton[Graphics]
	Viewport ecs.Singleton[Viewport]
	Pets     ecs.Query[struct {
		*sprite.Set
		*sprite.Instance
		*Pet
	}]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	graphics := s.Graphics.Get()
	if graphics == nil || graphics.Renderer == nil {
		return
	}
	r := graphics.Renderer
	viewport := s.Viewport.Get()

	for pet := range s.Pets.Values() {
		vertices := pet.Instance.Vertices(viewport.Project)

		r.BindTexture(pet.Set.Active)
		r.SetShaderUniform(TintUniform, pet.Pet.Tint)
		r.UploadQuadVertices(vertices[:])
		r.DrawIndexed(len(sprite.Quad.Indices))
	}
}
