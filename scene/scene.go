package scene

import (
	"iter"

	"github.com/plus3/capypet/ecs"
	"go.uber.org/zap"
)

// Options configure a new Scene.
type Options struct {
	Settings Settings
	Seed     uint64
	Pets     int
	// HalfWidth is the world distance from the window centre to its edges.
	HalfWidth float64
	Renderer  Renderer
	Logger    *zap.Logger
}

// Scene owns the ECS world pets live in plus the two schedulers that
// update and draw it.
type Scene struct {
	Storage *ecs.Storage
	Update  *ecs.Scheduler
	Draw    *ecs.Scheduler

	viewport *ecs.Singleton[Viewport]
	random   *ecs.Singleton[Random]
	settings *ecs.Singleton[Settings]
	stats    *ecs.Singleton[Stats]
	pets     *ecs.View[PetView]
	logger   *zap.Logger
}

// New builds the world, spawns opts.Pets pets and registers the update and
// draw systems.
func New(opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	s := &Scene{
		Storage:  storage,
		Update:   ecs.NewScheduler(storage),
		Draw:     ecs.NewScheduler(storage),
		viewport: ecs.NewSingleton[Viewport](storage, NewViewport(opts.HalfWidth)),
		random:   ecs.NewSingleton[Random](storage, NewRandom(opts.Seed)),
		settings: ecs.NewSingleton[Settings](storage, opts.Settings),
		stats:    ecs.NewSingleton[Stats](storage),
		pets:     ecs.NewView[PetView](storage),
		logger:   logger,
	}
	ecs.NewSingleton[Graphics](storage, Graphics{Renderer: opts.Renderer})

	s.Update.Register(&BehaviorSystem{})
	s.Update.Register(&AnimationSystem{})
	s.Update.Register(&StatsSystem{})
	s.Draw.Register(&RenderSystem{})

	s.Spawn(opts.Pets)
	return s
}

// Tick advances every pet by dt seconds.
func (s *Scene) Tick(dt float64) {
	s.Update.Once(dt)
}

// Render draws every pet.
func (s *Scene) Render() {
	s.Draw.Once(0)
}

// Resize updates the viewport for a window of width x height pixels.
func (s *Scene) Resize(width, height int) {
	vp := s.viewport.Get()
	if vp.Width == width && vp.Height == height {
		return
	}
	vp.Resize(width, height)
	s.logger.Debug("viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float64("scale", vp.Scale))
}

// Spawn adds n more pets.
func (s *Scene) Spawn(n int) []ecs.EntityId {
	ids := Spawn(s.Storage, *s.settings.Get(), s.random.Get(), n)
	if n > 0 {
		s.logger.Info("pets spawned", zap.Int("count", n), zap.Uint64("seed", s.random.Get().Seed))
	}
	return ids
}

// Teardown removes every pet.
func (s *Scene) Teardown() {
	n := Teardown(s.Storage)
	s.logger.Info("pets removed", zap.Int("count", n))
}

// Pets yields every pet in entity order.
func (s *Scene) Pets() iter.Seq2[ecs.EntityId, PetView] {
	return s.pets.Iter()
}

// Viewport returns the live viewport.
func (s *Scene) Viewport() *Viewport {
	return s.viewport.Get()
}

// Random returns the scene's random source.
func (s *Scene) Random() *Random {
	return s.random.Get()
}

// Stats returns the live counters kept by StatsSystem.
func (s *Scene) Stats() *Stats {
	return s.stats.Get()
}
