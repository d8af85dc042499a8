package debugui

import (
	"github.com/plus3/capypet/ecs"
	"github.com/plus3/capypet/scene"
)

// Options configure Install.
type Options struct {
	Visible       bool
	HistoryFrames int
}

// Install registers the overlay components, spawns the debug windows into
// the scene's storage and adds ImguiSystem to the update scheduler. The
// caller brackets Scene.Tick with the backend's BeginFrame and EndFrame.
func Install(s *scene.Scene, opts Options) *ecs.Singleton[Overlay] {
	registry := s.Storage.Registry()
	ecs.RegisterComponent[ImguiItem](registry)

	ecs.NewSingleton[ImguiInputState](s.Storage)
	overlay := ecs.NewSingleton[Overlay](s.Storage, Overlay{Visible: opts.Visible})

	s.Storage.Spawn(ImguiItem{Render: NewPetInspector(s).Render})
	s.Storage.Spawn(ImguiItem{Render: NewSettingsEditor(s).Render})
	s.Storage.Spawn(ImguiItem{Render: NewPerformanceStats(s, opts.HistoryFrames).Render})

	s.Update.Register(&ImguiSystem{})
	return overlay
}
