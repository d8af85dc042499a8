package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/capypet/behavior"
	"github.com/plus3/capypet/ecs"
	"github.com/plus3/capypet/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportedFields(t *testing.T) {
	fields := exportedFields(reflect.TypeFor[behavior.Machine]())

	var names []string
	for _, f := range fields {
		names = append(names, f.name)
	}
	assert.Contains(t, names, "State")
	assert.Contains(t, names, "Params")
	assert.NotContains(t, names, "forced")

	again := exportedFields(reflect.TypeFor[behavior.Machine]())
	assert.Equal(t, fields, again)
	assert.Empty(t, exportedFields(reflect.TypeFor[int]()))
}

func TestInstallHiddenOverlay(t *testing.T) {
	s := scene.New(scene.Options{Settings: scene.DefaultSettings(4), Seed: 1, Pets: 2, HalfWidth: 6})
	overlay := Install(s, Options{Visible: false, HistoryFrames: 30})

	require.True(t, overlay.Exists())
	assert.False(t, overlay.Get().Visible)

	items := ecs.NewQuery[struct{ *ImguiItem }](s.Storage)
	items.Execute()
	assert.Equal(t, 3, items.Len())

	// a hidden overlay never touches ImGui, so ticking needs no context
	assert.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			s.Tick(1.0 / 60)
		}
	})

	stats := s.Update.GetStats()
	require.Len(t, stats.Systems, 4)
	assert.Equal(t, "ImguiSystem", stats.Systems[3].Name)

	var input *ImguiInputState
	require.True(t, s.Storage.ReadSingleton(&input))
	assert.False(t, input.WantCaptureMouse)
}

func TestPetInspectorFilter(t *testing.T) {
	s := scene.New(scene.Options{Settings: scene.DefaultSettings(4), Seed: 1, Pets: 1, HalfWidth: 6})
	pi := NewPetInspector(s)

	for _, pet := range s.Pets() {
		assert.True(t, pi.matches(pet))

		pi.filterText = "kap"
		assert.True(t, pi.matches(pet))

		pi.filterText = pet.Machine.State.String()
		assert.True(t, pi.matches(pet))

		pi.filterText = "zebra"
		assert.False(t, pi.matches(pet))
	}
}
