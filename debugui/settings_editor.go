package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/capypet/ecs"
	"github.com/plus3/capypet/scene"
)

// SettingsEditor edits the behavior parameters new pets spawn with and can
// push them to the pets already running.
type SettingsEditor struct {
	scene    *scene.Scene
	settings *ecs.Singleton[scene.Settings]
	spawnN   int32
	lastErr  string
}

func NewSettingsEditor(s *scene.Scene) *SettingsEditor {
	return &SettingsEditor{
		scene:    s,
		settings: ecs.NewSingleton[scene.Settings](s.Storage),
		spawnN:   1,
	}
}

func (se *SettingsEditor) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(440, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 320), imgui.CondOnce)

	if !imgui.BeginV("Behavior Settings", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	settings := se.settings.Get()
	if editStruct("params", &settings.Params) {
		se.lastErr = ""
		if err := settings.Params.Validate(); err != nil {
			se.lastErr = err.Error()
		}
	}

	if se.lastErr != "" {
		imgui.Text("Invalid: " + se.lastErr)
	} else if imgui.Button("Apply to all pets") {
		for _, pet := range se.scene.Pets() {
			pet.Machine.Params = settings.Params
		}
	}

	imgui.Separator()
	imgui.SetNextItemWidth(100)
	imgui.InputInt("##spawn", &se.spawnN)
	imgui.SameLine()
	if imgui.Button("Spawn") && se.spawnN > 0 && se.lastErr == "" {
		se.scene.Spawn(int(se.spawnN))
	}
	imgui.SameLine()
	if imgui.Button("Remove all") {
		se.scene.Teardown()
	}

	imgui.Text(fmt.Sprintf("Seed: %d", se.scene.Random().Seed))

	imgui.End()
}
