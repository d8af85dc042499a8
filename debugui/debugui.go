// Package debugui draws a Dear ImGui overlay over the pet scene: a pet
// inspector that can force behavior states, live behavior settings and
// performance stats.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/capypet/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Entities carrying one have it called every frame while the overlay is
// visible.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay switches the whole debug UI on and off.
type Overlay struct {
	Visible bool
}

// ImguiSystem defers every ImguiItem's render function to the end of the
// frame and keeps ImguiInputState current.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
	Overlay    ecs.Singleton[Overlay]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	overlay := i.Overlay.Get()
	if overlay == nil || !overlay.Visible {
		state.WantCaptureMouse = false
		state.WantCaptureKeyboard = false
		return
	}

	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
