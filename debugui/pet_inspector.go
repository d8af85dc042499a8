package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/capypet/behavior"
	"github.com/plus3/capypet/ecs"
	"github.com/plus3/capypet/scene"
)

// PetInspector lists pets, shows the selected one in detail and can force
// it into any behavior state.
type PetInspector struct {
	scene      *scene.Scene
	selected   ecs.EntityId
	filterText string
}

func NewPetInspector(s *scene.Scene) *PetInspector {
	return &PetInspector{scene: s}
}

func (pi *PetInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 320), imgui.CondOnce)

	if !imgui.BeginV("Pets", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Filter by name or state...", &pi.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		pi.filterText = ""
	}

	pi.renderTable()
	imgui.Separator()
	pi.renderSelected()

	imgui.End()
}

func (pi *PetInspector) matches(pet scene.PetView) bool {
	if pi.filterText == "" {
		return true
	}
	filter := strings.ToLower(pi.filterText)
	return strings.Contains(strings.ToLower(pet.Pet.Name), filter) ||
		strings.Contains(strings.ToLower(pet.Machine.State.String()), filter)
}

func (pi *PetInspector) renderTable() {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("PetTable", 5, tableFlags, imgui.NewVec2(0, 150), 0) {
		return
	}

	imgui.TableSetupColumn("Name")
	imgui.TableSetupColumn("State")
	imgui.TableSetupColumn("Clip")
	imgui.TableSetupColumn("X")
	imgui.TableSetupColumn("Timer")
	imgui.TableHeadersRow()

	for id, pet := range pi.scene.Pets() {
		if !pi.matches(pet) {
			continue
		}
		anim := pet.Set.Current()

		imgui.TableNextRow()
		imgui.TableNextColumn()
		if imgui.SelectableBoolV(fmt.Sprintf("%s##%d", pet.Pet.Name, id), pi.selected == id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			pi.selected = id
		}
		imgui.TableNextColumn()
		imgui.Text(pet.Machine.State.String())
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%s %d/%d", pet.Set.Active, anim.Frame+1, anim.FrameCount))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.2f", pet.Machine.Position.X))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.2f", pet.Machine.Timer))
	}

	imgui.EndTable()
}

func (pi *PetInspector) renderSelected() {
	if pi.selected == 0 || !pi.scene.Storage.Alive(pi.selected) {
		imgui.Text("No pet selected")
		return
	}

	m := ecs.ReadComponent[behavior.Machine](pi.scene.Storage, pi.selected)
	pet := ecs.ReadComponent[scene.Pet](pi.scene.Storage, pi.selected)
	if m == nil || pet == nil {
		imgui.Text(fmt.Sprintf("Entity %d is not a pet", pi.selected))
		return
	}

	imgui.Text(fmt.Sprintf("%s: %s for %.1fs (%d transitions)", pet.Name, m.State, m.Timer, m.Transitions))
	if m.State == behavior.Idle {
		imgui.Text(fmt.Sprintf("Leaves idle after %.1fs", m.IdleFor))
	}
	if m.State.Moving() {
		imgui.Text(fmt.Sprintf("Heading to x=%.2f", m.Target.X))
	}

	imgui.Text("Force:")
	for s := behavior.State(0); s < behavior.NumStates; s++ {
		imgui.SameLine()
		if imgui.Button(s.String()) {
			m.Force(s, pi.scene.Random())
		}
	}

	if imgui.TreeNodeStr("Behavior") {
		editStruct("machine", m)
		imgui.TreePop()
	}
	if imgui.TreeNodeStr("Appearance") {
		editStruct("pet", pet)
		imgui.TreePop()
	}
}
