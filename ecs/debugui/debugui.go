// Package debugui is a Dear ImGui overlay driven by ECS components: any entity
// with an ImguiItem draws each frame, and the built-in windows inspect the world.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/roadrush/ecs"
)

// ImguiItem draws ImGui widgets once per frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard this frame.
// Frontends stop feeding keys to the game while WantCaptureKeyboard is set.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and defers every ImguiItem render to
// the end of the frame, inside the backend's BeginFrame/EndFrame pair.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if render := item.ImguiItem.Render; render != nil {
			frame.Commands.Defer(render)
		}
	}
}
