// Package ebiten runs an engine.Game in a desktop window using Ebitengine.
package ebiten

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/roadrush/ecs"
	"github.com/plus3/roadrush/ecs/debugui"
	debugui_ebiten "github.com/plus3/roadrush/ecs/debugui/ebiten"
	"github.com/plus3/roadrush/engine"
)

type Options struct {
	// DebugUI draws the ImGui entity browser and performance windows over the game.
	DebugUI bool
}

// Runner implements ebiten.Game for a started engine.Game.
type Runner[S any] struct {
	game     *engine.Game[S]
	renderer *renderer
	keys     []ebiten.Key

	imgui      *ecs.Singleton[debugui_ebiten.ImguiBackend]
	imguiInput *ecs.Singleton[debugui.ImguiInputState]
}

// NewRunner wraps game. With DebugUI set, the debug systems are added to the
// game, so NewRunner must be called before game.Start.
func NewRunner[S any](game *engine.Game[S], opts Options) *Runner[S] {
	r := &Runner[S]{
		game:     game,
		renderer: newRenderer(game.Engine().Logger),
	}
	if opts.DebugUI {
		r.enableDebugUI()
	}
	return r
}

func (r *Runner[S]) enableDebugUI() {
	storage := r.game.Storage()
	window := r.game.Window()

	debugui.RegisterDebugUIComponents(storage.Registry())
	ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage,
		debugui_ebiten.NewImguiBackend(window.Title, int(window.Width), int(window.Height)))
	debugui.SpawnDebugUI(storage)

	r.imgui = ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage)
	r.imguiInput = ecs.NewSingleton[debugui.ImguiInputState](storage)

	r.game.AddSystem(&debugui.ImguiSystem{}, "imgui")
	r.game.AddSystem(debugui.NewDebugWindowSystem(r.game.Scheduler()), "debug-windows")
}

// Run opens the window and blocks until the game exits or the window closes.
func (r *Runner[S]) Run() error {
	window := r.game.Window()
	ebiten.SetWindowSize(int(window.Width), int(window.Height))
	ebiten.SetWindowTitle(window.Title)
	if window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	err := ebiten.RunGame(r)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (r *Runner[S]) Update() error {
	keyboard := r.game.Engine().KeyboardState
	keyboard.BeginFrame()
	if r.imguiInput != nil && r.imguiInput.Get().WantCaptureKeyboard {
		keyboard.ReleaseAll()
	} else {
		r.keys = inpututil.AppendPressedKeys(r.keys[:0])
		applyKeys(keyboard, r.keys)
	}

	if r.imgui != nil {
		r.imgui.Get().BeginFrame()
		defer r.imgui.Get().EndFrame()
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	if err := r.game.Step(dt); err != nil {
		if errors.Is(err, engine.ErrExit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (r *Runner[S]) Draw(screen *ebiten.Image) {
	r.renderer.draw(screen, r.game.Engine())
	if r.imgui != nil {
		r.imgui.Get().Draw(screen)
	}
}

func (r *Runner[S]) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.game.Engine().WindowDimensions = engine.NewVec2(float32(outsideWidth), float32(outsideHeight))
	if r.imgui != nil {
		r.imgui.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
