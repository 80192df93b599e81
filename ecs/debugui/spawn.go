package debugui

import "github.com/plus3/roadrush/ecs"

// SpawnDebugUI spawns the built-in debug windows and the singleton their systems use.
func SpawnDebugUI(storage *ecs.Storage) {
	ecs.NewSingleton[ImguiInputState](storage)
	storage.Spawn(NewEntityBrowserComponent(100))
	storage.Spawn(NewPerformanceStatsComponent(120))
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
}

// DebugWindowSystem renders the built-in debug windows. Rendering is deferred
// to the end of the frame so every other system's work is visible.
type DebugWindowSystem struct {
	Browsers ecs.Query[struct{ *EntityBrowserComponent }]
	Stats    ecs.Query[struct{ *PerformanceStatsComponent }]

	scheduler *ecs.Scheduler
}

// NewDebugWindowSystem returns a system whose stats window reports on scheduler.
func NewDebugWindowSystem(scheduler *ecs.Scheduler) *DebugWindowSystem {
	return &DebugWindowSystem{scheduler: scheduler}
}

func (s *DebugWindowSystem) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	for item := range s.Stats.Values() {
		stats := item.PerformanceStatsComponent
		stats.Record(float32(frame.DeltaTime))
		frame.Commands.Defer(func() {
			var schedulerStats *ecs.SchedulerStats
			if s.scheduler != nil {
				schedulerStats = s.scheduler.GetStats()
			}
			stats.Render(storage, schedulerStats)
		})
	}
	for item := range s.Browsers.Values() {
		browser := item.EntityBrowserComponent
		frame.Commands.Defer(func() { browser.Render(storage) })
	}
}
