package ecs

// UpdateFrame is handed to every system during one Scheduler.Once call.
type UpdateFrame struct {
	DeltaTime float64
	Number    uint64
	Commands  *Commands
	Storage   *Storage
}
