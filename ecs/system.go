package ecs

// System is one step of a frame. Systems may embed Query and Singleton fields;
// the Scheduler binds those to its storage on Register and refreshes every Query
// right before the system executes.
type System interface {
	Execute(frame *UpdateFrame)
}
