package ecs_test

import (
	"testing"

	"github.com/plus3/roadrush/ecs"
	"github.com/stretchr/testify/assert"
)

type deleteSystem struct {
	Entities ecs.Query[struct {
		Id ecs.EntityId
		*Health
	}]
	log *[]string
}

func (s *deleteSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		if item.Health.Current <= 0 {
			frame.Commands.Delete(item.Id)
		}
	}
	frame.Commands.Defer(func() {
		*s.log = append(*s.log, "deferred")
	})
}

func TestCommandsDeleteDuringIteration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Health{Current: 0})
	storage.Spawn(Health{Current: 5})
	storage.Spawn(Health{Current: -1})

	var log []string
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&deleteSystem{log: &log})
	scheduler.Once(0)

	view := ecs.NewView[struct{ *Health }](storage)
	assert.Equal(t, 1, view.Count())
	assert.Equal(t, []string{"deferred"}, log)
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Health{Current: 1})

	scheduler := ecs.NewScheduler(storage)
	var seenAlive, seenSpawned bool
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Name{Value: "new"})
		frame.Commands.Delete(victim)
		frame.Commands.Defer(func() {
			seenAlive = storage.Alive(victim)
			seenSpawned = ecs.NewView[struct{ *Name }](storage).Count() == 1
		})
		assert.Equal(t, 3, frame.Commands.Pending())
	}))
	scheduler.Once(0)

	assert.False(t, seenAlive, "deletes apply before deferred functions")
	assert.True(t, seenSpawned, "spawns apply before deferred functions")
}

type systemFunc func(frame *ecs.UpdateFrame)

func (f systemFunc) Execute(frame *ecs.UpdateFrame) { f(frame) }
