package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/roadrush/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities     ecs.Query[struct{ *Health }]
	ExecuteCount int
	TotalHealth  int
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for item := range s.Entities.Values() {
		s.TotalHealth += item.Health.Current
	}
}

type scoreKeeper struct {
	Score ecs.Singleton[Score]
}

func (s *scoreKeeper) Execute(frame *ecs.UpdateFrame) {
	*s.Score.Get() += 1
}

type spawner struct{}

func (spawner) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Health{Current: 10, Max: 10})
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in order with bound queries", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		health := &HealthSystem{}
		scheduler.Register(movement)
		scheduler.Register(health)

		id := storage.Spawn(Position{}, Velocity{DX: 1, DY: 2})
		storage.Spawn(Health{Current: 100, Max: 100})

		scheduler.Once(1.0)
		scheduler.Once(0.5)

		assert.Equal(t, 2, movement.ExecuteCount)
		assert.Equal(t, 2, health.ExecuteCount)
		assert.Equal(t, 100, health.TotalHealth)

		pos := ecs.ReadComponent[Position](storage, id)
		assert.InDelta(t, 1.5, pos.X, 1e-6)
		assert.InDelta(t, 3.0, pos.Y, 1e-6)
	})

	t.Run("singleton fields are bound", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		score := ecs.NewSingleton[Score](storage, 41)

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&scoreKeeper{})
		scheduler.Once(0)

		assert.Equal(t, Score(42), *score.Get())
	})

	t.Run("commands flush after the frame", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		health := &HealthSystem{}
		scheduler.Register(spawner{})
		scheduler.Register(health)

		scheduler.Once(0)
		assert.Equal(t, 0, health.TotalHealth, "spawn must not be visible in the same frame")

		scheduler.Once(0)
		assert.Equal(t, 10, health.TotalHealth)
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&MovementSystem{})
		scheduler.Register(&HealthSystem{}, "health")

		empty := scheduler.GetStats()
		assert.Equal(t, time.Duration(0), empty.Systems[0].MinDuration)

		for range 3 {
			scheduler.Once(0)
		}

		stats := scheduler.GetStats()
		require.Len(t, stats.Systems, 2)
		assert.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, uint64(3), stats.Frames)
		assert.Equal(t, int64(6), stats.TotalExecutions)
		assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
		assert.Equal(t, "health", stats.Systems[1].Name)
		assert.Equal(t, int64(3), stats.Systems[1].ExecutionCount)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})

	t.Run("run stops on cancel", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		health := &HealthSystem{}
		scheduler.Register(health)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		scheduler.Run(ctx, time.Millisecond)

		assert.Positive(t, health.ExecuteCount)
	})
}
