package ecs_test

import (
	"testing"

	"github.com/plus3/roadrush/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	t.Run("panics without execute", func(t *testing.T) {
		assert.Panics(t, func() {
			for range query.Iter() {
			}
		})
	})

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())
	})

	t.Run("new archetypes are picked up", func(t *testing.T) {
		storage.Spawn(Position{}, Velocity{}, Name{Value: "late"})
		query.Execute()
		assert.Equal(t, 4, query.Len())
	})

	t.Run("deleted entities drop out", func(t *testing.T) {
		query.Execute()
		var first ecs.EntityId
		for id := range query.Iter() {
			first = id
			break
		}
		storage.Delete(first)

		query.Execute()
		assert.Equal(t, 3, query.Len())
		for id := range query.Iter() {
			assert.NotEqual(t, first, id)
		}
	})
}
