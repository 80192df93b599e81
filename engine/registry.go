package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/plus3/roadrush/ecs"
)

// Registry is a label-keyed collection of engine-owned values.
// A label resolves to at most one value.
type Registry[T any] interface {
	// Get returns the value for label and whether it exists.
	Get(label string) (*T, bool)
	// MustGet is Get for labels that must exist; it panics otherwise.
	MustGet(label string) *T
	// Insert stores value under label, replacing any previous value, and returns
	// a pointer to the stored copy.
	Insert(label string, value T) *T
	// Remove deletes label and reports whether it existed.
	Remove(label string) bool
	Has(label string) bool
	Len() int
	// Labels returns every label in sorted order.
	Labels() []string
}

type labeled interface {
	setLabel(label string)
}

// entityRegistry keeps each value as a single-component ECS entity.
type entityRegistry[T any] struct {
	storage *ecs.Storage
	index   map[string]ecs.EntityId
}

// NewRegistry returns a Registry that stores its values in storage, registering T if needed.
// Pointers returned by Get and Insert stay valid until the label is removed or replaced.
func NewRegistry[T any](storage *ecs.Storage) Registry[T] {
	if !ecs.IsRegistered[T](storage.Registry()) {
		ecs.RegisterComponent[T](storage.Registry())
	}
	return &entityRegistry[T]{
		storage: storage,
		index:   make(map[string]ecs.EntityId),
	}
}

func (r *entityRegistry[T]) Get(label string) (*T, bool) {
	id, ok := r.index[label]
	if !ok {
		return nil, false
	}
	value := ecs.ReadComponent[T](r.storage, id)
	return value, value != nil
}

func (r *entityRegistry[T]) MustGet(label string) *T {
	value, ok := r.Get(label)
	if !ok {
		panic(fmt.Sprintf("no entry labeled %q", label))
	}
	return value
}

func (r *entityRegistry[T]) Insert(label string, value T) *T {
	if l, ok := any(&value).(labeled); ok {
		l.setLabel(label)
	}
	if id, ok := r.index[label]; ok {
		r.storage.Delete(id)
	}
	id := r.storage.Spawn(value)
	r.index[label] = id
	return ecs.ReadComponent[T](r.storage, id)
}

func (r *entityRegistry[T]) Remove(label string) bool {
	id, ok := r.index[label]
	if !ok {
		return false
	}
	r.storage.Delete(id)
	delete(r.index, label)
	return true
}

func (r *entityRegistry[T]) Has(label string) bool {
	_, ok := r.index[label]
	return ok
}

func (r *entityRegistry[T]) Len() int {
	return len(r.index)
}

func (r *entityRegistry[T]) Labels() []string {
	return slices.Sorted(maps.Keys(r.index))
}
