package ecs

import (
	"iter"
	"reflect"
)

// componentStorage is a type-erased column of components.
type componentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

// IsRegistered reports whether T has been registered.
func IsRegistered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage stores components of type T in fixed-size heap blocks.
// Blocks are never moved once allocated, so pointers handed out by Get
// stay valid until the slot is deleted.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/blockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([blockSize]T))
			cs.filled = append(cs.filled, new([blockSize]bool))
		}
	}

	block, slot := index/blockSize, index%blockSize
	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	cs.count++
	return index
}

// Get returns a *T for the slot, or nil if the slot is empty.
func (cs *blockStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/blockSize][index%blockSize]
}

func (cs *blockStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	block, slot := index/blockSize, index%blockSize
	var zero T
	cs.blocks[block][slot] = zero
	cs.filled[block][slot] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

func (cs *blockStorage[T]) Has(index int) bool {
	if index < 0 || index >= cs.nextIndex {
		return false
	}
	return cs.filled[index/blockSize][index%blockSize]
}

func (cs *blockStorage[T]) Len() int {
	return cs.count
}

func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
