package ecs

import "reflect"

// Singleton gives systems direct access to one component instance that does not
// belong to any entity: game state, configuration and similar world-wide data.
type Singleton[T any] struct {
	storage *Storage
}

// NewSingleton returns an accessor for the T singleton in storage. If the singleton does
// not exist yet it is created from initializer, or from the zero value.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
}

// Get returns a pointer to the singleton, or nil if it has not been added.
// The lookup is repeated on every call so a replaced singleton is always seen.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil {
		return nil
	}
	entry := s.storage.getSingletonEntry(reflect.TypeFor[T]())
	if entry == nil {
		return nil
	}
	return (*T)(entry.dataPtr)
}

// Exists returns true if the singleton has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
