package ecs

import (
	"reflect"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the world: every archetype plus the singleton components.
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	order      []*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](32),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns all archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// GetArchetype returns the archetype holding exactly the given component set, if one exists
func (s *Storage) GetArchetype(components ...any) *Archetype {
	archetype, _ := s.archetypes.Get(hashTypes(extractComponentTypes(components)))
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

// Delete removes all data related to the entity ID. Unknown IDs are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes.Get(id.ArchetypeId()); ok {
		archetype.Delete(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.Alive(id.Index())
}

// AddComponent moves the entity to the archetype that also has component's type.
// The entity's ID changes; the new ID is returned.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok || !old.Alive(id.Index()) {
		return 0
	}

	compType := componentType(component)
	if old.HasComponent(compType) {
		// Already present: overwrite in place, the ID stays the same.
		reflect.ValueOf(old.GetComponent(id.Index(), compType)).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	types := append(slices.Clone(old.types), compType)
	sortTypes(types)

	components := make([]any, 0, len(types))
	for _, typ := range types {
		if typ == compType {
			components = append(components, component)
			continue
		}
		components = append(components, old.GetComponent(id.Index(), typ))
	}

	return s.move(id, old, types, components)
}

// RemoveComponent moves the entity to the archetype without compType.
// An entity left with no components is deleted and 0 is returned.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	old, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok || !old.Alive(id.Index()) || !old.HasComponent(compType) {
		return id
	}

	types := make([]reflect.Type, 0, len(old.types)-1)
	components := make([]any, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ == compType {
			continue
		}
		types = append(types, typ)
		components = append(components, old.GetComponent(id.Index(), typ))
	}

	if len(types) == 0 {
		old.Delete(id.Index())
		return 0
	}
	return s.move(id, old, types, components)
}

func (s *Storage) move(id EntityId, old *Archetype, types []reflect.Type, components []any) EntityId {
	archetype := s.archetypeFor(types)
	slot := archetype.Spawn(components)
	old.Delete(id.Index())
	return NewEntityId(archetype.id, slot)
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton of its type, replacing any previous one.
// Pointers obtained from an earlier singleton of the same type keep pointing at the old value.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton fills out, which must be a **T, with the singleton of type T.
// Returns false when no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Pointer {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	t := v.Type().Elem().Elem()
	entry := s.getSingletonEntry(t)
	if entry == nil {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

// RemoveSingleton drops the singleton of type t.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	delete(s.singletons, t)
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	archetype, ok := s.archetypes.Get(id)
	if !ok {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes.Put(id, archetype)
		s.order = append(s.order, archetype)
	}
	return archetype
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)

		// Components are value types: structs or named primitives.
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, t)
	}
	sortTypes(types)
	return types
}

// ComponentReader is anything that can look up a component by entity and type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
