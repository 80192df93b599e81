package ecs

import (
	"hash/fnv"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Archetype holds every entity that has exactly one particular set of component types.
// Each component type gets its own column; a slot index addresses the same entity in every column.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentStorage
}

// NewArchetype creates an archetype with the given ID and sorted component types.
// Panics if any type has not been registered.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn appends one entity built from components and returns its slot index.
func (a *Archetype) Spawn(components []any) uint32 {
	var slot int
	for _, comp := range components {
		idx := a.column(componentType(comp))
		if idx >= 0 {
			slot = a.storages[idx].Append(comp)
		}
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the component of compType at slot, or nil.
func (a *Archetype) GetComponent(slot uint32, compType reflect.Type) any {
	idx := a.column(compType)
	if idx < 0 {
		return nil
	}
	return a.storages[idx].Get(int(slot))
}

// Delete clears the slot in every column. Slot indices of other entities are unaffected.
func (a *Archetype) Delete(slot uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(slot))
	}
}

// Alive reports whether slot currently holds an entity.
func (a *Archetype) Alive(slot uint32) bool {
	if len(a.storages) == 0 {
		return false
	}
	return a.storages[0].Has(int(slot))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Count returns the number of live entities.
func (a *Archetype) Count() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter returns an iterator over all live EntityIds in this archetype
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for slot := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}

func (a *Archetype) column(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// componentType returns the value type of a component, looking through one pointer.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(typeKey(a), typeKey(b))
	})
}

// hashTypes derives an archetype ID from a sorted type set using FNV-1a.
func hashTypes(types []reflect.Type) uint32 {
	h := fnv.New32a()
	for _, t := range types {
		h.Write([]byte(typeKey(t)))
		h.Write([]byte{0})
	}
	return h.Sum32()
}
