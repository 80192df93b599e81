package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View reads entities through a struct of component pointers.
// Each pointer field names a required component; named pointer fields tagged
// `ecs:"optional"` are set to nil when absent. A field of type EntityId, if present,
// receives the entity's ID.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset uintptr
	hasId    bool
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

var entityIdType = reflect.TypeFor[EntityId]()

// NewView creates a new view for the struct type T. Panics if T is malformed.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types or EntityId")
		}

		optional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				optional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.fields = append(v.fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}

	return v
}

// Fill populates ptr with the entity's components.
// Returns false if the entity is gone or is missing a required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !archetype.Alive(id.Index()) {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, id, v.columns(archetype))
}

// Get returns a populated view struct for the entity, or nil
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter yields every matching entity in archetype creation order.
// The yielded struct is reused between iterations; copy it to keep it.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over just the view structs
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		columns := v.columns(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)

		for id := range archetype.Iter() {
			if !v.populate(resultPtr, archetype, id, columns) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// matches reports whether archetype has every required component.
func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columns maps each view field to its column in archetype, or -1.
func (v *View[T]) columns(archetype *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = archetype.column(f.typ)
	}
	return cols
}

func (v *View[T]) populate(resultPtr unsafe.Pointer, archetype *Archetype, id EntityId, columns []int) bool {
	if v.hasId {
		*(*EntityId)(unsafe.Add(resultPtr, v.idOffset)) = id
	}

	for i, col := range columns {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(resultPtr, v.fields[i].offset))

		var component any
		if col >= 0 {
			component = archetype.storages[col].Get(int(id.Index()))
		}
		if component == nil {
			if !v.fields[i].optional {
				return false
			}
			*fieldPtr = nil
			continue
		}
		*fieldPtr = dataPointer(component)
	}
	return true
}
