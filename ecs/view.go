package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// viewField describes one field of a view struct.
type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
	id       bool
}

// View reads entities through a struct type T whose fields are pointers to
// component types, for example:
//
//	struct {
//		ecs.EntityId
//		*Position
//		Velocity *Velocity `ecs:"optional"`
//	}
//
// An EntityId field receives the entity's id. Embedded pointer fields are
// required; named pointer fields may be tagged `ecs:"optional"` and are nil
// when the entity lacks the component.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

// NewView creates a view over storage.
func NewView[T any](storage *Storage) *View[T] {
	return &View[T]{
		storage: storage,
		fields:  viewFields(reflect.TypeFor[T]()),
	}
}

func viewFields(structType reflect.Type) []viewField {
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			fields = append(fields, viewField{typ: entityIdType, offset: field.Offset, id: true})
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or ecs.EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		fields = append(fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
	return fields
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if f.id || f.optional {
			continue
		}
		if !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// populate writes the entity's components into the struct at dst.
func (v *View[T]) populate(dst unsafe.Pointer, archetype *Archetype, slot uint32) bool {
	for _, f := range v.fields {
		fieldPtr := unsafe.Add(dst, f.offset)

		if f.id {
			*(*EntityId)(fieldPtr) = NewEntityId(archetype.id, slot)
			continue
		}

		component := archetype.component(slot, f.typ)
		if component == nil {
			if !f.optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = dataPointer(component)
	}
	return true
}

// Fill populates *ptr for the entity and reports whether the entity has
// every required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.live(id.Index()) {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, id.Index())
}

// Get returns the populated view of the entity, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	var result T
	dst := unsafe.Pointer(&result)

	for slot, alive := range archetype.alive {
		if !alive || !v.populate(dst, archetype, uint32(slot)) {
			continue
		}
		if !yield(NewEntityId(archetype.id, uint32(slot)), result) {
			return false
		}
	}
	return true
}

// Iter yields every matching entity, archetypes in creation order and
// entities in slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates an entity from the non-nil component fields of data.
func (v *View[T]) Spawn(data T) EntityId {
	src := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		if f.id {
			continue
		}

		ptr := *(*unsafe.Pointer)(unsafe.Add(src, f.offset))
		if ptr == nil {
			if !f.optional {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, ptr).Elem().Interface())
	}

	return v.storage.Spawn(components...)
}
