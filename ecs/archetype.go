package ecs

import (
	"iter"
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly the same set of component
// types. Slots are reused after deletion, so an EntityId stays valid until
// its entity is deleted.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	lookup  *intmap.Map[uint64, int]

	alive []bool
	free  []uint32
	count int
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		lookup:  intmap.New[uint64, int](len(types)),
	}

	for idx, typ := range types {
		a.columns[idx] = registry.newColumn(typ)
		a.lookup.Put(uint64(typeKey(typ)), idx)
	}

	return a
}

// ID returns the archetype's hash id.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	return a.count
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	idx, ok := a.lookup.Get(uint64(typeKey(t)))
	if !ok {
		return -1
	}
	return idx
}

// HasComponent reports whether the archetype stores t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnIndex(t) >= 0
}

func (a *Archetype) spawn(components []any) uint32 {
	var slot uint32
	if len(a.free) > 0 {
		slot = a.free[0]
		a.free = a.free[1:]
		a.alive[slot] = true
	} else {
		slot = uint32(len(a.alive))
		a.alive = append(a.alive, true)
	}

	for _, comp := range components {
		idx := a.columnIndex(componentType(comp))
		if idx < 0 || !a.columns[idx].set(int(slot), comp) {
			panic("component " + componentType(comp).String() + " does not belong to archetype")
		}
	}

	a.count++
	return slot
}

func (a *Archetype) delete(slot uint32) bool {
	if !a.live(slot) {
		return false
	}

	for _, col := range a.columns {
		col.clear(int(slot))
	}
	a.alive[slot] = false
	i, _ := slices.BinarySearch(a.free, slot)
	a.free = slices.Insert(a.free, i, slot)
	a.count--
	return true
}

func (a *Archetype) live(slot uint32) bool {
	return int(slot) < len(a.alive) && a.alive[slot]
}

func (a *Archetype) component(slot uint32, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx < 0 || !a.live(slot) {
		return nil
	}
	return a.columns[idx].get(int(slot))
}

// Iter yields the ids of live entities in slot order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for slot, ok := range a.alive {
			if !ok {
				continue
			}
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}

// TypeNames returns the component type names for display.
func (a *Archetype) TypeNames() []string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return names
}
