package ecs

import (
	"reflect"
	"slices"
)

// Archetype holds every entity that has exactly one particular set of
// component types, one column per type.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, typ := range types {
		a.columns[i] = registry.newColumn(typ)
	}
	return a
}

// spawn stores one value per column and returns the shared slot. Components
// must already be sorted the same way as the archetype's types.
func (a *Archetype) spawn(components []any) uint32 {
	slot := -1
	for i, comp := range components {
		got := a.columns[i].Append(comp)
		if slot != -1 && got != slot {
			panic("ecs: archetype columns out of step")
		}
		slot = got
	}
	return uint32(slot)
}

func (a *Archetype) columnOf(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// Component returns a pointer to the entity's component of the given type,
// or nil when the archetype lacks that type or the slot is empty.
func (a *Archetype) Component(index uint32, compType reflect.Type) any {
	col := a.columnOf(compType)
	if col == -1 {
		return nil
	}
	return a.columns[col].Get(int(index))
}

// Alive reports whether the slot currently holds an entity.
func (a *Archetype) Alive(index uint32) bool {
	return len(a.columns) > 0 && a.columns[0].Has(int(index))
}

func (a *Archetype) delete(index uint32) {
	for _, col := range a.columns {
		col.Delete(int(index))
	}
}

// HasComponent reports whether entities of this archetype carry compType.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.columnOf(compType) != -1
}

// ID returns the archetype's hash of its component types.
func (a *Archetype) ID() uint32 { return a.id }

// Types returns the archetype's component types in canonical order.
func (a *Archetype) Types() []reflect.Type { return a.types }

// Len is the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Iter yields the id of every live entity in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
