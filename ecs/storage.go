package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns every entity, grouped by archetype, plus the singleton
// components that belong to the world rather than to an entity.
type Storage struct {
	registry *ComponentRegistry

	index      *intmap.Map[uint32, *Archetype]
	archetypes []*Archetype

	singletons     map[reflect.Type]*singletonEntry
	singletonOrder []reflect.Type
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty world backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		index:      intmap.New[uint32, *Archetype](16),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry { return s.registry }

// Archetypes returns the archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return slices.Clone(s.archetypes)
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	if a, ok := s.index.Get(id); ok {
		if !slices.Equal(a.types, types) {
			panic(fmt.Sprintf("ecs: archetype hash collision between %v and %v", a.types, types))
		}
		return a
	}

	a := newArchetype(id, types, s.registry)
	s.index.Put(id, a)
	s.archetypes = append(s.archetypes, a)
	return a
}

// Spawn creates an entity from its components. Components are values or
// pointers to values of registered types; each type may appear once.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	sorted := sortComponents(components)
	types := make([]reflect.Type, len(sorted))
	values := make([]any, len(sorted))
	for i, c := range sorted {
		types[i] = c.typ
		values[i] = c.value
	}
	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic("ecs: duplicate component type " + types[i].String())
		}
	}

	a := s.archetypeFor(types)
	return NewEntityId(a.id, a.spawn(values))
}

// Delete removes the entity. Deleting an unknown or already deleted id is a
// no-op.
func (s *Storage) Delete(id EntityId) {
	if a, ok := s.index.Get(id.ArchetypeId()); ok {
		a.delete(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	a, ok := s.index.Get(id.ArchetypeId())
	return ok && a.Alive(id.Index())
}

// GetComponent returns a pointer to the entity's component of compType, or
// nil when there is none.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	a, ok := s.index.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return a.Component(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype carries compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	a, ok := s.index.Get(id.ArchetypeId())
	return ok && a.HasComponent(compType)
}

// AddSingleton stores value as the world's single instance of its type. If
// the singleton already exists its contents are replaced in place, so
// pointers obtained earlier see the new value.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	if entry := s.singletons[v.Type()]; entry != nil {
		entry.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{value: ptr, dataPtr: ptr.UnsafePointer()}
	s.singletonOrder = append(s.singletonOrder, v.Type())
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ReadSingleton points *target at the singleton of its element type. target
// must be a **T. It returns false when no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.singletons[v.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

// StorageStats summarises what the world currently holds.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the world and counts archetypes, entities and
// singletons.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount:     s.index.Len(),
		SingletonCount:     len(s.singletons),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.archetypes)),
		SingletonTypes:     make([]string, 0, len(s.singletonOrder)),
	}

	for _, a := range s.archetypes {
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: names,
			EntityCount:    a.Len(),
		})
		stats.TotalEntityCount += a.Len()
	}

	for _, t := range s.singletonOrder {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	return stats
}

// String renders the stats as one line per archetype.
func (st StorageStats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d entities in %d archetypes, %d singletons", st.TotalEntityCount, st.ArchetypeCount, st.SingletonCount)
	for _, a := range st.ArchetypeBreakdown {
		fmt.Fprintf(&b, "\n  0x%08X %v: %d", a.ID, a.ComponentTypes, a.EntityCount)
	}
	return b.String()
}

type typedComponent struct {
	typ   reflect.Type
	value any
}

func sortComponents(components []any) []typedComponent {
	out := make([]typedComponent, len(components))
	for i, comp := range components {
		out[i] = typedComponent{typ: componentType(comp), value: comp}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].typ.String() < out[j].typ.String()
	})
	return out
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return t
}

// hashTypes is FNV-1a over the runtime type pointers of a sorted type list.
func hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		h ^= uint32(ptr)
		h *= prime
		h ^= uint32(uint64(ptr) >> 32)
		h *= prime
	}
	return h
}

// ComponentReader is anything that can look up a component by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent is the typed form of GetComponent. It returns nil when the
// entity has no T.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}
