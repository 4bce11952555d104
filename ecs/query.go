package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// Query iterates every entity that has the components named by T. T must be
// a struct whose fields are pointers to component types; embedded fields are
// required, named fields tagged `ecs:"optional"` may be nil.
//
// A Query is a per-frame snapshot: Execute gathers the matching entities and
// Iter replays them. The Scheduler calls Execute before systems run.
type Query[T any] struct {
	storage *Storage

	types    []reflect.Type
	optional []bool
	offsets  []uintptr

	archetypes     []*Archetype
	seenArchetypes int

	entities   []EntityId
	components []T
	executed   bool
}

// NewQuery builds a query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and parses T's layout. The Scheduler
// calls it for every Query field of a registered system.
func (q *Query[T]) Init(storage *Storage) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: Query type parameter must be a struct")
	}

	q.storage = storage
	q.types = q.types[:0]
	q.optional = q.optional[:0]
	q.offsets = q.offsets[:0]
	q.archetypes = nil
	q.seenArchetypes = 0
	q.executed = false

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: Query struct fields must be pointer types, got " + field.Type.String())
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		q.types = append(q.types, field.Type.Elem())
		q.optional = append(q.optional, optional)
		q.offsets = append(q.offsets, field.Offset)
	}
}

func (q *Query[T]) matches(a *Archetype) bool {
	for i, t := range q.types {
		if !q.optional[i] && !a.HasComponent(t) {
			return false
		}
	}
	return true
}

// refreshArchetypes picks up archetypes created since the last call. Storage
// only ever appends archetypes, so the new ones are a suffix.
func (q *Query[T]) refreshArchetypes() {
	all := q.storage.archetypes
	for _, a := range all[q.seenArchetypes:] {
		if q.matches(a) {
			q.archetypes = append(q.archetypes, a)
		}
	}
	q.seenArchetypes = len(all)
}

func (q *Query[T]) columnsFor(a *Archetype) []int {
	cols := make([]int, len(q.types))
	for i, t := range q.types {
		cols[i] = a.columnOf(t)
	}
	return cols
}

// fill points every field of *out at the entity's components. It returns
// false when a required component is missing.
func (q *Query[T]) fill(out unsafe.Pointer, a *Archetype, index int, cols []int) bool {
	for i, col := range cols {
		field := unsafe.Add(out, q.offsets[i])

		var comp any
		if col != -1 {
			comp = a.columns[col].Get(index)
		}
		if comp == nil {
			if !q.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(field) = nil
			continue
		}
		*(*unsafe.Pointer)(field) = (*iface)(unsafe.Pointer(&comp)).data
	}
	return true
}

// Execute gathers the matching entities for this frame.
func (q *Query[T]) Execute() {
	q.refreshArchetypes()

	q.entities = q.entities[:0]
	q.components = q.components[:0]

	for _, a := range q.archetypes {
		if len(a.columns) == 0 {
			continue
		}
		cols := q.columnsFor(a)

		var item T
		for index := range a.columns[0].Iter() {
			if !q.fill(unsafe.Pointer(&item), a, index, cols) {
				continue
			}
			q.entities = append(q.entities, NewEntityId(a.id, uint32(index)))
			q.components = append(q.components, item)
		}
	}

	q.executed = true
}

// Get fills a T for a single entity, or returns nil when the entity lacks a
// required component. It does not need Execute.
func (q *Query[T]) Get(id EntityId) *T {
	a, ok := q.storage.index.Get(id.ArchetypeId())
	if !ok || !a.Alive(id.Index()) {
		return nil
	}

	var item T
	if !q.fill(unsafe.Pointer(&item), a, int(id.Index()), q.columnsFor(a)) {
		return nil
	}
	return &item
}

// Len is the number of entities gathered by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.entities)
}

// Iter yields the entities gathered by the last Execute. It panics if
// Execute has never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.executed {
		panic("ecs: Query.Iter() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.components[i]) {
				return
			}
		}
	}
}

// Values is Iter without the entity ids.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.executed {
		panic("ecs: Query.Values() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for _, item := range q.components {
			if !yield(item) {
				return
			}
		}
	}
}
