package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry knows how to build storage for every component type a
// Storage may hold. Each Storage owns its registry, so independent worlds do
// not share registrations.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as an entity component. Registering the
// same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &pagedColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

const pageSize = 64

// pagedColumn stores values of T in fixed-size pages so that pointers handed
// out by Get stay valid while the column grows.
type pagedColumn[T any] struct {
	pages  []*[pageSize]T
	filled []*[pageSize]bool
	free   []int
	next   int
	live   int
}

func (c *pagedColumn[T]) locate(index int) (page, slot int, ok bool) {
	if index < 0 || index >= c.next {
		return 0, 0, false
	}
	return index / pageSize, index % pageSize, true
}

func (c *pagedColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		panic("ecs: cannot store " + reflect.TypeOf(item).String() + " in column of " + reflect.TypeFor[T]().String())
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/pageSize >= len(c.pages) {
			c.pages = append(c.pages, new([pageSize]T))
			c.filled = append(c.filled, new([pageSize]bool))
		}
	}

	page, slot := index/pageSize, index%pageSize
	c.pages[page][slot] = value
	c.filled[page][slot] = true
	c.live++
	return index
}

func (c *pagedColumn[T]) Get(index int) any {
	page, slot, ok := c.locate(index)
	if !ok || !c.filled[page][slot] {
		return nil
	}
	return &c.pages[page][slot]
}

func (c *pagedColumn[T]) Delete(index int) {
	page, slot, ok := c.locate(index)
	if !ok || !c.filled[page][slot] {
		return
	}
	var zero T
	c.pages[page][slot] = zero
	c.filled[page][slot] = false
	c.free = append(c.free, index)
	c.live--
}

func (c *pagedColumn[T]) Has(index int) bool {
	page, slot, ok := c.locate(index)
	return ok && c.filled[page][slot]
}

func (c *pagedColumn[T]) Len() int { return c.live }

func (c *pagedColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			if c.filled[i/pageSize][i%pageSize] && !yield(i) {
				return
			}
		}
	}
}
