package ecs

import "iter"

// column is the type-erased view of one component type's storage inside an
// archetype. Slots are stable: deleting leaves a hole that a later Append
// may reuse.
type column interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}
