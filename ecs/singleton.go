package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed handle to a world-level component that belongs to no
// entity: configuration, the current match, input buffers and the like.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns a handle to the T singleton, creating it from
// initializer (or the zero value) when it does not exist yet. An existing
// singleton is left untouched.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if storage.getSingletonEntry(t) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the handle to storage. The Scheduler calls it for every
// Singleton field of a registered system.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.resolve()
}

func (s *Singleton[T]) resolve() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.dataPtr
	}
}

// Get returns the singleton, or nil when it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.resolve()
	}
	return (*T)(s.ptr)
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
