package ecs

import "reflect"

// Singleton accesses a single resource instance that is not attached to any
// entity: global game state, timers, the per-frame input snapshot. Fields of
// this type in a system struct are wired by the scheduler at registration.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for T, creating the resource in storage on
// first use. The optional initializer seeds the value when it is created.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingleton(reflect.TypeFor[T]()) == nil {
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

// Init wires the accessor to a storage. Called by the scheduler during
// system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.resolve()
}

func (s *Singleton[T]) resolve() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingleton(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.(*T)
	}
}

// Get returns a pointer to the singleton, or nil when it was never added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.resolve()
	}
	return s.ptr
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
