package ecs

import (
	"reflect"
	"sort"
)

// Storage owns all archetypes and singleton resources for one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]any
}

func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]any),
	}
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; either way the storage keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetypeId := hashTypes(types)

	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}

	entityIndex := archetype.Spawn(components)
	return NewEntityId(archetypeId, entityIndex)
}

// Delete removes all component data for the entity. Deleting an already
// deleted entity is a no-op.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddSingleton stores a singleton resource keyed by its concrete type,
// replacing any previous value of the same type. Passing a pointer shares the
// caller's value; passing a value stores a copy.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ.Kind() == reflect.Ptr {
		s.singletons[typ.Elem()] = value
		return
	}

	boxed := reflect.New(typ)
	boxed.Elem().Set(reflect.ValueOf(value))
	s.singletons[typ] = boxed.Interface()
}

func (s *Storage) getSingleton(typ reflect.Type) any {
	return s.singletons[typ]
}

// StorageStats summarizes the live contents of the storage.
type StorageStats struct {
	EntityCount    int
	ArchetypeCount int
	SingletonCount int
}

func (s *Storage) Stats() StorageStats {
	stats := StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}
	for _, archetype := range s.archetypes {
		stats.EntityCount += archetype.Count()
	}
	return stats
}

func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}

	sort.Sort(byTypeName(types))

	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic("duplicate component type: " + types[i].String())
		}
	}

	return types
}

// hashTypes derives the archetype id from the sorted component type names
// (FNV-1a), so the same component set always lands in the same archetype.
func hashTypes(types []reflect.Type) uint32 {
	var hash uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		for _, b := range []byte(t.String()) {
			hash ^= uint32(b)
			hash *= prime
		}
	}

	return hash
}

// ComponentReader is the subset of Storage that ReadComponent needs.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to the entity's component, or nil
// when the entity is gone or never had one.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp := reader.GetComponent(id, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
