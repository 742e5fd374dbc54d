package ecs

import (
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity with one exact combination of component types.
// All columns advance in lockstep, so an entity's slot index is the same in
// every column.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}

	for i, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.columns[i] = factory()
	}

	return a
}

func (a *Archetype) Spawn(components []any) uint32 {
	var slot int
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		for i, typ := range a.types {
			if typ == compType {
				slot = a.columns[i].Append(comp)
			}
		}
	}

	return uint32(slot)
}

func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	for i, typ := range a.types {
		if typ == compType {
			return a.columns[i].Get(int(entityIndex))
		}
	}
	return nil
}

func (a *Archetype) Delete(entityIndex uint32) {
	for _, col := range a.columns {
		col.Delete(int(entityIndex))
	}
}

func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

func (a *Archetype) ID() uint32 {
	return a.id
}

func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Count returns the number of live entities in this archetype.
func (a *Archetype) Count() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Count()
}
