package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

var entityIdType = reflect.TypeFor[EntityId]()

// View iterates entities matching a component set. T is a struct whose fields
// are component pointers; a field of type EntityId receives the entity's id,
// and named pointer fields tagged `ecs:"optional"` are nil when the component
// is absent. Views don't require a Scheduler; Query wraps one with per-frame
// caching for systems.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffsets   []uintptr
}

func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffsets = append(v.idOffsets, field.Offset)
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be component pointers or EntityId")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\"")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		v.optional = append(v.optional, isOptional)
	}

	return v
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, requiredType := range v.types {
		if v.optional[i] {
			continue
		}
		if !archetype.HasComponent(requiredType) {
			return false
		}
	}
	return true
}

func (v *View[T]) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, componentType := range v.types {
		indices[i] = -1
		for idx, archetypeType := range archetype.types {
			if archetypeType == componentType {
				indices[i] = idx
				break
			}
		}
	}
	return indices
}

// populate writes component pointers and the entity id directly into the
// result struct's memory, avoiding per-field reflection in the hot path.
func (v *View[T]) populate(resultPtr unsafe.Pointer, id EntityId, archetype *Archetype, entityIndex int, columnIndices []int) bool {
	for i, colIdx := range columnIndices {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		if colIdx == -1 {
			if v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		component := archetype.columns[colIdx].Get(entityIndex)
		if component == nil {
			if v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	for _, offset := range v.idOffsets {
		*(*EntityId)(unsafe.Pointer(uintptr(resultPtr) + offset)) = id
	}

	return true
}

// Get returns a populated view struct for the entity, or nil when it does not
// carry all required components.
func (v *View[T]) Get(id EntityId) *T {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}

	var result T
	indices := v.columnIndices(archetype)
	if !v.populate(unsafe.Pointer(&result), id, archetype, int(id.Index()), indices) {
		return nil
	}
	return &result
}

// Iter yields every matching entity with a freshly populated view struct.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for archetypeId, archetype := range v.storage.archetypes {
			if !v.matchesArchetype(archetype) || len(archetype.columns) == 0 {
				continue
			}

			indices := v.columnIndices(archetype)

			var result T
			resultPtr := unsafe.Pointer(&result)

			for entityIndex := range archetype.columns[0].Iter() {
				id := NewEntityId(archetypeId, uint32(entityIndex))
				if !v.populate(resultPtr, id, archetype, entityIndex, indices) {
					continue
				}
				if !yield(id, result) {
					return
				}
			}
		}
	}
}
