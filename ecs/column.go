package ecs

import (
	"iter"
	"reflect"
)

// column is a type-erased component column inside an archetype.
type column interface {
	Append(item any) int
	Get(index int) any
	Delete(index int)
	Count() int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to column factories. Every component
// type must be registered before the first entity carrying it is spawned.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

func RegisterComponent[T any](registry *ComponentRegistry) {
	registry.factories[reflect.TypeFor[T]()] = func() column {
		return &typedColumn[T]{}
	}
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() column {
	return r.factories[t]
}

// typedColumn stores components of one type in a slot array with a free list.
// Deleted slots are zeroed and recycled; live indices stay stable.
type typedColumn[T any] struct {
	slots []T
	live  []bool
	free  []int
}

func (c *typedColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	if n := len(c.free); n > 0 {
		index := c.free[n-1]
		c.free = c.free[:n-1]
		c.slots[index] = value
		c.live[index] = true
		return index
	}

	c.slots = append(c.slots, value)
	c.live = append(c.live, true)
	return len(c.slots) - 1
}

func (c *typedColumn[T]) Get(index int) any {
	if index < 0 || index >= len(c.slots) || !c.live[index] {
		return nil
	}
	return &c.slots[index]
}

func (c *typedColumn[T]) Delete(index int) {
	if index < 0 || index >= len(c.slots) || !c.live[index] {
		return
	}
	var zero T
	c.slots[index] = zero
	c.live[index] = false
	c.free = append(c.free, index)
}

func (c *typedColumn[T]) Count() int {
	return len(c.slots) - len(c.free)
}

func (c *typedColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range c.slots {
			if c.live[i] && !yield(i) {
				return
			}
		}
	}
}
