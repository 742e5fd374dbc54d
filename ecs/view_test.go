package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/starfall/ecs"
)

func TestViewIter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Velocity{DX: 10})
	storage.Spawn(Position{X: 2}, Velocity{DX: 20})
	storage.Spawn(Position{X: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	count := 0
	for _, item := range view.Iter() {
		count++
		if item.Position.X == 1 && item.Velocity.DX != 10 {
			t.Errorf("mismatched components: X=%v DX=%v", item.Position.X, item.Velocity.DX)
		}
	}
	assert.Equal(t, 2, count)
}

func TestViewMutationThroughPointer(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	entity := storage.Spawn(Position{X: 1})

	view := ecs.NewView[struct{ *Position }](storage)
	for _, item := range view.Iter() {
		item.Position.X = 42
	}

	pos := ecs.ReadComponent[Position](storage, entity)
	assert.Equal(t, 42.0, pos.X)
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	entity := storage.Spawn(Position{X: 5})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
	}](storage)

	found := false
	for id, item := range view.Iter() {
		found = true
		assert.Equal(t, entity, id)
		assert.Equal(t, entity, item.EntityId)
	}
	assert.True(t, found)
}

func TestViewOptionalField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Velocity{DX: 10})
	storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		Pos *Position
		Vel *Velocity `ecs:"optional"`
	}](storage)

	withVel, withoutVel := 0, 0
	for _, item := range view.Iter() {
		if item.Vel != nil {
			withVel++
		} else {
			withoutVel++
		}
	}

	assert.Equal(t, 1, withVel)
	assert.Equal(t, 1, withoutVel)
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(Position{X: 1})
	other := storage.Spawn(Position{X: 2}, Velocity{})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	assert.Nil(t, view.Get(entity), "entity without Velocity must not match")

	item := view.Get(other)
	if assert.NotNil(t, item) {
		assert.Equal(t, 2.0, item.Position.X)
	}
}

func TestViewSkipsDeleted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1})
	dead := storage.Spawn(Position{X: 2})
	storage.Delete(dead)

	view := ecs.NewView[struct{ *Position }](storage)

	count := 0
	for _, item := range view.Iter() {
		count++
		assert.Equal(t, 1.0, item.Position.X)
	}
	assert.Equal(t, 1, count)
}
