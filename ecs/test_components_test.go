package ecs_test

import "github.com/plus3/starfall/ecs"

// Common test component types
type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Name struct {
	Value string
}

type Hits struct {
	Count int
}

type Marker struct{}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Hits](registry)
	ecs.RegisterComponent[Marker](registry)
	return registry
}
