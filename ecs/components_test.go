package ecs_test

import "github.com/plus3/blockfall/ecs"

type Position struct {
	Row, Col int
}

type Fall struct {
	Rows int
}

type Label struct {
	Value string
}

type Lives int

type Ticks struct {
	Count int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Fall](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Lives](registry)
	return registry
}
