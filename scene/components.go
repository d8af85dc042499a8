// Package scene puts capybaras into an ECS world: it spawns them, runs
// their behavior and animation every tick and draws them through a
// Renderer.
package scene

import (
	"github.com/plus3/capypet/behavior"
	"github.com/plus3/capypet/ecs"
	"github.com/plus3/capypet/sprite"
)

// Pet marks a capybara entity.
type Pet struct {
	Name string
	Size float64 // world units
	Tint [4]float32
}

// RegisterComponents registers every component a pet entity carries.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[behavior.Machine](registry)
	ecs.RegisterComponent[sprite.Set](registry)
	ecs.RegisterComponent[sprite.Instance](registry)
	ecs.RegisterComponent[Pet](registry)
}

// PetView reads every component of a pet.
type PetView struct {
	ecs.EntityId
	*behavior.Machine
	*sprite.Set
	*sprite.Instance
	*Pet
}
