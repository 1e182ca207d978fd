package component

import "github.com/milk9111/wayfarer/companion"

// Companion makes an agent trail its leader. Leader is an ecs.Entity.
type Companion struct {
	Leader  uint64
	Pursuit *companion.Pursuit
}

var CompanionComponent = NewComponent[Companion]()
