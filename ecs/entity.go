package ecs

import "fmt"

// Entity is a handle to one slot in a World. The low 32 bits are the slot
// (1-based, 0 means no entity) and the high 32 bits the generation the slot
// had when the handle was issued. Destroying an entity bumps its slot's
// generation, so handles kept past DestroyEntity stop resolving instead of
// reaching whatever reuses the slot.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const (
	slotBits = 32
	slotMask = 1<<slotBits - 1
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(gen)<<slotBits | Entity(id)
}

func (e Entity) id() entityID {
	return entityID(e & slotMask)
}

func (e Entity) generation() generation {
	return generation(e >> slotBits)
}

// String formats e as slot and generation, e.g. "7v2".
func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.id(), e.generation())
}

// Valid reports whether e names a slot at all. It says nothing about whether
// the entity is still alive; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() != 0
}
