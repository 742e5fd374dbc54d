package ecs

// EntityId packs an archetype id in the upper 32 bits and a slot index in the
// lower 32. Slots are recycled after deletion, so an id is only valid until
// the entity dies; systems re-query each frame instead of holding handles.
type EntityId uint64

func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}
