package ecs

// EntityId packs the owning archetype (upper 32 bits) and the slot inside that
// archetype (lower 32 bits). Ids are only valid until the entity is deleted.
type EntityId uint64

// NewEntityId builds an id from an archetype id and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot half of the id.
func (e EntityId) Index() uint32 {
	return uint32(e)
}
