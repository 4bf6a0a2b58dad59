package ecs

import (
	"github.com/kelindar/bitmap"
	"github.com/milk9111/hierscenes/ecs/component"
)

// World owns entities, their components and tags, and the parent/child
// hierarchy between them.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]componentStore
	tags      map[component.TagID]*bitmap.Bitmap
	hierarchy hierarchy
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]componentStore),
		tags:      make(map[component.TagID]*bitmap.Bitmap),
		hierarchy: newHierarchy(),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	w.hierarchy.dirty = true
	return w.entities.create()
}

// DestroyEntity removes an entity together with its components and tags.
// Children of the entity are detached and become roots.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}

	w.hierarchy.detachAll(e)
	for _, store := range w.stores {
		store.remove(e.id())
	}
	for _, set := range w.tags {
		set.Remove(uint32(e.id()))
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in ascending handle order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) {
		out = append(out, e)
	})
	return out
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}
