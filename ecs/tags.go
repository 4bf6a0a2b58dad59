package ecs

import (
	"github.com/kelindar/bitmap"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/rotisserie/eris"
)

// AddTag marks e with tag.
func (w *World) AddTag(e Entity, tag component.Tag) error {
	if w == nil || !w.entities.isAlive(e) {
		return eris.Wrapf(component.ErrEntityNotAlive, "tag %s with %s", e, tag)
	}
	if !tag.Valid() {
		return component.ErrInvalidTag
	}
	set, ok := w.tags[tag.ID()]
	if !ok {
		set = &bitmap.Bitmap{}
		w.tags[tag.ID()] = set
	}
	set.Set(uint32(e.id()))
	return nil
}

func (w *World) RemoveTag(e Entity, tag component.Tag) bool {
	if !w.HasTag(e, tag) {
		return false
	}
	w.tags[tag.ID()].Remove(uint32(e.id()))
	return true
}

func (w *World) HasTag(e Entity, tag component.Tag) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	set, ok := w.tags[tag.ID()]
	if !ok {
		return false
	}
	return set.Contains(uint32(e.id()))
}

// Tagged returns every entity carrying tag in ascending handle order.
func (w *World) Tagged(tag component.Tag) []Entity {
	if w == nil {
		return nil
	}
	set, ok := w.tags[tag.ID()]
	if !ok {
		return nil
	}
	out := make([]Entity, 0, set.Count())
	set.Range(func(x uint32) {
		if e, ok := w.entities.handle(entityID(x)); ok {
			out = append(out, e)
		}
	})
	return out
}
