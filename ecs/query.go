package ecs

import (
	"slices"

	"github.com/milk9111/hierscenes/ecs/component"
)

// Query returns the live entities holding every given kind, in ascending
// handle order.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}

	stores := make([]componentStore, 0, len(kinds))
	for _, k := range kinds {
		store, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, store)
	}

	// iterate the smallest set
	slices.SortFunc(stores, func(a, b componentStore) int {
		return a.len() - b.len()
	})

	ids := make([]entityID, 0, stores[0].len())
outer:
	for _, id := range stores[0].ids() {
		for _, other := range stores[1:] {
			if !other.has(id) {
				continue outer
			}
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entities.handle(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the lowest-handle entity holding kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
