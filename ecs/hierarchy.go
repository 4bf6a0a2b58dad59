package ecs

import (
	"slices"

	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/rotisserie/eris"
)

var (
	ErrSelfParent     = eris.New("ecs: entity cannot be its own parent")
	ErrHierarchyCycle = eris.New("ecs: parent link would create a cycle")
)

// hierarchy is a forest over entities: a parent pointer per child plus an
// ordered child list per parent. The breadth-first visiting order is cached
// and rebuilt only after a link changes.
type hierarchy struct {
	parent   map[Entity]Entity
	children map[Entity][]Entity

	order []Entity
	dirty bool
}

func newHierarchy() hierarchy {
	return hierarchy{
		parent:   make(map[Entity]Entity),
		children: make(map[Entity][]Entity),
		dirty:    true,
	}
}

func (h *hierarchy) link(child, parent Entity) {
	h.unlink(child)
	h.parent[child] = parent
	h.children[parent] = append(h.children[parent], child)
	h.dirty = true
}

func (h *hierarchy) unlink(child Entity) bool {
	p, ok := h.parent[child]
	if !ok {
		return false
	}
	delete(h.parent, child)
	siblings := h.children[p]
	if i := slices.Index(siblings, child); i >= 0 {
		siblings = slices.Delete(siblings, i, i+1)
	}
	if len(siblings) == 0 {
		delete(h.children, p)
	} else {
		h.children[p] = siblings
	}
	h.dirty = true
	return true
}

// detachAll removes e from its parent and orphans its children.
func (h *hierarchy) detachAll(e Entity) {
	h.unlink(e)
	for _, c := range h.children[e] {
		delete(h.parent, c)
	}
	delete(h.children, e)
	h.dirty = true
}

// SetParent links child under parent, replacing any previous parent.
func SetParent(w *World, child, parent Entity) error {
	if w == nil || !w.entities.isAlive(child) {
		return eris.Wrapf(component.ErrEntityNotAlive, "set parent of %s", child)
	}
	if !w.entities.isAlive(parent) {
		return eris.Wrapf(component.ErrEntityNotAlive, "set parent of %s to %s", child, parent)
	}
	if child == parent {
		return eris.Wrapf(ErrSelfParent, "set parent of %s", child)
	}
	for p, ok := parent, true; ok; p, ok = w.hierarchy.parent[p] {
		if p == child {
			return eris.Wrapf(ErrHierarchyCycle, "set parent of %s to %s", child, parent)
		}
	}
	w.hierarchy.link(child, parent)
	return nil
}

// ClearParent turns child into a root.
func ClearParent(w *World, child Entity) bool {
	if w == nil {
		return false
	}
	return w.hierarchy.unlink(child)
}

// Parent returns the parent of e, if any.
func Parent(w *World, e Entity) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	p, ok := w.hierarchy.parent[e]
	return p, ok
}

// Children returns the children of e in link order.
func Children(w *World, e Entity) []Entity {
	if w == nil {
		return nil
	}
	return slices.Clone(w.hierarchy.children[e])
}

// Roots returns every live entity without a parent, in ascending handle order.
func Roots(w *World) []Entity {
	if w == nil {
		return nil
	}
	var roots []Entity
	w.entities.each(func(e Entity) {
		if _, ok := w.hierarchy.parent[e]; !ok {
			roots = append(roots, e)
		}
	})
	return roots
}

// HierarchyOrder returns every live entity such that each parent precedes
// its children: a breadth-first walk from the roots. The slice is cached
// until the hierarchy or the entity set changes and must not be modified.
func HierarchyOrder(w *World) []Entity {
	if w == nil {
		return nil
	}
	h := &w.hierarchy
	if !h.dirty {
		return h.order
	}

	order := Roots(w)
	for i := 0; i < len(order); i++ {
		order = append(order, h.children[order[i]]...)
	}
	h.order = order
	h.dirty = false
	return h.order
}
