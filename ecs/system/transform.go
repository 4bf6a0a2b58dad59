package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/hierscenes/ecs"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/rs/zerolog"
)

// TransformSystem resolves world matrices. Entities are visited in hierarchy
// order so a parent's World is always current before its children read it.
type TransformSystem struct {
	log    zerolog.Logger
	warned map[ecs.Entity]struct{}
}

func NewTransformSystem(log zerolog.Logger) *TransformSystem {
	return &TransformSystem{log: log, warned: map[ecs.Entity]struct{}{}}
}

func (s *TransformSystem) Update(w *ecs.World, _ float64) error {
	Propagate(w, s.orphaned)
	return nil
}

func (s *TransformSystem) String() string {
	return "transform propagation"
}

func (s *TransformSystem) orphaned(child, parent ecs.Entity) {
	if _, ok := s.warned[child]; ok {
		return
	}
	s.warned[child] = struct{}{}
	s.log.Warn().
		Stringer("entity", child).
		Stringer("parent", parent).
		Msg("parent has no transform; treating entity as a root")
}

// Propagate writes World = parent.World * Local for every entity with a
// Transform. Roots, and children whose parent has no Transform, use the
// identity as parent world. onOrphan may be nil.
func Propagate(w *ecs.World, onOrphan func(child, parent ecs.Entity)) {
	if w == nil {
		return
	}
	kind := component.TransformComponent.Kind()

	for _, e := range ecs.HierarchyOrder(w) {
		t, ok := ecs.Get(w, e, kind)
		if !ok {
			continue
		}

		parentWorld := mgl32.Ident4()
		if p, ok := ecs.Parent(w, e); ok {
			pt, ok := ecs.Get(w, p, kind)
			switch {
			case ok && pt.Resolved:
				parentWorld = pt.World
			case onOrphan != nil:
				onOrphan(e, p)
			}
		}

		t.World = parentWorld.Mul4(t.Local())
		t.Resolved = true
	}
}
