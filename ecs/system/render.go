package system

import (
	"github.com/milk9111/hierscenes/ecs"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/milk9111/hierscenes/ecs/render"
	"github.com/rs/zerolog"
)

// OverlayText is a line of 2D text drawn after the 3D scope.
type OverlayText struct {
	Text string
	X, Y int
}

// RenderSystem binds resolved world matrices to draw calls. It must run after
// the transform system for the frame.
type RenderSystem struct {
	models *render.Registry
	log    zerolog.Logger

	GridSlices  int
	GridSpacing float32
	Overlay     []OverlayText

	cameraCount   int
	missingModels map[string]struct{}
}

func NewRenderSystem(models *render.Registry, log zerolog.Logger) *RenderSystem {
	return &RenderSystem{
		models:        models,
		log:           log,
		GridSlices:    10,
		GridSpacing:   1,
		cameraCount:   1,
		missingModels: map[string]struct{}{},
	}
}

// Draw renders the world through the active camera, then the overlay. With
// no active camera the 3D scope is skipped and only the overlay is drawn.
func (s *RenderSystem) Draw(w *ecs.World, r render.Renderer) {
	if w == nil || r == nil {
		return
	}

	camEntity, cam, count := ActiveCamera(w)
	if count != s.cameraCount {
		s.cameraCount = count
		switch {
		case count == 0:
			s.log.Warn().Msg("no active camera; skipping 3D drawing")
		case count > 1:
			s.log.Warn().
				Int("cameras", count).
				Stringer("using", camEntity).
				Msg("several active cameras; using the lowest entity handle")
		}
	}

	if cam != nil {
		r.Begin3D(ResolveCamera(w, camEntity, cam))
		r.DrawGrid(s.GridSlices, s.GridSpacing)
		s.drawModels(w, r)
		r.End3D()
	}

	for _, o := range s.Overlay {
		r.DrawText(o.Text, o.X, o.Y)
	}
}

func (s *RenderSystem) drawModels(w *ecs.World, r render.Renderer) {
	ecs.ForEach2(w, component.RenderableComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, rend *component.Renderable, t *component.Transform) {
			if !t.Resolved {
				return
			}
			mesh, ok := s.models.Get(rend.Model)
			if !ok {
				if _, seen := s.missingModels[rend.Model]; !seen {
					s.missingModels[rend.Model] = struct{}{}
					s.log.Warn().Str("model", rend.Model).Msg("model not registered; skipping")
				}
				return
			}
			r.DrawModel(mesh, t.World, rend.Tint)
		})
}
