package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/hierscenes/ecs"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/milk9111/hierscenes/ecs/render"
)

// ActiveCamera picks the camera that drives the 3D viewport: the
// lowest-handle entity carrying both the active camera tag and a Camera.
// count is the number of candidates considered.
func ActiveCamera(w *ecs.World) (e ecs.Entity, cam *component.Camera, count int) {
	for _, candidate := range w.Tagged(component.ActiveCameraTag) {
		c, ok := ecs.Get(w, candidate, component.CameraComponent.Kind())
		if !ok {
			continue
		}
		if count == 0 {
			e, cam = candidate, c
		}
		count++
	}
	return e, cam, count
}

// ResolveCamera carries the camera into world space using the entity's
// resolved Transform, if it has one.
func ResolveCamera(w *ecs.World, e ecs.Entity, cam *component.Camera) render.Camera3D {
	out := render.Camera3D{
		Position:   cam.Position,
		Target:     cam.Target,
		Up:         cam.Up,
		Fovy:       cam.Fovy,
		Projection: cam.Projection,
	}

	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || !t.Resolved {
		return out
	}
	out.Position = mgl32.TransformCoordinate(cam.Position, t.World)
	out.Target = mgl32.TransformCoordinate(cam.Target, t.World)
	out.Up = mgl32.TransformNormal(cam.Up, t.World)
	return out
}
