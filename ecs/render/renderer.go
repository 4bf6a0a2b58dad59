package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/hierscenes/ecs/component"
)

const (
	nearPlane = 0.01
	farPlane  = 1000
)

// Renderer is the set of drawing primitives the scene systems rely on. All
// world-space calls must be issued between Begin3D and End3D.
type Renderer interface {
	Begin3D(cam Camera3D)
	End3D()
	DrawGrid(slices int, spacing float32)
	DrawModel(m *Mesh, world mgl32.Mat4, tint color.RGBA)
	DrawText(text string, x, y int)
}

// Camera3D is a camera resolved into world space for one frame.
type Camera3D struct {
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Up         mgl32.Vec3
	Fovy       float32
	Projection component.Projection
}

// View returns the world-to-view matrix.
func (c Camera3D) View() mgl32.Mat4 {
	up := c.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(c.Position, c.Target, up)
}

// ViewProjection returns projection * view for a viewport with the given
// aspect ratio. For orthographic cameras Fovy is the visible height in world
// units.
func (c Camera3D) ViewProjection(aspect float32) mgl32.Mat4 {
	fovy := c.Fovy
	if fovy <= 0 {
		fovy = 45
	}
	if aspect <= 0 {
		aspect = 1
	}

	var proj mgl32.Mat4
	switch c.Projection {
	case component.ProjectionOrthographic:
		top := fovy / 2
		right := top * aspect
		proj = mgl32.Ortho(-right, right, -top, top, nearPlane, farPlane)
	default:
		proj = mgl32.Perspective(mgl32.DegToRad(fovy), aspect, nearPlane, farPlane)
	}
	return proj.Mul4(c.View())
}

// Project maps a world-space point to pixel coordinates. ok is false when the
// point is behind the camera.
func Project(viewProj mgl32.Mat4, p mgl32.Vec3, width, height float32) (x, y float32, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= nearPlane {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * width
	y = (1 - ndc.Y()) / 2 * height
	return x, y, true
}
