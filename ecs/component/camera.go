package component

import "github.com/go-gl/mathgl/mgl32"

type Projection int

const (
	ProjectionPerspective Projection = iota
	ProjectionOrthographic
)

func (p Projection) String() string {
	switch p {
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return "perspective"
	}
}

// Camera describes a 3D viewpoint. Position, Target and Up are expressed in the
// camera entity's local space; if the entity has a resolved Transform they are
// carried into world space by it.
type Camera struct {
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Up         mgl32.Vec3
	Fovy       float32
	Projection Projection
}

var CameraComponent = NewComponent[Camera]()
