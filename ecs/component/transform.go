package component

import "github.com/go-gl/mathgl/mgl32"

// Transform holds an entity's local TRS relative to its parent and the world
// matrix derived from it by the propagation pass.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3

	// World is only meaningful while Resolved is true.
	World    mgl32.Mat4
	Resolved bool
}

var TransformComponent = NewComponent[Transform]()

// NewTransform returns an identity local transform.
func NewTransform() *Transform {
	return &Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		World:    mgl32.Ident4(),
	}
}

// Local composes scale, then rotation, then translation. With mgl32's column
// vectors that is T * R * S. A zero scale collapses the subtree onto its
// origin.
func (t *Transform) Local() mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}

	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl32.QuatIdent()
	}

	scale := t.Scale
	translate := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	scaleM := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return translate.Mul4(rot.Mat4()).Mul4(scaleM)
}

// WorldPosition returns the translation column of the resolved world matrix.
func (t *Transform) WorldPosition() mgl32.Vec3 {
	if t == nil {
		return mgl32.Vec3{}
	}
	return t.World.Col(3).Vec3()
}
