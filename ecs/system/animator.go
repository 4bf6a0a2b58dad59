package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/hierscenes/ecs"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/rotisserie/eris"
)

// AnimatorDef spins every entity carrying Tag about Axis at Speed degrees per
// second. If Script is set it supplies the speed each frame instead.
type AnimatorDef struct {
	Tag    component.Tag
	Axis   mgl32.Vec3
	Speed  float64
	Script *SpeedScript
}

// RotationAnimatorSystem advances local rotations. Definitions are applied in
// the order they were registered, so an entity carrying several animator tags
// always composes its increments the same way.
type RotationAnimatorSystem struct {
	defs    []AnimatorDef
	elapsed float64
}

func NewRotationAnimatorSystem(defs ...AnimatorDef) *RotationAnimatorSystem {
	s := &RotationAnimatorSystem{}
	for _, d := range defs {
		s.Register(d)
	}
	return s
}

func (s *RotationAnimatorSystem) Register(def AnimatorDef) {
	if !def.Tag.Valid() {
		return
	}
	if def.Axis.Len() == 0 {
		def.Axis = mgl32.Vec3{0, 1, 0}
	}
	def.Axis = def.Axis.Normalize()
	s.defs = append(s.defs, def)
}

func (s *RotationAnimatorSystem) Defs() []AnimatorDef {
	return append([]AnimatorDef(nil), s.defs...)
}

func (s *RotationAnimatorSystem) Update(w *ecs.World, dt float64) error {
	if w == nil {
		return nil
	}
	s.elapsed += dt

	for _, def := range s.defs {
		speed := def.Speed
		if def.Script != nil {
			v, err := def.Script.Speed(dt, s.elapsed)
			if err != nil {
				return eris.Wrapf(err, "animator %s", def.Tag)
			}
			speed = v
		}

		step := Increment(def.Axis, speed, dt)
		for _, e := range w.Tagged(def.Tag) {
			t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
			if !ok {
				continue
			}
			t.Rotation = Spin(t.Rotation, step)
		}
	}
	return nil
}

func (s *RotationAnimatorSystem) String() string {
	return "rotation animator"
}

// Increment is the rotation of speed*dt degrees about axis.
func Increment(axis mgl32.Vec3, speed, dt float64) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(float32(speed*dt)), axis)
}

// Spin right-multiplies current by step and renormalizes.
func Spin(current, step mgl32.Quat) mgl32.Quat {
	if current.Len() == 0 {
		current = mgl32.QuatIdent()
	}
	return current.Mul(step).Normalize()
}
