package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/hierscenes/ecs"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/milk9111/hierscenes/ecs/render"
	"github.com/milk9111/hierscenes/ecs/system"
	"github.com/milk9111/hierscenes/scenes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-5

func parse(t *testing.T, src string) *scenes.SceneSpec {
	t.Helper()
	spec, err := scenes.ParseScene([]byte(src))
	require.NoError(t, err)
	return spec
}

const solarSystem = `
name: solar
animators:
  - tag: spin_y
    axis: [0, 2, 0]
    speed: 50
entities:
  - name: cam
    components:
      tags: [active_camera]
      camera:
        position: [0, 0, 10]
        projection: orthographic
  - name: moon
    parent: planet
    components:
      transform:
        translation: [1, 0, 0]
      renderable:
        model: pyramid
  - name: planet
    components:
      tags: [spin_y]
      transform:
        translation: [5, 0, 0]
        rotation:
          axis: [0, 1, 0]
          angle: 90
      renderable:
        model: cube
        tint: "#3399ff"
`

func TestBuildSceneCreatesEntities(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := BuildScene(w, parse(t, solarSystem), render.NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, "solar", scene.Name)
	require.Len(t, scene.Order, 3)

	cam, ok := scene.Lookup("cam")
	require.True(t, ok)
	assert.True(t, w.HasTag(cam, component.ActiveCameraTag))
	c, ok := ecs.Get(w, cam, component.CameraComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.ProjectionOrthographic, c.Projection)
	assert.Equal(t, float32(defaultFovy), c.Fovy)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up)
	assert.False(t, ecs.Has(w, cam, component.TransformComponent.Kind()))

	planet := scene.Entities["planet"]
	moon := scene.Entities["moon"]
	parent, ok := ecs.Parent(w, moon)
	require.True(t, ok)
	assert.Equal(t, planet, parent)

	name, ok := ecs.Get(w, planet, component.NameComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "planet", name.Value)

	rend, ok := ecs.Get(w, planet, component.RenderableComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, uint8(0x99), rend.Tint.G)
	moonRend, _ := ecs.Get(w, moon, component.RenderableComponent.Kind())
	assert.Equal(t, component.DefaultTint, moonRend.Tint)

	moonT, _ := ecs.Get(w, moon, component.TransformComponent.Kind())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, moonT.Scale)
	assert.True(t, mgl32.QuatIdent().ApproxEqualThreshold(moonT.Rotation, epsilon))

	require.Len(t, scene.Animators, 1)
	assert.Equal(t, "spin_y", scene.Animators[0].Tag.Name())
	assert.True(t, w.HasTag(planet, scene.Animators[0].Tag))
}

func TestBuiltSceneRunsThroughSystems(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := BuildScene(w, parse(t, solarSystem), render.NewRegistry())
	require.NoError(t, err)

	sched := ecs.NewScheduler(
		system.NewRotationAnimatorSystem(scene.Animators...),
		system.NewTransformSystem(zeroLog()),
	)
	require.NoError(t, sched.Update(w, 1))

	// planet turned 90+50 degrees about Y; moon sits one unit along the
	// planet's local X.
	moonT, _ := ecs.Get(w, scene.Entities["moon"], component.TransformComponent.Kind())
	require.True(t, moonT.Resolved)
	rot := mgl32.QuatRotate(mgl32.DegToRad(140), mgl32.Vec3{0, 1, 0})
	want := mgl32.Vec3{5, 0, 0}.Add(rot.Rotate(mgl32.Vec3{1, 0, 0}))
	got := moonT.WorldPosition()
	assert.InDelta(t, want.X(), got.X(), epsilon)
	assert.InDelta(t, want.Z(), got.Z(), epsilon)
}

func TestBuildSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{
			name: "duplicate name",
			src: `
entities:
  - name: a
  - name: a`,
			err: ErrDuplicateName,
		},
		{
			name: "unknown parent",
			src: `
entities:
  - name: a
    parent: ghost`,
			err: ErrUnknownParent,
		},
		{
			name: "cycle",
			src: `
entities:
  - name: a
    parent: b
  - name: b
    parent: a`,
			err: ecs.ErrHierarchyCycle,
		},
		{
			name: "self parent",
			src: `
entities:
  - name: a
    parent: a`,
			err: ecs.ErrSelfParent,
		},
		{
			name: "parent without transform",
			src: `
entities:
  - name: a
  - name: b
    parent: a
    components:
      transform: {}`,
			err: ErrParentWithoutTransform,
		},
		{
			name: "unknown tag",
			src: `
entities:
  - name: a
    components:
      tags: [rotate_z]`,
			err: ErrUnknownTag,
		},
		{
			name: "unknown model",
			src: `
entities:
  - name: a
    components:
      renderable:
        model: teapot`,
			err: ErrUnknownModel,
		},
		{
			name: "unknown component",
			src: `
entities:
  - name: a
    components:
      rigidbody: {}`,
			err: ErrUnknownComponent,
		},
		{
			name: "bad projection",
			src: `
entities:
  - name: a
    components:
      camera:
        projection: fisheye`,
			err: ErrBadProjection,
		},
		{
			name: "reserved animator tag",
			src: `
animators:
  - tag: active_camera
    speed: 1`,
			err: component.ErrInvalidTag,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildScene(w, parse(t, tc.src), render.NewRegistry())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.err)
			assert.Empty(t, ecs.Entities(w), "failed builds leave nothing behind")
		})
	}
}

func TestBuildSceneScriptedAnimator(t *testing.T) {
	src := `
animators:
  - tag: scripted_spin
    axis: [0, 0, 1]
    speed: 1
    script: "speed = 30"
  - tag: file_spin
    script_file: wobble.tengo
`
	scene, err := BuildScene(ecs.NewWorld(), parse(t, src), render.NewRegistry())
	require.NoError(t, err)
	require.Len(t, scene.Animators, 2)

	speed, err := scene.Animators[0].Script.Speed(1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 30, speed, epsilon)
	assert.NotNil(t, scene.Animators[1].Script)
}

func TestLoadDefaultScene(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := LoadScene(w, scenes.DefaultScene, render.NewRegistry())
	require.NoError(t, err)

	for _, name := range []string{"camera", "root", "sun", "planet", "moon"} {
		_, ok := scene.Lookup(name)
		assert.True(t, ok, name)
	}
	e, cam, count := system.ActiveCamera(w)
	assert.Equal(t, 1, count)
	assert.Equal(t, scene.Entities["camera"], e)
	assert.NotNil(t, cam)

	order := ecs.HierarchyOrder(w)
	index := map[ecs.Entity]int{}
	for i, e := range order {
		index[e] = i
	}
	assert.Less(t, index[scene.Entities["root"]], index[scene.Entities["sun"]])
	assert.Less(t, index[scene.Entities["sun"]], index[scene.Entities["planet"]])
	assert.Less(t, index[scene.Entities["planet"]], index[scene.Entities["moon"]])
}
