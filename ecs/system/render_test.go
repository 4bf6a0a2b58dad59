package system

import (
	"bytes"
	"fmt"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/hierscenes/ecs"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/milk9111/hierscenes/ecs/render"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// recorder is a render.Renderer that records calls instead of drawing.
type recorder struct {
	calls   []string
	cameras []render.Camera3D
	worlds  []mgl32.Mat4
	tints   []color.RGBA
	in3D    bool
}

func (r *recorder) Begin3D(cam render.Camera3D) {
	r.calls = append(r.calls, "begin3d")
	r.cameras = append(r.cameras, cam)
	r.in3D = true
}

func (r *recorder) End3D() {
	r.calls = append(r.calls, "end3d")
	r.in3D = false
}

func (r *recorder) DrawGrid(slices int, spacing float32) {
	r.calls = append(r.calls, fmt.Sprintf("grid %d %.1f", slices, spacing))
}

func (r *recorder) DrawModel(m *render.Mesh, world mgl32.Mat4, tint color.RGBA) {
	if !r.in3D {
		panic("model drawn outside 3D scope")
	}
	r.calls = append(r.calls, "model "+m.Name)
	r.worlds = append(r.worlds, world)
	r.tints = append(r.tints, tint)
}

func (r *recorder) DrawText(text string, x, y int) {
	r.calls = append(r.calls, fmt.Sprintf("text %s @%d,%d", text, x, y))
}

func addCamera(t *testing.T, w *ecs.World, active bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Position: mgl32.Vec3{0, 0, 10},
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     45,
	}))
	if active {
		require.NoError(t, w.AddTag(e, component.ActiveCameraTag))
	}
	return e
}

func addModel(t *testing.T, w *ecs.World, model string, tr *component.Transform) ecs.Entity {
	t.Helper()
	e := spawn(t, w, tr)
	require.NoError(t, ecs.Add(w, e, component.RenderableComponent.Kind(), component.NewRenderable(model)))
	return e
}

func TestRenderBindsWorldMatrices(t *testing.T) {
	w := ecs.NewWorld()
	addCamera(t, w, true)
	tr := local(mgl32.Vec3{1, 2, 3}, 15, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 1, 1})
	addModel(t, w, "cube", tr)
	Propagate(w, nil)

	s := NewRenderSystem(render.NewRegistry(), testLogger())
	s.Overlay = []OverlayText{{Text: "hello world", X: 100, Y: 100}}
	r := &recorder{}
	s.Draw(w, r)

	assert.Equal(t, []string{
		"begin3d",
		"grid 10 1.0",
		"model cube",
		"end3d",
		"text hello world @100,100",
	}, r.calls)
	assertMat(t, tr.World, r.worlds[0])
	assert.Equal(t, component.DefaultTint, r.tints[0])
}

func TestRenderPassesTintThrough(t *testing.T) {
	tests := []struct {
		name string
		tint color.RGBA
	}{
		{"opaque", color.RGBA{R: 0x33, G: 0x99, B: 0xff, A: 0xff}},
		{"transparent", color.RGBA{R: 0xff, A: 0}},
		{"zero", color.RGBA{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addCamera(t, w, true)
			e := addModel(t, w, "cube", component.NewTransform())
			rend, _ := ecs.Get(w, e, component.RenderableComponent.Kind())
			rend.Tint = tc.tint
			Propagate(w, nil)

			r := &recorder{}
			NewRenderSystem(render.NewRegistry(), testLogger()).Draw(w, r)
			require.Len(t, r.tints, 1)
			assert.Equal(t, tc.tint, r.tints[0])
		})
	}
}

func TestRenderSkipsUnresolvedAndMissing(t *testing.T) {
	w := ecs.NewWorld()
	addCamera(t, w, true)
	addModel(t, w, "pyramid", component.NewTransform())
	addModel(t, w, "teapot", component.NewTransform())
	noTransform := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, noTransform, component.RenderableComponent.Kind(), component.NewRenderable("cube")))
	Propagate(w, nil)
	addModel(t, w, "cube", component.NewTransform()) // not propagated yet

	var buf bytes.Buffer
	s := NewRenderSystem(render.NewRegistry(), zerolog.New(&buf))
	r := &recorder{}
	s.Draw(w, r)
	s.Draw(w, &recorder{})

	assert.Equal(t, []string{"begin3d", "grid 10 1.0", "model pyramid", "end3d"}, r.calls)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("teapot")), "missing model warned once")
}

func TestRenderZeroActiveCamera(t *testing.T) {
	w := ecs.NewWorld()
	addCamera(t, w, false)
	addModel(t, w, "cube", component.NewTransform())
	Propagate(w, nil)

	var buf bytes.Buffer
	s := NewRenderSystem(render.NewRegistry(), zerolog.New(&buf))
	s.Overlay = []OverlayText{{Text: "hello world", X: 100, Y: 100}}
	r := &recorder{}

	require.NotPanics(t, func() { s.Draw(w, r) })
	assert.Equal(t, []string{"text hello world @100,100"}, r.calls)
	assert.Contains(t, buf.String(), "no active camera")
}

func TestRenderSeveralActiveCamerasPicksLowestHandle(t *testing.T) {
	w := ecs.NewWorld()
	first := addCamera(t, w, true)
	second := addCamera(t, w, true)
	cam, _ := ecs.Get(w, second, component.CameraComponent.Kind())
	cam.Position = mgl32.Vec3{0, 0, 99}

	e, _, count := ActiveCamera(w)
	assert.Equal(t, first, e)
	assert.Equal(t, 2, count)

	r := &recorder{}
	NewRenderSystem(render.NewRegistry(), testLogger()).Draw(w, r)
	require.Len(t, r.cameras, 1)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, r.cameras[0].Position)
}

func TestResolveCameraFollowsParent(t *testing.T) {
	w := ecs.NewWorld()
	rig := spawn(t, w, local(mgl32.Vec3{5, 0, 0}, 0, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 1, 1}))
	camEntity := addCamera(t, w, true)
	require.NoError(t, ecs.Add(w, camEntity, component.TransformComponent.Kind(), component.NewTransform()))
	require.NoError(t, ecs.SetParent(w, camEntity, rig))
	Propagate(w, nil)

	e, cam, _ := ActiveCamera(w)
	resolved := ResolveCamera(w, e, cam)
	assert.InDelta(t, 5, resolved.Position.X(), epsilon)
	assert.InDelta(t, 10, resolved.Position.Z(), epsilon)
	assert.InDelta(t, 5, resolved.Target.X(), epsilon)
	assert.InDelta(t, 1, resolved.Up.Y(), epsilon)
}
