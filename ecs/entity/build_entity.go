package entity

import (
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/hierscenes/ecs"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/milk9111/hierscenes/ecs/render"
	"github.com/milk9111/hierscenes/scenes"
	"github.com/rotisserie/eris"
)

var (
	ErrUnknownComponent = eris.New("entity: unknown component")
	ErrUnknownTag       = eris.New("entity: unknown tag")
	ErrUnknownModel     = eris.New("entity: unknown model")
	ErrBadProjection    = eris.New("entity: unknown projection")
)

const defaultFovy = 45

type buildContext struct {
	scene  string
	models *render.Registry
	tags   map[string]component.Tag
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":  addTransform,
	"tags":       addTags,
	"camera":     addCamera,
	"renderable": addRenderable,
}

var componentBuildOrder = []string{
	"transform",
	"tags",
	"camera",
	"renderable",
}

// buildEntity creates one entity from its spec. On failure nothing is left
// behind in the world.
func buildEntity(w *ecs.World, spec scenes.EntitySpec, ctx *buildContext) (ecs.Entity, error) {
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, eris.Wrapf(ErrUnknownComponent, "%s: %q on %q", ctx.scene, name, spec.Name)
		}
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}

	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, eris.Wrapf(err, "%s: entity %q: add %q", ctx.scene, spec.Name, name)
		}
	}

	return e, nil
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := scenes.DecodeComponentSpec[scenes.TransformSpec](raw)
	if err != nil {
		return eris.Wrap(err, "decode transform spec")
	}

	rot, err := spec.Rotation.Quat()
	if err != nil {
		return err
	}

	t := component.NewTransform()
	t.Translation = spec.Translation.Vec3()
	t.Rotation = rot
	if spec.Scale != nil {
		t.Scale = spec.Scale.Vec3()
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addTags(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	names, err := scenes.DecodeComponentSpec[[]string](raw)
	if err != nil {
		return eris.Wrap(err, "decode tags")
	}

	for _, name := range names {
		tag, ok := ctx.tags[name]
		if !ok {
			return eris.Wrapf(ErrUnknownTag, "%q (known: %s)", name, strings.Join(ctx.tagNames(), ", "))
		}
		if err := w.AddTag(e, tag); err != nil {
			return err
		}
	}
	return nil
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := scenes.DecodeComponentSpec[scenes.CameraSpec](raw)
	if err != nil {
		return eris.Wrap(err, "decode camera spec")
	}

	cam := &component.Camera{
		Position: spec.Position.Vec3(),
		Target:   spec.Target.Vec3(),
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     spec.Fovy,
	}
	if spec.Up != nil {
		cam.Up = spec.Up.Vec3()
	}
	if cam.Fovy == 0 {
		cam.Fovy = defaultFovy
	}

	switch strings.ToLower(spec.Projection) {
	case "", "perspective":
		cam.Projection = component.ProjectionPerspective
	case "orthographic":
		cam.Projection = component.ProjectionOrthographic
	default:
		return eris.Wrapf(ErrBadProjection, "%q", spec.Projection)
	}

	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

func addRenderable(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := scenes.DecodeComponentSpec[scenes.RenderableSpec](raw)
	if err != nil {
		return eris.Wrap(err, "decode renderable spec")
	}
	if _, ok := ctx.models.Get(spec.Model); !ok {
		return eris.Wrapf(ErrUnknownModel, "%q", spec.Model)
	}

	r := component.NewRenderable(spec.Model)
	if spec.Tint != nil {
		r.Tint = spec.Tint.RGBA
	}
	return ecs.Add(w, e, component.RenderableComponent.Kind(), r)
}

func (ctx *buildContext) tagNames() []string {
	names := make([]string, 0, len(ctx.tags))
	for name := range ctx.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
