package entity

import (
	"github.com/milk9111/hierscenes/ecs"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/milk9111/hierscenes/ecs/render"
	"github.com/milk9111/hierscenes/ecs/system"
	"github.com/milk9111/hierscenes/scenes"
	"github.com/rotisserie/eris"
)

var (
	ErrDuplicateName          = eris.New("entity: duplicate entity name")
	ErrUnknownParent          = eris.New("entity: unknown parent")
	ErrParentWithoutTransform = eris.New("entity: parent has no transform")
)

// Scene is the result of building a scene spec into a world.
type Scene struct {
	Name      string
	Entities  map[string]ecs.Entity
	Order     []ecs.Entity
	Animators []system.AnimatorDef
}

// Lookup returns the entity declared under name.
func (s *Scene) Lookup(name string) (ecs.Entity, bool) {
	e, ok := s.Entities[name]
	return e, ok
}

// LoadScene reads a scene file and builds it into w.
func LoadScene(w *ecs.World, filename string, models *render.Registry) (*Scene, error) {
	spec, err := scenes.LoadScene(filename)
	if err != nil {
		return nil, err
	}
	return BuildScene(w, spec, models)
}

// BuildScene loads the scene's models, compiles its animators, creates every
// entity and links the hierarchy. If any step fails the entities created so
// far are destroyed and the error is returned.
func BuildScene(w *ecs.World, spec *scenes.SceneSpec, models *render.Registry) (*Scene, error) {
	if w == nil {
		return nil, eris.New("build scene: world is nil")
	}
	if spec == nil {
		return nil, eris.New("build scene: spec is nil")
	}
	if models == nil {
		return nil, eris.New("build scene: model registry is nil")
	}

	for _, m := range spec.Models {
		if _, err := models.LoadModel(m.Name, m.Path); err != nil {
			return nil, eris.Wrapf(err, "build scene %q", spec.Name)
		}
	}

	animators, err := buildAnimators(spec.Animators)
	if err != nil {
		return nil, eris.Wrapf(err, "build scene %q", spec.Name)
	}

	ctx := &buildContext{
		scene:  spec.Name,
		models: models,
		tags:   map[string]component.Tag{component.ActiveCameraTag.Name(): component.ActiveCameraTag},
	}
	for _, a := range animators {
		ctx.tags[a.Tag.Name()] = a.Tag
	}

	scene := &Scene{
		Name:      spec.Name,
		Entities:  make(map[string]ecs.Entity, len(spec.Entities)),
		Order:     make([]ecs.Entity, 0, len(spec.Entities)),
		Animators: animators,
	}
	rollback := func(err error) (*Scene, error) {
		for _, e := range scene.Order {
			ecs.DestroyEntity(w, e)
		}
		return nil, err
	}

	for _, es := range spec.Entities {
		if es.Name == "" {
			return rollback(eris.Errorf("build scene %q: entity without a name", spec.Name))
		}
		if _, dup := scene.Entities[es.Name]; dup {
			return rollback(eris.Wrapf(ErrDuplicateName, "build scene %q: %q", spec.Name, es.Name))
		}
		e, err := buildEntity(w, es, ctx)
		if err != nil {
			return rollback(err)
		}
		scene.Entities[es.Name] = e
		scene.Order = append(scene.Order, e)
	}

	for i, es := range spec.Entities {
		if es.Parent == "" {
			continue
		}
		child := scene.Order[i]
		parent, ok := scene.Entities[es.Parent]
		if !ok {
			return rollback(eris.Wrapf(ErrUnknownParent, "build scene %q: %q -> %q", spec.Name, es.Name, es.Parent))
		}
		if ecs.Has(w, child, component.TransformComponent.Kind()) && !ecs.Has(w, parent, component.TransformComponent.Kind()) {
			return rollback(eris.Wrapf(ErrParentWithoutTransform, "build scene %q: %q -> %q", spec.Name, es.Name, es.Parent))
		}
		if err := ecs.SetParent(w, child, parent); err != nil {
			return rollback(eris.Wrapf(err, "build scene %q: %q -> %q", spec.Name, es.Name, es.Parent))
		}
	}

	return scene, nil
}

func buildAnimators(specs []scenes.AnimatorSpec) ([]system.AnimatorDef, error) {
	defs := make([]system.AnimatorDef, 0, len(specs))
	for _, a := range specs {
		if a.Tag == "" {
			return nil, eris.Wrap(component.ErrInvalidTag, "animator without a tag")
		}
		if a.Tag == component.ActiveCameraTag.Name() {
			return nil, eris.Wrapf(component.ErrInvalidTag, "animator tag %q is reserved", a.Tag)
		}

		def := system.AnimatorDef{
			Tag:   component.TagNamed(a.Tag),
			Axis:  a.Axis.Vec3(),
			Speed: a.Speed,
		}

		src := a.Script
		if a.ScriptFile != "" {
			data, err := scenes.LoadScript(a.ScriptFile)
			if err != nil {
				return nil, err
			}
			src = string(data)
		}
		if src != "" {
			script, err := system.CompileSpeedScript(src)
			if err != nil {
				return nil, eris.Wrapf(err, "animator %q", a.Tag)
			}
			def.Script = script
		}

		defs = append(defs, def)
	}
	return defs, nil
}
