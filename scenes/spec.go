package scenes

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// SceneSpec is the on-disk description of a scene: models to load, animator
// definitions, and entities with their components.
type SceneSpec struct {
	Name      string         `yaml:"name"`
	Models    []ModelSpec    `yaml:"models"`
	Animators []AnimatorSpec `yaml:"animators"`
	Entities  []EntitySpec   `yaml:"entities"`
}

type ModelSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type AnimatorSpec struct {
	Tag        string  `yaml:"tag"`
	Axis       Vec3    `yaml:"axis"`
	Speed      float64 `yaml:"speed"`
	Script     string  `yaml:"script"`
	ScriptFile string  `yaml:"script_file"`
}

// EntitySpec names an entity, its optional parent, and its components keyed
// by component name.
type EntitySpec struct {
	Name       string         `yaml:"name"`
	Parent     string         `yaml:"parent"`
	Components map[string]any `yaml:"components"`
}

type TransformSpec struct {
	Translation Vec3          `yaml:"translation"`
	Rotation    *RotationSpec `yaml:"rotation"`
	Scale       *Vec3         `yaml:"scale"`
}

// RotationSpec accepts one of: Euler angles in degrees composed as
// mgl32.XYZ, an axis and angle in degrees, or a raw quaternion [x, y, z, w].
type RotationSpec struct {
	Euler      *Vec3       `yaml:"euler"`
	Axis       *Vec3       `yaml:"axis"`
	Angle      float32     `yaml:"angle"`
	Quaternion *[4]float32 `yaml:"quat"`
}

type CameraSpec struct {
	Position   Vec3    `yaml:"position"`
	Target     Vec3    `yaml:"target"`
	Up         *Vec3   `yaml:"up"`
	Fovy       float32 `yaml:"fovy"`
	Projection string  `yaml:"projection"`
}

type RenderableSpec struct {
	Model string     `yaml:"model"`
	Tint  *YAMLColor `yaml:"tint"`
}

// Vec3 is a YAML sequence of three numbers.
type Vec3 [3]float32

func (v Vec3) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// Quat resolves the rotation to a unit quaternion.
func (r *RotationSpec) Quat() (mgl32.Quat, error) {
	if r == nil {
		return mgl32.QuatIdent(), nil
	}
	switch {
	case r.Quaternion != nil:
		v := r.Quaternion
		q := mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
		if q.Len() == 0 {
			return mgl32.Quat{}, eris.New("scenes: zero quaternion")
		}
		return q.Normalize(), nil
	case r.Axis != nil:
		axis := r.Axis.Vec3()
		if axis.Len() == 0 {
			return mgl32.Quat{}, eris.New("scenes: zero rotation axis")
		}
		return mgl32.QuatRotate(mgl32.DegToRad(r.Angle), axis.Normalize()), nil
	case r.Euler != nil:
		e := r.Euler
		return mgl32.AnglesToQuat(mgl32.DegToRad(e[0]), mgl32.DegToRad(e[1]), mgl32.DegToRad(e[2]), mgl32.XYZ), nil
	default:
		return mgl32.QuatIdent(), nil
	}
}

// LoadScene reads and parses a scene file by name.
func LoadScene(filename string) (*SceneSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, eris.Wrapf(err, "scenes: load %s", filename)
	}
	spec, err := ParseScene(data)
	if err != nil {
		return nil, eris.Wrapf(err, "scenes: parse %s", filename)
	}
	return spec, nil
}

func ParseScene(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, eris.Wrap(err, "unmarshal scene")
	}
	return &spec, nil
}

// DecodeComponentSpec re-decodes a loosely typed component section into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// YAMLColor parses "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return eris.New("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return eris.Errorf("invalid color format: %s", value.Value)
	}

	var channels [4]uint8
	channels[3] = 0xff
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return eris.Wrapf(err, "invalid color %s", value.Value)
		}
		channels[i] = uint8(v)
	}

	c.RGBA = color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}
