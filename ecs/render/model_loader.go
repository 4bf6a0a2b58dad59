package render

import (
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/rotisserie/eris"
)

// LoadModel loads a glTF model from path and caches it by key.
func (r *Registry) LoadModel(key, path string) (*Mesh, error) {
	if key == "" {
		return nil, eris.New("render: empty model key")
	}
	if m, ok := r.Get(key); ok {
		return m, nil
	}
	m, err := LoadGLTF(path)
	if err != nil {
		return nil, err
	}
	r.Register(key, m)
	return m, nil
}

// LoadGLTF reads every indexed triangle primitive in a glTF document into one
// wireframe mesh. Node transforms are ignored: the scene hierarchy places the
// model.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "render: open model %s", path)
	}

	mesh := &Mesh{Name: filepath.Base(path)}
	var indices []uint32
	for _, gm := range doc.Meshes {
		for _, primitive := range gm.Primitives {
			if primitive.Indices == nil {
				continue
			}
			posAccessor, ok := primitive.Attributes[gltf.POSITION]
			if !ok {
				continue
			}

			positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
			if err != nil {
				return nil, eris.Wrapf(err, "render: read positions of %q in %s", gm.Name, path)
			}
			primitiveIndices, err := modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
			if err != nil {
				return nil, eris.Wrapf(err, "render: read indices of %q in %s", gm.Name, path)
			}

			offset := uint32(len(mesh.Vertices))
			for _, p := range positions {
				mesh.Vertices = append(mesh.Vertices, mgl32.Vec3{p[0], p[1], p[2]})
			}
			for _, idx := range primitiveIndices {
				indices = append(indices, idx+offset)
			}
		}
	}
	if len(mesh.Vertices) == 0 {
		return nil, eris.Errorf("render: model %s has no indexed geometry", path)
	}
	mesh.Edges = edgesFromTriangles(indices)
	return mesh, nil
}
