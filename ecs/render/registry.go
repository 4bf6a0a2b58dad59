package render

// Registry maps model names used by scenes to loaded meshes.
type Registry struct {
	models map[string]*Mesh
}

// NewRegistry returns a registry preloaded with the built-in meshes.
func NewRegistry() *Registry {
	r := &Registry{models: map[string]*Mesh{}}
	r.Register("cube", Cube(1))
	r.Register("pyramid", Pyramid(1))
	r.Register("octahedron", Octahedron(0.5))
	return r
}

// Register stores a mesh by key.
func (r *Registry) Register(key string, m *Mesh) {
	if r == nil || key == "" || m == nil {
		return
	}
	r.models[key] = m
}

// Get returns a mesh by key.
func (r *Registry) Get(key string) (*Mesh, bool) {
	if r == nil || key == "" {
		return nil, false
	}
	m, ok := r.models[key]
	return m, ok
}

// Unload drops every model that is not built in.
func (r *Registry) Unload() {
	if r == nil {
		return
	}
	for key := range r.models {
		switch key {
		case "cube", "pyramid", "octahedron":
		default:
			delete(r.models, key)
		}
	}
}
