package render

import "github.com/go-gl/mathgl/mgl32"

// Mesh is a wireframe model: vertices in model space and the edges between
// them.
type Mesh struct {
	Name     string
	Vertices []mgl32.Vec3
	Edges    [][2]int
}

// Cube returns an axis-aligned cube of the given edge length centred on the
// origin.
func Cube(size float32) *Mesh {
	h := size / 2
	return &Mesh{
		Name: "cube",
		Vertices: []mgl32.Vec3{
			{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
			{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
		},
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
	}
}

// Pyramid returns a square-based pyramid with its base on y=0.
func Pyramid(size float32) *Mesh {
	h := size / 2
	return &Mesh{
		Name: "pyramid",
		Vertices: []mgl32.Vec3{
			{-h, 0, -h}, {h, 0, -h}, {h, 0, h}, {-h, 0, h},
			{0, size, 0},
		},
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{0, 4}, {1, 4}, {2, 4}, {3, 4},
		},
	}
}

// Octahedron is a coarse stand-in for a sphere.
func Octahedron(radius float32) *Mesh {
	r := radius
	return &Mesh{
		Name: "octahedron",
		Vertices: []mgl32.Vec3{
			{r, 0, 0}, {-r, 0, 0},
			{0, r, 0}, {0, -r, 0},
			{0, 0, r}, {0, 0, -r},
		},
		Edges: [][2]int{
			{0, 2}, {0, 3}, {0, 4}, {0, 5},
			{1, 2}, {1, 3}, {1, 4}, {1, 5},
			{2, 4}, {4, 3}, {3, 5}, {5, 2},
		},
	}
}

// edgesFromTriangles converts an index list of triangles to unique edges.
func edgesFromTriangles(indices []uint32) [][2]int {
	seen := make(map[[2]int]struct{}, len(indices))
	edges := make([][2]int, 0, len(indices))
	add := func(a, b uint32) {
		e := [2]int{int(a), int(b)}
		if e[0] > e[1] {
			e[0], e[1] = e[1], e[0]
		}
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		add(indices[i], indices[i+1])
		add(indices[i+1], indices[i+2])
		add(indices[i+2], indices[i])
	}
	return edges
}
