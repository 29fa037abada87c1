package ufc

import "fmt"

type Shape uint8

const (
	Interval Shape = iota
	Triangle
	Quadrilateral
	Tetrahedron
	Hexahedron
)

func (s Shape) String() string {
	switch s {
	case Interval:
		return "interval"
	case Triangle:
		return "triangle"
	case Quadrilateral:
		return "quadrilateral"
	case Tetrahedron:
		return "tetrahedron"
	case Hexahedron:
		return "hexahedron"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

// ParseShape is the inverse of Shape.String
func ParseShape(name string) (Shape, error) {
	for s := Interval; s <= Hexahedron; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown cell shape %q", name)
}

// Dimension returns the topological dimension of the reference cell
func (s Shape) Dimension() int {
	switch s {
	case Interval:
		return 1
	case Triangle, Quadrilateral:
		return 2
	default:
		return 3
	}
}

// NumVertices of the reference cell
func (s Shape) NumVertices() int {
	return s.NumEntities(0)
}

// NumFacets of the reference cell
func (s Shape) NumFacets() int {
	return s.NumEntities(s.Dimension() - 1)
}

// NumEntities returns the number of entities of dimension d in the reference cell
func (s Shape) NumEntities(d int) int {
	if d < 0 || d > 3 {
		return 0
	}
	var table [4]int
	switch s {
	case Interval:
		table = [4]int{2, 1, 0, 0}
	case Triangle:
		table = [4]int{3, 3, 1, 0}
	case Quadrilateral:
		table = [4]int{4, 4, 1, 0}
	case Tetrahedron:
		table = [4]int{4, 6, 4, 1}
	case Hexahedron:
		table = [4]int{8, 12, 6, 1}
	}
	return table[d]
}

// IsSimplex reports whether the shape is an interval, triangle or tetrahedron
func (s Shape) IsSimplex() bool {
	return s == Interval || s == Triangle || s == Tetrahedron
}

// FacetVertices returns the local vertices of a simplex facet. Facet f is the
// facet opposite vertex f.
func (s Shape) FacetVertices(facet int) []int {
	nv := s.NumVertices()
	verts := make([]int, 0, nv-1)
	for v := 0; v < nv; v++ {
		if v != facet {
			verts = append(verts, v)
		}
	}
	return verts
}
