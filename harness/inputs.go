package harness

import (
	"errors"
	"fmt"

	"github.com/notargets/UFCBench/ufc"
)

var ErrUnhandledShape = errors.New("unhandled cell shape")

// testCoordinates are the fixed "random" vertex coordinates of every test cell
var testCoordinates = [4][3]float64{
	{0.903, 0.341, 0.457},
	{0.561, 0.767, 0.833},
	{0.987, 0.783, 0.191},
	{0.123, 0.561, 0.667},
}

func simplexDimension(shape ufc.Shape) (int, error) {
	switch shape {
	case ufc.Interval, ufc.Triangle, ufc.Tetrahedron:
		return shape.Dimension(), nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnhandledShape, shape)
}

// NewTestMesh returns a mesh with fixed entity counts
func NewTestMesh(shape ufc.Shape) (*ufc.Mesh, error) {
	d, err := simplexDimension(shape)
	if err != nil {
		return nil, err
	}
	return &ufc.Mesh{
		TopologicalDimension: d,
		GeometricDimension:   d,
		NumEntities:          []int{10001, 10002, 10003, 10004},
	}, nil
}

// NewTestCell returns a cell with fixed coordinates and entity indices
// i*j+offset. A gdim of 0 means the topological dimension.
func NewTestCell(shape ufc.Shape, gdim, offset int) (*ufc.Cell, error) {
	d, err := simplexDimension(shape)
	if err != nil {
		return nil, err
	}
	if gdim == 0 {
		gdim = d
	}
	c := &ufc.Cell{
		Shape:                shape,
		TopologicalDimension: d,
		GeometricDimension:   gdim,
		EntityIndices:        make([][]int, 4),
		Coordinates:          make([][]float64, 4),
	}
	for i := range c.EntityIndices {
		c.EntityIndices[i] = make([]int, 6)
		for j := range c.EntityIndices[i] {
			c.EntityIndices[i][j] = i*j + offset
		}
	}
	for i := range c.Coordinates {
		c.Coordinates[i] = append([]float64(nil), testCoordinates[i][:]...)
	}
	return c, nil
}

// TestFunction evaluates to prod_j (i+1)*x_j in component i
type TestFunction struct {
	ValueSize int
}

func (f TestFunction) Evaluate(values, x []float64, c *ufc.Cell) {
	for i := 0; i < f.ValueSize; i++ {
		values[i] = 1.0
		for j := 0; j < c.GeometricDimension; j++ {
			values[i] *= float64(i+1) * x[j]
		}
	}
}
