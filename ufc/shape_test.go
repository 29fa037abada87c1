package ufc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeTopology(t *testing.T) {
	tests := []struct {
		shape    Shape
		dim      int
		entities [4]int
	}{
		{Interval, 1, [4]int{2, 1, 0, 0}},
		{Triangle, 2, [4]int{3, 3, 1, 0}},
		{Tetrahedron, 3, [4]int{4, 6, 4, 1}},
		{Quadrilateral, 2, [4]int{4, 4, 1, 0}},
		{Hexahedron, 3, [4]int{8, 12, 6, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			assert.Equal(t, tt.dim, tt.shape.Dimension())
			for d := 0; d < 4; d++ {
				assert.Equal(t, tt.entities[d], tt.shape.NumEntities(d), "dim %d", d)
			}
			assert.Equal(t, tt.entities[tt.dim-1], tt.shape.NumFacets())
		})
	}
}

func TestParseShape(t *testing.T) {
	for s := Interval; s <= Hexahedron; s++ {
		got, err := ParseShape(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseShape("prism")
	assert.Error(t, err)
}

func TestFacetVertices(t *testing.T) {
	assert.Equal(t, []int{1}, Interval.FacetVertices(0))
	assert.Equal(t, []int{0, 2}, Triangle.FacetVertices(1))
	assert.Equal(t, []int{0, 1, 2}, Tetrahedron.FacetVertices(3))
}

type countingReleaser struct{ n int }

func (c *countingReleaser) Release() { c.n++ }

func TestRelease(t *testing.T) {
	c := &countingReleaser{}
	Release(c)
	Release(struct{}{})
	Release(nil)
	assert.Equal(t, 1, c.n)
}
