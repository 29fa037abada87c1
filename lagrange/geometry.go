package lagrange

import (
	"fmt"
	"math"

	"github.com/notargets/UFCBench/ufc"
	"gonum.org/v1/gonum/mat"
)

// affineMap is the map x = x0 + J xi from the reference simplex onto a
// physical cell. Cells may be embedded in a higher geometric dimension; K is
// then the left inverse (J^T J)^-1 J^T and Det the volume scaling.
type affineMap struct {
	TDim, GDim int
	X0         []float64
	J          *mat.Dense // [GDim x TDim]
	K          *mat.Dense // [TDim x GDim]
	Det        float64
}

func newAffineMap(c *ufc.Cell) *affineMap {
	var (
		tdim = c.TopologicalDimension
		gdim = c.GeometricDimension
		J    = mat.NewDense(gdim, tdim, nil)
		JtJ  mat.Dense
		inv  mat.Dense
	)
	x0 := append([]float64(nil), c.Coordinates[0][:gdim]...)
	for k := 0; k < tdim; k++ {
		for i := 0; i < gdim; i++ {
			J.Set(i, k, c.Coordinates[k+1][i]-x0[i])
		}
	}
	JtJ.Mul(J.T(), J)
	if err := inv.Inverse(&JtJ); err != nil {
		panic(fmt.Errorf("degenerate %v cell: %w", c.Shape, err))
	}
	K := mat.NewDense(tdim, gdim, nil)
	K.Mul(&inv, J.T())
	return &affineMap{
		TDim: tdim,
		GDim: gdim,
		X0:   x0,
		J:    J,
		K:    K,
		Det:  math.Sqrt(math.Abs(mat.Det(&JtJ))),
	}
}

// ToReference maps the physical point x to reference coordinates
func (g *affineMap) ToReference(x []float64) []float64 {
	dx := make([]float64, g.GDim)
	for i := range dx {
		dx[i] = x[i] - g.X0[i]
	}
	xi := mat.NewVecDense(g.TDim, nil)
	xi.MulVec(g.K, mat.NewVecDense(g.GDim, dx))
	return xi.RawVector().Data
}

// ToPhysical maps reference coordinates xi to the physical cell
func (g *affineMap) ToPhysical(xi []float64) []float64 {
	x := append([]float64(nil), g.X0...)
	for i := range x {
		for k := 0; k < g.TDim; k++ {
			x[i] += g.J.At(i, k) * xi[k]
		}
	}
	return x
}

// PhysicalGrad writes K^T gradRef into grad
func (g *affineMap) PhysicalGrad(grad, gradRef []float64) {
	for j := 0; j < g.GDim; j++ {
		grad[j] = 0
		for k := 0; k < g.TDim; k++ {
			grad[j] += g.K.At(k, j) * gradRef[k]
		}
	}
}

// referenceVertex returns vertex v of the reference simplex of dimension tdim
func referenceVertex(tdim, v int) []float64 {
	xi := make([]float64, tdim)
	if v > 0 {
		xi[v-1] = 1
	}
	return xi
}

// facetPoint maps eta on the reference facet to reference cell coordinates of
// the given facet
func facetPoint(shape ufc.Shape, facet int, eta []float64) []float64 {
	tdim := shape.Dimension()
	verts := shape.FacetVertices(facet)
	xi := referenceVertex(tdim, verts[0])
	for k := range eta {
		vk := referenceVertex(tdim, verts[k+1])
		v0 := referenceVertex(tdim, verts[0])
		for i := range xi {
			xi[i] += eta[k] * (vk[i] - v0[i])
		}
	}
	return xi
}

// facetMeasure is the scaling from the reference facet to the physical facet
func facetMeasure(c *ufc.Cell, facet int) float64 {
	verts := c.Shape.FacetVertices(facet)
	fdim := len(verts) - 1
	if fdim == 0 {
		return 1
	}
	gdim := c.GeometricDimension
	F := mat.NewDense(gdim, fdim, nil)
	x0 := c.Coordinates[verts[0]]
	for k := 0; k < fdim; k++ {
		xk := c.Coordinates[verts[k+1]]
		for i := 0; i < gdim; i++ {
			F.Set(i, k, xk[i]-x0[i])
		}
	}
	var FtF mat.Dense
	FtF.Mul(F.T(), F)
	return math.Sqrt(math.Abs(mat.Det(&FtF)))
}

// referenceMidpoint is the barycentre of the reference simplex
func referenceMidpoint(tdim int) []float64 {
	xi := make([]float64, tdim)
	for k := range xi {
		xi[k] = 1 / float64(tdim+1)
	}
	return xi
}
