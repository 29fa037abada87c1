// Package lagrange implements the UFC interface for low order Lagrange
// elements on simplices. It is the reference implementation driven by the
// harness and its regression baselines.
package lagrange

import (
	"fmt"

	"github.com/notargets/UFCBench/ufc"
)

// Element is a Lagrange element of degree 0 (discontinuous, one dof at the
// cell midpoint) or degree 1 (one dof per vertex). A Vector element has value
// rank 1 and its dofs are blocked by component, even with a single component.
type Element struct {
	Shape      ufc.Shape
	Degree     int
	Components int
	Vector     bool
}

func NewElement(shape ufc.Shape, degree int) *Element {
	if !shape.IsSimplex() {
		panic(fmt.Sprintf("lagrange: unsupported cell shape %v", shape))
	}
	if degree < 0 || degree > 1 {
		panic(fmt.Sprintf("lagrange: unsupported degree %d", degree))
	}
	return &Element{Shape: shape, Degree: degree, Components: 1}
}

// NewVectorElement has one component per geometric dimension
func NewVectorElement(shape ufc.Shape, degree int) *Element {
	e := NewElement(shape, degree)
	e.Components = shape.Dimension()
	e.Vector = true
	return e
}

func (e *Element) family() string {
	if e.Degree == 0 {
		return "Discontinuous Lagrange"
	}
	return "Lagrange"
}

func (e *Element) Signature() string {
	if e.Vector {
		return fmt.Sprintf("VectorElement('%s', '%v', %d, %d)", e.family(), e.Shape, e.Degree, e.Components)
	}
	return fmt.Sprintf("FiniteElement('%s', '%v', %d)", e.family(), e.Shape, e.Degree)
}

func (e *Element) CellShape() ufc.Shape      { return e.Shape }
func (e *Element) TopologicalDimension() int { return e.Shape.Dimension() }
func (e *Element) GeometricDimension() int   { return e.Shape.Dimension() }
func (e *Element) SpaceDimension() int       { return e.Components * e.scalarDimension() }

func (e *Element) ValueRank() int {
	if e.Vector {
		return 1
	}
	return 0
}

func (e *Element) ValueDimension(i int) int {
	if e.Vector && i == 0 {
		return e.Components
	}
	return 1
}

func (e *Element) scalarDimension() int {
	if e.Degree == 0 {
		return 1
	}
	return e.Shape.NumVertices()
}

// referenceBasis writes the scalar basis at reference point xi into phi
func (e *Element) referenceBasis(phi, xi []float64) {
	if e.Degree == 0 {
		phi[0] = 1
		return
	}
	phi[0] = 1
	for k, x := range xi {
		phi[0] -= x
		phi[k+1] = x
	}
}

// referenceGrad writes the reference gradient of scalar basis function i
func (e *Element) referenceGrad(grad []float64, i int) {
	for k := range grad {
		grad[k] = 0
	}
	if e.Degree == 0 {
		return
	}
	if i == 0 {
		for k := range grad {
			grad[k] = -1
		}
		return
	}
	grad[i-1] = 1
}

func (e *Element) valueSize() int { return e.Components }

// numDerivatives of order n in the geometric dimension
func (e *Element) numDerivatives(n int) int {
	nd := 1
	for j := 0; j < n; j++ {
		nd *= e.GeometricDimension()
	}
	return nd
}

// EvaluateBasis writes the value_size values of basis function i at x
func (e *Element) EvaluateBasis(i int, values, x []float64, c *ufc.Cell) {
	e.EvaluateBasisDerivatives(i, 0, values, x, c)
}

func (e *Element) EvaluateBasisAll(values, x []float64, c *ufc.Cell) {
	e.EvaluateBasisDerivativesAll(0, values, x, c)
}

// EvaluateBasisDerivatives writes all derivatives of order n of basis
// function i at x, laid out [component][derivative]. Derivatives of order two
// and higher vanish for these elements.
func (e *Element) EvaluateBasisDerivatives(i, n int, values, x []float64, c *ufc.Cell) {
	var (
		nd   = e.numDerivatives(n)
		ns   = e.scalarDimension()
		comp = i / ns
		si   = i % ns
	)
	for k := 0; k < e.valueSize()*nd; k++ {
		values[k] = 0
	}
	switch n {
	case 0:
		g := newAffineMap(c)
		phi := make([]float64, ns)
		e.referenceBasis(phi, g.ToReference(x))
		values[comp] = phi[si]
	case 1:
		g := newAffineMap(c)
		gradRef := make([]float64, g.TDim)
		e.referenceGrad(gradRef, si)
		g.PhysicalGrad(values[comp*nd:(comp+1)*nd], gradRef)
	}
}

func (e *Element) EvaluateBasisDerivativesAll(n int, values, x []float64, c *ufc.Cell) {
	size := e.valueSize() * e.numDerivatives(n)
	for i := 0; i < e.SpaceDimension(); i++ {
		e.EvaluateBasisDerivatives(i, n, values[i*size:(i+1)*size], x, c)
	}
}

// dofPoint returns the physical evaluation point of scalar dof si
func (e *Element) dofPoint(si int, c *ufc.Cell) []float64 {
	if e.Degree == 0 {
		return newAffineMap(c).ToPhysical(referenceMidpoint(c.TopologicalDimension))
	}
	return c.Coordinates[si][:c.GeometricDimension]
}

// EvaluateDof is point evaluation of the dof's component of f
func (e *Element) EvaluateDof(i int, f ufc.Function, c *ufc.Cell) float64 {
	ns := e.scalarDimension()
	values := make([]float64, e.valueSize())
	f.Evaluate(values, e.dofPoint(i%ns, c), c)
	return values[i/ns]
}

func (e *Element) EvaluateDofs(values []float64, f ufc.Function, c *ufc.Cell) {
	for i := 0; i < e.SpaceDimension(); i++ {
		values[i] = e.EvaluateDof(i, f, c)
	}
}

// InterpolateVertexValues writes the function with the given dofs at each
// vertex, laid out [vertex][component]
func (e *Element) InterpolateVertexValues(vertexValues, dofValues []float64, c *ufc.Cell) {
	var (
		nv = e.Shape.NumVertices()
		ns = e.scalarDimension()
		vs = e.valueSize()
	)
	for v := 0; v < nv; v++ {
		for comp := 0; comp < vs; comp++ {
			if e.Degree == 0 {
				vertexValues[v*vs+comp] = dofValues[comp*ns]
			} else {
				vertexValues[v*vs+comp] = dofValues[comp*ns+v]
			}
		}
	}
}

func (e *Element) NumSubElements() int {
	if e.Vector {
		return e.Components
	}
	return 0
}

// CreateSubElement returns the scalar element of component i
func (e *Element) CreateSubElement(i int) ufc.FiniteElement {
	if i < 0 || i >= e.NumSubElements() {
		return nil
	}
	return NewElement(e.Shape, e.Degree)
}
