// Package ufc declares the Unified Form-assembly Code interface consumed by the
// harness: the element, dofmap, integral and form objects a form compiler
// generates, plus the mesh, cell and function types passed to them.
//
// All buffers are caller allocated and filled in place, so that repeated calls
// (see package bench) reuse storage.
package ufc

// Mesh carries the global sizes a dofmap needs to number its degrees of freedom
type Mesh struct {
	TopologicalDimension int
	GeometricDimension   int
	NumEntities          []int // Number of mesh entities per topological dimension
}

// Cell is a single mesh cell with its entity numbering and vertex coordinates
type Cell struct {
	Shape                Shape
	TopologicalDimension int
	GeometricDimension   int
	EntityIndices        [][]int     // [dim][local entity] -> global entity index
	Coordinates          [][]float64 // [vertex][component]
}

// Function is a coefficient that can be evaluated at a physical point
type Function interface {
	Evaluate(values, x []float64, c *Cell)
}

type FiniteElement interface {
	Signature() string
	CellShape() Shape
	TopologicalDimension() int
	GeometricDimension() int
	SpaceDimension() int
	ValueRank() int
	ValueDimension(i int) int

	// Basis evaluation at a physical point x of cell c
	EvaluateBasis(i int, values, x []float64, c *Cell)
	EvaluateBasisAll(values, x []float64, c *Cell)
	EvaluateBasisDerivatives(i, n int, values, x []float64, c *Cell)
	EvaluateBasisDerivativesAll(n int, values, x []float64, c *Cell)

	// Degrees of freedom applied to a function
	EvaluateDof(i int, f Function, c *Cell) float64
	EvaluateDofs(values []float64, f Function, c *Cell)
	InterpolateVertexValues(vertexValues, dofValues []float64, c *Cell)

	NumSubElements() int
	CreateSubElement(i int) FiniteElement
}

type DofMap interface {
	Signature() string
	NeedsMeshEntities(d int) bool
	InitMesh(m *Mesh) bool // Returns true if InitCell must be called for every cell
	InitCell(m *Mesh, c *Cell)
	InitCellFinalize()

	GlobalDimension() int
	LocalDimension() int
	MaxLocalDimension() int
	GeometricDimension() int
	TopologicalDimension() int
	NumFacetDofs() int
	NumEntityDofs(d int) int

	TabulateDofs(dofs []int, m *Mesh, c *Cell)
	TabulateFacetDofs(dofs []int, facet int)
	TabulateEntityDofs(dofs []int, d, i int)
	TabulateCoordinates(coordinates [][]float64, c *Cell)

	NumSubDofMaps() int
	CreateSubDofMap(i int) DofMap
}

// CellIntegral computes the element tensor contribution of one cell
type CellIntegral interface {
	TabulateTensor(A []float64, w [][]float64, c *Cell)
}

// ExteriorFacetIntegral computes the contribution of one boundary facet of a cell
type ExteriorFacetIntegral interface {
	TabulateTensor(A []float64, w [][]float64, c *Cell, facet int)
}

// InteriorFacetIntegral computes the macro element tensor of the two cells
// sharing an interior facet. Degrees of freedom of c0 come first.
type InteriorFacetIntegral interface {
	TabulateTensor(A []float64, w [][]float64, c0, c1 *Cell, facet0, facet1 int)
}

// Form is the entry point of a compiled form. Every Create call returns a new
// object owned by the caller. Integral factories may return nil for a domain
// without an integral.
type Form interface {
	Signature() string
	Rank() int
	NumCoefficients() int
	NumCellDomains() int
	NumExteriorFacetDomains() int
	NumInteriorFacetDomains() int

	CreateFiniteElement(i int) FiniteElement
	CreateDofMap(i int) DofMap
	CreateCellIntegral(i int) CellIntegral
	CreateExteriorFacetIntegral(i int) ExteriorFacetIntegral
	CreateInteriorFacetIntegral(i int) InteriorFacetIntegral
}

// Releaser is implemented by objects holding resources that must be freed
// explicitly by their owner. Release is called exactly once.
type Releaser interface {
	Release()
}

// Release calls Release on obj if it implements Releaser
func Release(obj interface{}) {
	if r, ok := obj.(Releaser); ok {
		r.Release()
	}
}
