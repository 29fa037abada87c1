package lagrange

import (
	"fmt"

	"github.com/notargets/UFCBench/ufc"
)

// DofMap numbers the dofs of an Element. Degree 1 dofs are mesh vertices,
// degree 0 dofs are mesh cells. Vector dofs are blocked by component.
type DofMap struct {
	e               Element
	globalDimension int
}

func NewDofMap(e *Element) *DofMap {
	return &DofMap{e: *e}
}

func (d *DofMap) Signature() string {
	return fmt.Sprintf("FFC dofmap for %s", d.e.Signature())
}

func (d *DofMap) GeometricDimension() int   { return d.e.GeometricDimension() }
func (d *DofMap) TopologicalDimension() int { return d.e.TopologicalDimension() }

// entityDimension is the dimension of the mesh entities carrying dofs
func (d *DofMap) entityDimension() int {
	if d.e.Degree == 0 {
		return d.TopologicalDimension()
	}
	return 0
}

func (d *DofMap) NeedsMeshEntities(dim int) bool {
	return dim == d.entityDimension()
}

// InitMesh records the global dimension. No per cell initialisation is needed.
func (d *DofMap) InitMesh(m *ufc.Mesh) bool {
	d.globalDimension = d.e.Components * m.NumEntities[d.entityDimension()]
	return false
}

func (d *DofMap) InitCell(m *ufc.Mesh, c *ufc.Cell) {}

func (d *DofMap) InitCellFinalize() {}

func (d *DofMap) GlobalDimension() int { return d.globalDimension }

func (d *DofMap) LocalDimension() int { return d.e.SpaceDimension() }

func (d *DofMap) MaxLocalDimension() int { return d.e.SpaceDimension() }

func (d *DofMap) NumFacetDofs() int {
	if d.e.Degree == 0 {
		return 0
	}
	return d.e.Components * d.TopologicalDimension()
}

func (d *DofMap) NumEntityDofs(dim int) int {
	if dim == d.entityDimension() {
		return d.e.Components
	}
	return 0
}

func (d *DofMap) TabulateDofs(dofs []int, m *ufc.Mesh, c *ufc.Cell) {
	var (
		ed     = d.entityDimension()
		ns     = d.e.scalarDimension()
		stride = m.NumEntities[ed]
	)
	for comp := 0; comp < d.e.Components; comp++ {
		for i := 0; i < ns; i++ {
			dofs[comp*ns+i] = comp*stride + c.EntityIndices[ed][i]
		}
	}
}

// TabulateFacetDofs writes the local dofs on the facet opposite vertex facet
func (d *DofMap) TabulateFacetDofs(dofs []int, facet int) {
	if d.e.Degree == 0 {
		return
	}
	var (
		ns    = d.e.scalarDimension()
		verts = d.e.Shape.FacetVertices(facet)
	)
	for comp := 0; comp < d.e.Components; comp++ {
		for k, v := range verts {
			dofs[comp*len(verts)+k] = comp*ns + v
		}
	}
}

func (d *DofMap) TabulateEntityDofs(dofs []int, dim, i int) {
	if dim != d.entityDimension() {
		return
	}
	ns := d.e.scalarDimension()
	for comp := 0; comp < d.e.Components; comp++ {
		if d.e.Degree == 0 {
			dofs[comp] = comp * ns
		} else {
			dofs[comp] = comp*ns + i
		}
	}
}

// TabulateCoordinates writes the physical location of every local dof
func (d *DofMap) TabulateCoordinates(coordinates [][]float64, c *ufc.Cell) {
	ns := d.e.scalarDimension()
	for comp := 0; comp < d.e.Components; comp++ {
		for i := 0; i < ns; i++ {
			copy(coordinates[comp*ns+i], d.e.dofPoint(i, c))
		}
	}
}

func (d *DofMap) NumSubDofMaps() int { return d.e.NumSubElements() }

func (d *DofMap) CreateSubDofMap(i int) ufc.DofMap {
	if i < 0 || i >= d.NumSubDofMaps() {
		return nil
	}
	return NewDofMap(NewElement(d.e.Shape, d.e.Degree))
}
