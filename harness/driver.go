// Package harness drives every operation of a UFC implementation with fixed
// synthetic inputs and prints the results for regression comparison.
package harness

import (
	"errors"
	"io"
	"log/slog"

	"github.com/notargets/UFCBench/bench"
	"github.com/notargets/UFCBench/formdata"
	"github.com/notargets/UFCBench/regress"
	"github.com/notargets/UFCBench/ufc"
)

var ErrNoArguments = errors.New("form has no arguments to take the cell shape from")

// Driver holds the output state shared by all tests of one run
type Driver struct {
	P             *regress.Printer
	MaxDerivative int  // Highest derivative order passed to the basis
	Bench         bool // Time tensor tabulation after printing it
	BenchConfig   bench.Config
	Log           *slog.Logger
}

func NewDriver(w io.Writer) *Driver {
	return &Driver{
		P:             regress.NewPrinter(w),
		MaxDerivative: 2,
		BenchConfig:   bench.DefaultConfig(),
		Log:           slog.Default(),
	}
}

func (d *Driver) benchmark(name string, op func()) {
	r := bench.Run(op, d.BenchConfig)
	bench.Report(d.P.W, name, r)
	d.Log.Info("benchmark", "operation", name, "reps", r.Reps, "per_call", r.PerCall)
}

func zero(A []float64) {
	for i := range A {
		A[i] = 0
	}
}

func power(base, n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= base
	}
	return p
}

// FiniteElement prints every element query at x_i = 0.1*i, then recurses
// into the sub elements
func (d *Driver) FiniteElement(e ufc.FiniteElement) error {
	d.P.Header("Testing finite_element")

	c, err := NewTestCell(e.CellShape(), e.TopologicalDimension(), 0)
	if err != nil {
		return err
	}
	valueSize := 1
	for i := 0; i < e.ValueRank(); i++ {
		valueSize *= e.ValueDimension(i)
	}
	var (
		spaceDim       = e.SpaceDimension()
		derivativeSize = power(c.GeometricDimension, d.MaxDerivative)
		values         = make([]float64, spaceDim*valueSize*derivativeSize)
		dofValues      = make([]float64, spaceDim)
		vertexValues   = make([]float64, (c.TopologicalDimension+1)*valueSize)
		x              = make([]float64, c.GeometricDimension)
		f              = TestFunction{ValueSize: valueSize}
	)
	for i := range x {
		x[i] = 0.1 * float64(i)
	}

	d.P.Int("cell_shape", int(e.CellShape()))
	d.P.Int("space_dimension", spaceDim)
	d.P.Int("value_rank", e.ValueRank())
	for i := 0; i < e.ValueRank(); i++ {
		d.P.Int("value_dimension", e.ValueDimension(i), i)
	}

	for i := 0; i < spaceDim; i++ {
		e.EvaluateBasis(i, values, x, c)
		d.P.Floats("evaluate_basis:", values[:valueSize], i)
	}
	e.EvaluateBasisAll(values, x, c)
	d.P.Floats("evaluate_basis_all", values[:spaceDim*valueSize])

	for i := 0; i < spaceDim; i++ {
		for n := 0; n <= d.MaxDerivative; n++ {
			nd := power(c.GeometricDimension, n)
			e.EvaluateBasisDerivatives(i, n, values, x, c)
			d.P.Floats("evaluate_basis_derivatives", values[:valueSize*nd], i, n)
		}
	}
	for n := 0; n <= d.MaxDerivative; n++ {
		nd := power(c.GeometricDimension, n)
		e.EvaluateBasisDerivativesAll(n, values, x, c)
		d.P.Floats("evaluate_basis_derivatives_all", values[:spaceDim*valueSize*nd], n)
	}

	for i := 0; i < spaceDim; i++ {
		dofValues[i] = e.EvaluateDof(i, f, c)
		d.P.Float("evaluate_dof", dofValues[i], i)
	}
	e.EvaluateDofs(values, f, c)
	d.P.Floats("evaluate_dofs", values[:spaceDim])

	e.InterpolateVertexValues(vertexValues, dofValues, c)
	d.P.Floats("interpolate_vertex_values", vertexValues)

	d.P.Int("num_sub_elements", e.NumSubElements())
	for i := 0; i < e.NumSubElements(); i++ {
		sub := e.CreateSubElement(i)
		err := d.FiniteElement(sub)
		ufc.Release(sub)
		if err != nil {
			return err
		}
	}
	return nil
}

// DofMap prints every dofmap query on the test mesh and cell of shape
func (d *Driver) DofMap(dm ufc.DofMap, shape ufc.Shape) error {
	d.P.Header("Testing dofmap")

	m, err := NewTestMesh(shape)
	if err != nil {
		return err
	}
	c, err := NewTestCell(shape, dm.TopologicalDimension(), 0)
	if err != nil {
		return err
	}
	var (
		n           = dm.MaxLocalDimension()
		dofs        = make([]int, n)
		numFacets   = c.TopologicalDimension + 1
		coordinates = make([][]float64, n)
	)
	for i := range coordinates {
		coordinates[i] = make([]float64, c.GeometricDimension)
	}

	for dim := 0; dim <= c.TopologicalDimension; dim++ {
		d.P.Bool("needs_mesh_entities", dm.NeedsMeshEntities(dim), dim)
	}
	d.P.Bool("init_mesh", dm.InitMesh(m))
	// Cell initialisation is not used by generated dofmaps
	d.P.Int("init_cell", 0)
	d.P.Int("init_cell_finalize", 0)
	d.P.Int("global_dimension", dm.GlobalDimension())
	d.P.Int("local_dimension", dm.LocalDimension())
	d.P.Int("max_local_dimension", dm.MaxLocalDimension())
	d.P.Int("geometric_dimension", dm.GeometricDimension())
	d.P.Int("num_facet_dofs", dm.NumFacetDofs())
	for dim := 0; dim <= c.TopologicalDimension; dim++ {
		d.P.Int("num_entity_dofs", dm.NumEntityDofs(dim), dim)
	}

	dm.TabulateDofs(dofs, m, c)
	d.P.Ints("tabulate_dofs", dofs[:dm.LocalDimension()])

	for facet := 0; facet < numFacets; facet++ {
		dm.TabulateFacetDofs(dofs, facet)
		d.P.Ints("tabulate_facet_dofs", dofs[:dm.NumFacetDofs()], facet)
	}

	for dim := 0; dim <= c.TopologicalDimension; dim++ {
		for i := 0; i < shape.NumEntities(dim); i++ {
			dm.TabulateEntityDofs(dofs, dim, i)
			d.P.Ints("tabulate_entity_dofs", dofs[:dm.NumEntityDofs(dim)], dim, i)
		}
	}

	dm.TabulateCoordinates(coordinates, c)
	for i := 0; i < dm.LocalDimension(); i++ {
		d.P.Floats("tabulate_coordinates", coordinates[i], i)
	}

	d.P.Int("num_sub_dofmaps", dm.NumSubDofMaps())
	for i := 0; i < dm.NumSubDofMaps(); i++ {
		sub := dm.CreateSubDofMap(i)
		err := d.DofMap(sub, shape)
		ufc.Release(sub)
		if err != nil {
			return err
		}
	}
	return nil
}

// CellIntegral tabulates A on the test cell
func (d *Driver) CellIntegral(in ufc.CellIntegral, shape ufc.Shape, gdim int, A []float64, w [][]float64) error {
	d.P.Header("Testing cell_integral")

	c, err := NewTestCell(shape, gdim, 0)
	if err != nil {
		return err
	}
	zero(A)
	in.TabulateTensor(A, w, c)
	d.P.Floats("tabulate_tensor", A)

	if d.Bench {
		d.benchmark("cell_integral::tabulate_tensor", func() { in.TabulateTensor(A, w, c) })
	}
	return nil
}

// ExteriorFacetIntegral tabulates A on every facet of the test cell
func (d *Driver) ExteriorFacetIntegral(in ufc.ExteriorFacetIntegral, shape ufc.Shape, gdim int, A []float64, w [][]float64) error {
	d.P.Header("Testing exterior_facet_integral")

	c, err := NewTestCell(shape, gdim, 0)
	if err != nil {
		return err
	}
	numFacets := c.TopologicalDimension + 1
	for facet := 0; facet < numFacets; facet++ {
		zero(A)
		in.TabulateTensor(A, w, c, facet)
		d.P.Floats("tabulate_tensor", A, facet)
	}

	if d.Bench {
		d.benchmark("exterior_facet_integral::tabulate_tensor", func() { in.TabulateTensor(A, w, c, 0) })
	}
	return nil
}

// InteriorFacetIntegral tabulates the macro tensor for every facet pair of
// two test cells with entity offsets 0 and 1
func (d *Driver) InteriorFacetIntegral(in ufc.InteriorFacetIntegral, shape ufc.Shape, gdim int, macroA []float64, w [][]float64) error {
	d.P.Header("Testing interior_facet_integral")

	c0, err := NewTestCell(shape, gdim, 0)
	if err != nil {
		return err
	}
	c1, err := NewTestCell(shape, gdim, 1)
	if err != nil {
		return err
	}
	numFacets := c0.TopologicalDimension + 1
	for facet0 := 0; facet0 < numFacets; facet0++ {
		for facet1 := 0; facet1 < numFacets; facet1++ {
			zero(macroA)
			in.TabulateTensor(macroA, w, c0, c1, facet0, facet1)
			d.P.Floats("tabulate_tensor", macroA, facet0, facet1)
		}
	}

	if d.Bench {
		d.benchmark("interior_facet_integral::tabulate_tensor", func() { in.TabulateTensor(macroA, w, c0, c1, 0, 0) })
	}
	return nil
}

// Form aggregates the form and drives all its elements, dofmaps and integrals
func (d *Driver) Form(form ufc.Form) error {
	d.P.Header("Testing form")

	fd, err := formdata.New(form)
	if err != nil {
		return err
	}
	defer fd.Close()
	d.Log.Debug("form aggregated", "signature", form.Signature(), "rank", fd.Rank,
		"coefficients", fd.NumCoefficients, "dimensions", fd.Dimensions)

	// Dummy coefficients; the plain vectors are prefixes of the macro ones
	for i := range fd.MacroW {
		for j := range fd.MacroW[i] {
			fd.MacroW[i][j] = 0.1 * float64((i+1)*(j+1))
		}
		copy(fd.W[i], fd.MacroW[i])
	}

	d.P.Int("num_coefficients", form.NumCoefficients())
	d.P.Int("num_cell_domains", form.NumCellDomains())
	d.P.Int("num_exterior_facet_domains", form.NumExteriorFacetDomains())
	d.P.Int("num_interior_facet_domains", form.NumInteriorFacetDomains())

	if fd.NumArguments == 0 {
		return ErrNoArguments
	}
	shape, gdim := fd.CellShape(), fd.GeometricDimension()

	for _, e := range fd.Elements {
		if err := d.FiniteElement(e); err != nil {
			return err
		}
	}
	for _, dm := range fd.DofMaps {
		if err := d.DofMap(dm, shape); err != nil {
			return err
		}
	}
	for _, in := range fd.CellIntegrals {
		if in == nil {
			continue
		}
		if err := d.CellIntegral(in, shape, gdim, fd.A, fd.W); err != nil {
			return err
		}
	}
	for _, in := range fd.ExteriorFacetIntegrals {
		if in == nil {
			continue
		}
		if err := d.ExteriorFacetIntegral(in, shape, gdim, fd.A, fd.W); err != nil {
			return err
		}
	}
	for _, in := range fd.InteriorFacetIntegrals {
		if in == nil {
			continue
		}
		if err := d.InteriorFacetIntegral(in, shape, gdim, fd.MacroA, fd.MacroW); err != nil {
			return err
		}
	}
	return nil
}
