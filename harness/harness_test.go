package harness

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/UFCBench/bench"
	"github.com/notargets/UFCBench/lagrange"
	"github.com/notargets/UFCBench/regress"
	"github.com/notargets/UFCBench/ufc"
)

func quietDriver(w io.Writer) *Driver {
	d := NewDriver(w)
	d.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	return d
}

func TestNewTestCell(t *testing.T) {
	c, err := NewTestCell(ufc.Triangle, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, c.TopologicalDimension)
	assert.Equal(t, 2, c.GeometricDimension)
	require.Len(t, c.EntityIndices, 4)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1}, c.EntityIndices[0])
	assert.Equal(t, []int{1, 4, 7, 10, 13, 16}, c.EntityIndices[3])
	assert.Equal(t, []float64{0.561, 0.767, 0.833}, c.Coordinates[1])

	// Coordinates are copies
	c.Coordinates[0][0] = 0
	c2, err := NewTestCell(ufc.Triangle, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.903, c2.Coordinates[0][0])
}

func TestUnhandledShape(t *testing.T) {
	for _, shape := range []ufc.Shape{ufc.Quadrilateral, ufc.Hexahedron} {
		_, err := NewTestCell(shape, 0, 0)
		assert.True(t, errors.Is(err, ErrUnhandledShape), shape.String())
		_, err = NewTestMesh(shape)
		assert.True(t, errors.Is(err, ErrUnhandledShape), shape.String())
	}
}

func TestNewTestMesh(t *testing.T) {
	m, err := NewTestMesh(ufc.Tetrahedron)
	require.NoError(t, err)
	assert.Equal(t, 3, m.TopologicalDimension)
	assert.Equal(t, []int{10001, 10002, 10003, 10004}, m.NumEntities)
}

func TestTestFunction(t *testing.T) {
	c, err := NewTestCell(ufc.Triangle, 0, 0)
	require.NoError(t, err)
	values := make([]float64, 2)
	TestFunction{ValueSize: 2}.Evaluate(values, []float64{0.5, 3}, c)
	assert.InDelta(t, 1.5, values[0], 1e-15)
	assert.InDelta(t, 6.0, values[1], 1e-15)
}

var lineRE = regexp.MustCompile(`^(\d+)_(\S+) =`)

// checkNumbering asserts every value line carries the next sequence number
func checkNumbering(t *testing.T, out string) int {
	t.Helper()
	next := 0
	for _, line := range strings.Split(out, "\n") {
		m := lineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		require.Equal(t, next, n, line)
		next++
	}
	return next
}

func section(out, title string) []string {
	var lines []string
	in := false
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Testing ") {
			in = line == title
			continue
		}
		if in && lineRE.MatchString(line) {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestFormCatalogue(t *testing.T) {
	for _, name := range lagrange.Names() {
		for _, shape := range []ufc.Shape{ufc.Interval, ufc.Triangle, ufc.Tetrahedron} {
			t.Run(name+"_"+shape.String(), func(t *testing.T) {
				f, err := lagrange.Lookup(name, shape)
				require.NoError(t, err)
				var buf bytes.Buffer
				require.NoError(t, quietDriver(&buf).Form(f))
				assert.Greater(t, checkNumbering(t, buf.String()), 4)
			})
		}
	}
}

func TestFormDeterministic(t *testing.T) {
	run := func() string {
		var buf bytes.Buffer
		require.NoError(t, quietDriver(&buf).Form(lagrange.Load(ufc.Triangle)))
		return buf.String()
	}
	first, second := run(), run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("output differs between runs (-first +second):\n%s", diff)
	}

	mismatches, err := regress.Compare(strings.NewReader(first), strings.NewReader(second), 1e-12)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestFormSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, quietDriver(&buf).Form(lagrange.Mass(ufc.Triangle)))
	out := buf.String()

	head := section(out, "Testing form")
	require.Len(t, head, 4)
	assert.Equal(t, "0_num_coefficients = 0", head[0])
	assert.Equal(t, "1_num_cell_domains = 1", head[1])

	assert.Equal(t, 2, strings.Count(out, "Testing finite_element\n"))
	assert.Equal(t, 2, strings.Count(out, "Testing dofmap\n"))

	cell := section(out, "Testing cell_integral")
	require.Len(t, cell, 1)
	fields := strings.Fields(strings.SplitN(cell[0], "=", 2)[1])
	assert.Len(t, fields, 9)
	assert.NotContains(t, out, "exterior_facet_integral")
}

func TestDofMapOutput(t *testing.T) {
	var buf bytes.Buffer
	d := quietDriver(&buf)
	dm := lagrange.NewDofMap(lagrange.NewElement(ufc.Triangle, 1))
	require.NoError(t, d.DofMap(dm, ufc.Triangle))
	out := buf.String()

	assert.Contains(t, out, "_init_mesh = 0\n")
	assert.Contains(t, out, "_global_dimension = 10001\n")
	assert.Contains(t, out, "_tabulate_dofs = 0 0 0\n")
	assert.Contains(t, out, "_tabulate_facet_dofs_0 = 1 2\n")
	assert.Contains(t, out, "_tabulate_entity_dofs_0_2 = 2\n")
	assert.Contains(t, out, "_tabulate_entity_dofs_1_0 =\n")
	assert.Contains(t, out, "_tabulate_coordinates_2 = 0.987 0.783\n")
}

func TestFiniteElementOutput(t *testing.T) {
	var buf bytes.Buffer
	d := quietDriver(&buf)
	require.NoError(t, d.FiniteElement(lagrange.NewVectorElement(ufc.Triangle, 1)))
	out := buf.String()

	// The vector element and its two components
	assert.Equal(t, 3, strings.Count(out, "Testing finite_element\n"))
	assert.Contains(t, out, "0_cell_shape = 1\n")
	assert.Contains(t, out, "_value_dimension_0 = 2\n")
	assert.Contains(t, out, "_num_sub_elements = 2\n")
	checkNumbering(t, out)
}

func TestInteriorFacetPairs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, quietDriver(&buf).Form(lagrange.Jump(ufc.Triangle)))
	lines := section(buf.String(), "Testing interior_facet_integral")
	require.Len(t, lines, 9)
	assert.Contains(t, lines[5], "_tabulate_tensor_1_2 =")
	assert.Len(t, strings.Fields(strings.SplitN(lines[0], "=", 2)[1]), 36)
}

func TestBenchmarkLines(t *testing.T) {
	var buf bytes.Buffer
	d := quietDriver(&buf)
	d.Bench = true
	d.BenchConfig = bench.Config{InitialReps: 2, MinTime: 0}
	require.NoError(t, d.Form(lagrange.Load(ufc.Triangle)))
	out := buf.String()
	assert.Contains(t, out, "timing required 2 iterations\n")
	assert.Contains(t, out, "bench cell_integral::tabulate_tensor: ")
	assert.Contains(t, out, "bench exterior_facet_integral::tabulate_tensor: ")

	// Timing lines do not enter the comparison
	var plain bytes.Buffer
	require.NoError(t, quietDriver(&plain).Form(lagrange.Load(ufc.Triangle)))
	mismatches, err := regress.Compare(&plain, strings.NewReader(out), 0)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

// functional0 is a rank zero form without coefficients
type functional0 struct{}

func (functional0) Signature() string                                         { return "functional0" }
func (functional0) Rank() int                                                 { return 0 }
func (functional0) NumCoefficients() int                                      { return 0 }
func (functional0) NumCellDomains() int                                       { return 0 }
func (functional0) NumExteriorFacetDomains() int                              { return 0 }
func (functional0) NumInteriorFacetDomains() int                              { return 0 }
func (functional0) CreateFiniteElement(int) ufc.FiniteElement                 { return nil }
func (functional0) CreateDofMap(int) ufc.DofMap                               { return nil }
func (functional0) CreateCellIntegral(int) ufc.CellIntegral                   { return nil }
func (functional0) CreateExteriorFacetIntegral(int) ufc.ExteriorFacetIntegral { return nil }
func (functional0) CreateInteriorFacetIntegral(int) ufc.InteriorFacetIntegral { return nil }

func TestFormNoArguments(t *testing.T) {
	var buf bytes.Buffer
	err := quietDriver(&buf).Form(functional0{})
	assert.True(t, errors.Is(err, ErrNoArguments))
	assert.Contains(t, buf.String(), "3_num_interior_facet_domains = 0\n")
}
