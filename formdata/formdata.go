// Package formdata aggregates the objects needed to assemble one local element
// contribution of a form: a dofmap and finite element per argument, the
// integrals of every domain, and scratch tensors sized from the form.
package formdata

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/notargets/UFCBench/ufc"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrDimensionMismatch = errors.New("mismatching dimensions between finite elements and dofmaps")
	ErrCellShapeMismatch = errors.New("mismatching cell shapes in elements")
)

// FormData owns everything it creates from the form. Slot i < Rank of DofMaps,
// Elements and Dimensions is a test/trial argument, slot Rank+j is coefficient j.
type FormData struct {
	Form ufc.Form

	Rank            int
	NumCoefficients int
	NumArguments    int

	DofMaps    []ufc.DofMap
	Elements   []ufc.FiniteElement
	Dimensions []int

	// Nil entries are domains without an integral
	CellIntegrals          []ufc.CellIntegral
	ExteriorFacetIntegrals []ufc.ExteriorFacetIntegral
	InteriorFacetIntegrals []ufc.InteriorFacetIntegral

	A      []float64   // Element tensor
	MacroA []float64   // Two-cell element tensor for interior facets
	W      [][]float64 // [coefficient][local dof]
	MacroW [][]float64 // [coefficient][local dof of both cells]

	closed bool
}

// New builds the aggregate for form. If a dofmap and its element disagree on
// dimension, or the elements disagree on cell shape, everything created so far
// is released and the error is returned.
func New(form ufc.Form) (fd *FormData, err error) {
	fd = &FormData{
		Form:            form,
		Rank:            form.Rank(),
		NumCoefficients: form.NumCoefficients(),
	}
	fd.NumArguments = fd.Rank + fd.NumCoefficients
	defer func() {
		if err != nil {
			fd.Close()
			fd = nil
		}
	}()

	fd.DofMaps = make([]ufc.DofMap, 0, fd.NumArguments)
	fd.Elements = make([]ufc.FiniteElement, 0, fd.NumArguments)
	fd.Dimensions = make([]int, fd.NumArguments)
	for i := 0; i < fd.NumArguments; i++ {
		dm := form.CreateDofMap(i)
		fd.DofMaps = append(fd.DofMaps, dm)
		el := form.CreateFiniteElement(i)
		fd.Elements = append(fd.Elements, el)

		fd.Dimensions[i] = dm.LocalDimension()
		if sd := el.SpaceDimension(); fd.Dimensions[i] != sd {
			return fd, fmt.Errorf("argument %d: dofmap local dimension %d, element space dimension %d: %w",
				i, fd.Dimensions[i], sd, ErrDimensionMismatch)
		}
		if s0, si := fd.Elements[0].CellShape(), el.CellShape(); s0 != si {
			return fd, fmt.Errorf("argument %d: cell shape %v, argument 0 cell shape %v: %w",
				i, si, s0, ErrCellShapeMismatch)
		}
	}

	fd.CellIntegrals = make([]ufc.CellIntegral, form.NumCellDomains())
	for i := range fd.CellIntegrals {
		fd.CellIntegrals[i] = form.CreateCellIntegral(i)
	}
	fd.ExteriorFacetIntegrals = make([]ufc.ExteriorFacetIntegral, form.NumExteriorFacetDomains())
	for i := range fd.ExteriorFacetIntegrals {
		fd.ExteriorFacetIntegrals[i] = form.CreateExteriorFacetIntegral(i)
	}
	fd.InteriorFacetIntegrals = make([]ufc.InteriorFacetIntegral, form.NumInteriorFacetDomains())
	for i := range fd.InteriorFacetIntegrals {
		fd.InteriorFacetIntegrals[i] = form.CreateInteriorFacetIntegral(i)
	}

	size, macroSize := 1, 1
	for i := 0; i < fd.Rank; i++ {
		size *= fd.Dimensions[i]
		macroSize *= 2 * fd.Dimensions[i]
	}
	fd.A = make([]float64, size)
	fd.MacroA = make([]float64, macroSize)

	fd.W = make([][]float64, fd.NumCoefficients)
	fd.MacroW = make([][]float64, fd.NumCoefficients)
	for i := 0; i < fd.NumCoefficients; i++ {
		dim := fd.Dimensions[fd.Rank+i]
		fd.W[i] = make([]float64, dim)
		fd.MacroW[i] = make([]float64, 2*dim)
	}
	return fd, nil
}

// Close releases every owned object exactly once. Further calls do nothing.
func (fd *FormData) Close() {
	if fd.closed {
		return
	}
	fd.closed = true
	for _, dm := range fd.DofMaps {
		ufc.Release(dm)
	}
	for _, el := range fd.Elements {
		ufc.Release(el)
	}
	for _, in := range fd.CellIntegrals {
		ufc.Release(in)
	}
	for _, in := range fd.ExteriorFacetIntegrals {
		ufc.Release(in)
	}
	for _, in := range fd.InteriorFacetIntegrals {
		ufc.Release(in)
	}
	fd.DofMaps, fd.Elements = nil, nil
	fd.CellIntegrals, fd.ExteriorFacetIntegrals, fd.InteriorFacetIntegrals = nil, nil, nil
	fd.A, fd.MacroA, fd.W, fd.MacroW = nil, nil, nil, nil
}

// CellShape is the cell shape shared by all elements
func (fd *FormData) CellShape() ufc.Shape {
	return fd.Elements[0].CellShape()
}

func (fd *FormData) GeometricDimension() int {
	return fd.Elements[0].GeometricDimension()
}

// tensorDims is the matrix view of A used for printing. Ranks above 2 are
// shown as 1x1.
func (fd *FormData) tensorDims() (dim0, dim1 int) {
	dim0, dim1 = 1, 1
	switch fd.Rank {
	case 1:
		dim1 = fd.Dimensions[0]
	case 2:
		dim0, dim1 = fd.Dimensions[0], fd.Dimensions[1]
	}
	return
}

// ATensor returns the rank 0, 1 or 2 element tensor as a matrix sharing the
// storage of A. All dimensions must be nonzero.
func (fd *FormData) ATensor() *mat.Dense {
	dim0, dim1 := fd.tensorDims()
	return mat.NewDense(dim0, dim1, fd.A[:dim0*dim1])
}

// TensorString renders A row by row in brackets
func (fd *FormData) TensorString() string {
	var sb strings.Builder
	fd.PrintTensor(&sb)
	return sb.String()
}

func (fd *FormData) PrintTensor(w io.Writer) {
	dim0, dim1 := fd.tensorDims()
	fmt.Fprintln(w, "[")
	k := 0
	for i := 0; i < dim0; i++ {
		for j := 0; j < dim1; j++ {
			fmt.Fprintf(w, "%g, ", fd.A[k])
			k++
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "]")
	fmt.Fprintln(w)
}

// String returns a summary of the aggregate
func (fd *FormData) String() string {
	var sb strings.Builder
	sb.WriteString("=== FormData Summary ===\n")
	if fd.Form != nil {
		sb.WriteString(fmt.Sprintf("  Form: %s\n", fd.Form.Signature()))
	}
	sb.WriteString(fmt.Sprintf("  Rank: %d\n", fd.Rank))
	sb.WriteString(fmt.Sprintf("  Coefficients: %d\n", fd.NumCoefficients))
	sb.WriteString(fmt.Sprintf("  Dimensions: %v\n", fd.Dimensions))
	if len(fd.Elements) > 0 {
		sb.WriteString(fmt.Sprintf("  Cell shape: %v\n", fd.CellShape()))
	}
	sb.WriteString(fmt.Sprintf("  Integrals (cell, exterior facet, interior facet): %d, %d, %d\n",
		len(fd.CellIntegrals), len(fd.ExteriorFacetIntegrals), len(fd.InteriorFacetIntegrals)))
	sb.WriteString(fmt.Sprintf("  Element tensor size: %d\n", len(fd.A)))
	sb.WriteString(fmt.Sprintf("  Macro element tensor size: %d\n", len(fd.MacroA)))
	sb.WriteString("========================\n")
	return sb.String()
}
