package lagrange

import (
	"fmt"
	"sort"

	"github.com/notargets/UFCBench/ufc"
)

// Form is a compiled form over Lagrange elements. Each domain list holds one
// integrand per domain; a nil entry is a domain without an integral.
type Form struct {
	Name     string
	rank     int
	elements []*Element
	cell     []*integrand
	exterior []*integrand
	interior []*integrand
}

func (f *Form) Signature() string {
	sig := fmt.Sprintf("Form('%s'", f.Name)
	for _, e := range f.elements {
		sig += ", " + e.Signature()
	}
	return sig + ")"
}

func (f *Form) Rank() int                    { return f.rank }
func (f *Form) NumCoefficients() int         { return len(f.elements) - f.rank }
func (f *Form) NumCellDomains() int          { return len(f.cell) }
func (f *Form) NumExteriorFacetDomains() int { return len(f.exterior) }
func (f *Form) NumInteriorFacetDomains() int { return len(f.interior) }

func (f *Form) CreateFiniteElement(i int) ufc.FiniteElement {
	e := *f.elements[i]
	return &e
}

func (f *Form) CreateDofMap(i int) ufc.DofMap {
	return NewDofMap(f.elements[i])
}

func (f *Form) CreateCellIntegral(i int) ufc.CellIntegral {
	if f.cell[i] == nil {
		return nil
	}
	return newCellIntegral(f.cell[i])
}

func (f *Form) CreateExteriorFacetIntegral(i int) ufc.ExteriorFacetIntegral {
	if f.exterior[i] == nil {
		return nil
	}
	return newExteriorFacetIntegral(f.exterior[i])
}

func (f *Form) CreateInteriorFacetIntegral(i int) ufc.InteriorFacetIntegral {
	if f.interior[i] == nil {
		return nil
	}
	return newInteriorFacetIntegral(f.interior[i])
}

func newForm(name string, rank int, elements ...*Element) *Form {
	return &Form{Name: name, rank: rank, elements: elements}
}

func (f *Form) integrand(k kind) *integrand {
	return &integrand{kind: k, rank: f.rank, elements: f.elements}
}

// Mass is a = u*v*dx
func Mass(shape ufc.Shape) *Form {
	P1 := NewElement(shape, 1)
	f := newForm("mass", 2, P1, P1)
	f.cell = []*integrand{f.integrand(massKind)}
	return f
}

// VectorMass is a = inner(u, v)*dx on vector P1
func VectorMass(shape ufc.Shape) *Form {
	V := NewVectorElement(shape, 1)
	f := newForm("vector_mass", 2, V, V)
	f.cell = []*integrand{f.integrand(massKind)}
	return f
}

// Stiffness is a = inner(grad(u), grad(v))*dx
func Stiffness(shape ufc.Shape) *Form {
	P1 := NewElement(shape, 1)
	f := newForm("stiffness", 2, P1, P1)
	f.cell = []*integrand{f.integrand(stiffnessKind)}
	return f
}

// Load is L = f*v*dx + f*v*ds(0) with a P1 coefficient f. Exterior facet
// domain 1 has no integral.
func Load(shape ufc.Shape) *Form {
	P1 := NewElement(shape, 1)
	f := newForm("load", 1, P1, P1)
	f.cell = []*integrand{f.integrand(loadKind)}
	f.exterior = []*integrand{f.integrand(loadKind), nil}
	return f
}

// Source is L = c*v*dx with a piecewise constant coefficient c
func Source(shape ufc.Shape) *Form {
	f := newForm("source", 1, NewElement(shape, 1), NewElement(shape, 0))
	f.cell = []*integrand{f.integrand(loadKind)}
	return f
}

// Functional is M = f*dx(0) + f*ds with a P1 coefficient f. Cell domain 1 has
// no integral.
func Functional(shape ufc.Shape) *Form {
	f := newForm("functional", 0, NewElement(shape, 1))
	f.cell = []*integrand{f.integrand(functionalKind), nil}
	f.exterior = []*integrand{f.integrand(functionalKind)}
	return f
}

// Jump is a = jump(u)*jump(v)*dS
func Jump(shape ufc.Shape) *Form {
	P1 := NewElement(shape, 1)
	f := newForm("jump", 2, P1, P1)
	f.interior = []*integrand{f.integrand(jumpKind)}
	return f
}

// Constructor builds a form on the given cell shape
type Constructor func(shape ufc.Shape) *Form

var catalogue = map[string]Constructor{
	"mass":        Mass,
	"vector_mass": VectorMass,
	"stiffness":   Stiffness,
	"load":        Load,
	"source":      Source,
	"functional":  Functional,
	"jump":        Jump,
}

// Names returns the catalogue form names in sorted order
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the catalogue form called name on shape
func Lookup(name string, shape ufc.Shape) (*Form, error) {
	ctor, ok := catalogue[name]
	if !ok {
		return nil, fmt.Errorf("unknown form %q", name)
	}
	if !shape.IsSimplex() {
		return nil, fmt.Errorf("form %s: unsupported cell shape %v", name, shape)
	}
	return ctor(shape), nil
}
