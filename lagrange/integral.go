package lagrange

import (
	"github.com/notargets/UFCBench/quadrature"
	"github.com/notargets/UFCBench/ufc"
)

type kind uint8

const (
	massKind       kind = iota // u.v
	stiffnessKind              // grad(u):grad(v)
	loadKind                   // f*v, f the first coefficient
	functionalKind             // f
	jumpKind                   // [u][v] across an interior facet
)

func (k kind) String() string {
	return [...]string{"mass", "stiffness", "load", "functional", "jump"}[k]
}

// integrand describes what is integrated. Elements holds the arguments
// followed by the coefficients; coefficients must be scalar.
type integrand struct {
	kind     kind
	rank     int
	elements []*Element
}

// degree of the quadrature needed to integrate exactly
func (in *integrand) degree() (q int) {
	for _, e := range in.elements {
		q += e.Degree
	}
	if in.kind == stiffnessKind {
		q -= 2
	}
	if q < 0 {
		q = 0
	}
	return
}

// point holds the basis and coefficient values at one quadrature point
type point struct {
	scale   float64       // Weight times measure
	phi     [][]float64   // [element][scalar dof]
	grad    [][][]float64 // [element][scalar dof][gdim]
	coef    []float64     // [coefficient]
	gradRef []float64
}

func newPoint(in *integrand) *point {
	var (
		tdim = in.elements[0].TopologicalDimension()
		gdim = in.elements[0].GeometricDimension()
		p    = &point{
			phi:     make([][]float64, len(in.elements)),
			grad:    make([][][]float64, len(in.elements)),
			coef:    make([]float64, len(in.elements)-in.rank),
			gradRef: make([]float64, tdim),
		}
	)
	for a, e := range in.elements {
		ns := e.scalarDimension()
		p.phi[a] = make([]float64, ns)
		p.grad[a] = make([][]float64, ns)
		for i := range p.grad[a] {
			p.grad[a][i] = make([]float64, gdim)
		}
	}
	return p
}

// fill evaluates every element at xi and the coefficients from w
func (p *point) fill(in *integrand, xi []float64, g *affineMap, w [][]float64) {
	for a, e := range in.elements {
		e.referenceBasis(p.phi[a], xi)
		for i := range p.grad[a] {
			e.referenceGrad(p.gradRef, i)
			g.PhysicalGrad(p.grad[a][i], p.gradRef)
		}
	}
	for j := range p.coef {
		p.coef[j] = 0
		for k, phi := range p.phi[in.rank+j] {
			p.coef[j] += w[j][k] * phi
		}
	}
}

// blockIndex splits a dof of e into component and scalar dof
func blockIndex(e *Element, i int) (comp, si int) {
	ns := e.scalarDimension()
	return i / ns, i % ns
}

// bilinear evaluates the integrand for test dof si and trial dof sj
func (in *integrand) bilinear(p *point, si, sj int) float64 {
	if in.kind == stiffnessKind {
		var v float64
		for k, gi := range p.grad[0][si] {
			v += gi * p.grad[1][sj][k]
		}
		return v
	}
	return p.phi[0][si] * p.phi[1][sj]
}

// accumulate adds the contribution of point p to the element tensor A
func (in *integrand) accumulate(A []float64, p *point) {
	switch in.kind {
	case massKind, stiffnessKind:
		ev, eu := in.elements[0], in.elements[1]
		nu := eu.SpaceDimension()
		for i := 0; i < ev.SpaceDimension(); i++ {
			ci, si := blockIndex(ev, i)
			for j := 0; j < nu; j++ {
				cj, sj := blockIndex(eu, j)
				if ci != cj {
					continue
				}
				A[i*nu+j] += p.scale * in.bilinear(p, si, sj)
			}
		}
	case loadKind:
		ev := in.elements[0]
		for i := 0; i < ev.SpaceDimension(); i++ {
			_, si := blockIndex(ev, i)
			A[i] += p.scale * p.coef[0] * p.phi[0][si]
		}
	case functionalKind:
		A[0] += p.scale * p.coef[0]
	}
}

func zero(A []float64) {
	for i := range A {
		A[i] = 0
	}
}

// CellIntegral integrates over one cell. The point buffers are reused between
// calls, so an integral must not be shared between goroutines.
type CellIntegral struct {
	in   *integrand
	rule quadrature.Rule
	pt   *point
}

func newCellIntegral(in *integrand) *CellIntegral {
	rule, err := quadrature.ForShape(in.elements[0].Shape, in.degree())
	if err != nil {
		panic(err)
	}
	return &CellIntegral{in: in, rule: rule, pt: newPoint(in)}
}

func (ci *CellIntegral) TabulateTensor(A []float64, w [][]float64, c *ufc.Cell) {
	zero(A)
	g := newAffineMap(c)
	for q, xi := range ci.rule.Points {
		ci.pt.fill(ci.in, xi, g, w)
		ci.pt.scale = ci.rule.Weights[q] * g.Det
		ci.in.accumulate(A, ci.pt)
	}
}

// facetRule holds the facet quadrature mapped to reference cell coordinates
type facetRule struct {
	weights []float64
	points  [][][]float64 // [facet][point][tdim]
}

func newFacetRule(shape ufc.Shape, degree int) facetRule {
	rule, err := quadrature.ForFacet(shape, degree)
	if err != nil {
		panic(err)
	}
	fr := facetRule{weights: rule.Weights, points: make([][][]float64, shape.NumFacets())}
	for f := range fr.points {
		for _, eta := range rule.Points {
			fr.points[f] = append(fr.points[f], facetPoint(shape, f, eta))
		}
	}
	return fr
}

// ExteriorFacetIntegral integrates over one boundary facet of a cell
type ExteriorFacetIntegral struct {
	in   *integrand
	rule facetRule
	pt   *point
}

func newExteriorFacetIntegral(in *integrand) *ExteriorFacetIntegral {
	return &ExteriorFacetIntegral{
		in:   in,
		rule: newFacetRule(in.elements[0].Shape, in.degree()),
		pt:   newPoint(in),
	}
}

func (ei *ExteriorFacetIntegral) TabulateTensor(A []float64, w [][]float64, c *ufc.Cell, facet int) {
	zero(A)
	g := newAffineMap(c)
	s := facetMeasure(c, facet)
	for q, xi := range ei.rule.points[facet] {
		ei.pt.fill(ei.in, xi, g, w)
		ei.pt.scale = ei.rule.weights[q] * s
		ei.in.accumulate(A, ei.pt)
	}
}

// InteriorFacetIntegral integrates the jump of the arguments across the
// facet shared by two cells. The measure is taken from the first cell.
type InteriorFacetIntegral struct {
	in     *integrand
	rule   facetRule
	p0, p1 *point
}

func newInteriorFacetIntegral(in *integrand) *InteriorFacetIntegral {
	return &InteriorFacetIntegral{
		in:   in,
		rule: newFacetRule(in.elements[0].Shape, in.degree()),
		p0:   newPoint(in),
		p1:   newPoint(in),
	}
}

func (ii *InteriorFacetIntegral) TabulateTensor(A []float64, w [][]float64, c0, c1 *ufc.Cell, facet0, facet1 int) {
	zero(A)
	var (
		g0    = newAffineMap(c0)
		g1    = newAffineMap(c1)
		s     = facetMeasure(c0, facet0)
		ev    = ii.in.elements[0]
		eu    = ii.in.elements[1]
		nv    = ev.SpaceDimension()
		nu    = eu.SpaceDimension()
		sides = [2]*point{ii.p0, ii.p1}
		sign  = [2]float64{1, -1}
	)
	for q := range ii.rule.weights {
		ii.p0.fill(ii.in, ii.rule.points[facet0][q], g0, nil)
		ii.p1.fill(ii.in, ii.rule.points[facet1][q], g1, nil)
		scale := ii.rule.weights[q] * s
		for I := 0; I < 2*nv; I++ {
			sideI, i := I/nv, I%nv
			ci, si := blockIndex(ev, i)
			for J := 0; J < 2*nu; J++ {
				sideJ, j := J/nu, J%nu
				cj, sj := blockIndex(eu, j)
				if ci != cj {
					continue
				}
				v := sides[sideI].phi[0][si] * sides[sideJ].phi[1][sj]
				A[I*2*nu+J] += scale * sign[sideI] * sign[sideJ] * v
			}
		}
	}
}
