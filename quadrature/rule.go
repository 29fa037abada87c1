// Package quadrature provides Gauss-Jacobi rules on [-1,1] and collapsed
// coordinate rules on the UFC reference simplices: the interval [0,1], the
// triangle (0,0),(1,0),(0,1) and the tetrahedron (0,0,0),(1,0,0),(0,1,0),(0,0,1).
package quadrature

import (
	"fmt"

	"github.com/notargets/UFCBench/ufc"
)

// Rule is a set of points in reference coordinates with weights summing to
// the measure of the reference cell
type Rule struct {
	Points  [][]float64
	Weights []float64
}

func (r Rule) NumPoints() int { return len(r.Weights) }

// numPoints per direction for exact integration of degree q
func numPoints(q int) int {
	if q < 1 {
		return 1
	}
	return (q + 2) / 2
}

// Point is the rule on a 0-dimensional cell
func Point() Rule {
	return Rule{Points: [][]float64{{}}, Weights: []float64{1}}
}

// Interval returns a rule on [0,1] exact for degree q
func Interval(q int) Rule {
	x, w := JacobiGQ(0, 0, numPoints(q)-1)
	r := Rule{Points: make([][]float64, len(x)), Weights: make([]float64, len(x))}
	for i := range x {
		r.Points[i] = []float64{(1 + x[i]) / 2}
		r.Weights[i] = w[i] / 2
	}
	return r
}

// Triangle returns a collapsed Gauss-Jacobi rule on the reference triangle
// exact for degree q
func Triangle(q int) Rule {
	m := numPoints(q) - 1
	a, wa := JacobiGQ(0, 0, m)
	b, wb := JacobiGQ(1, 0, m)
	var r Rule
	for i := range a {
		for j := range b {
			x := (1 + a[i]) * (1 - b[j]) / 4
			y := (1 + b[j]) / 2
			r.Points = append(r.Points, []float64{x, y})
			r.Weights = append(r.Weights, wa[i]*wb[j]/8)
		}
	}
	return r
}

// Tetrahedron returns a collapsed Gauss-Jacobi rule on the reference
// tetrahedron exact for degree q
func Tetrahedron(q int) Rule {
	m := numPoints(q) - 1
	a, wa := JacobiGQ(0, 0, m)
	b, wb := JacobiGQ(1, 0, m)
	c, wc := JacobiGQ(2, 0, m)
	var r Rule
	for i := range a {
		for j := range b {
			for k := range c {
				x := (1 + a[i]) * (1 - b[j]) * (1 - c[k]) / 8
				y := (1 + b[j]) * (1 - c[k]) / 4
				z := (1 + c[k]) / 2
				r.Points = append(r.Points, []float64{x, y, z})
				r.Weights = append(r.Weights, wa[i]*wb[j]*wc[k]/64)
			}
		}
	}
	return r
}

// ForDimension returns the simplex rule of topological dimension d
func ForDimension(d, q int) (Rule, error) {
	switch d {
	case 0:
		return Point(), nil
	case 1:
		return Interval(q), nil
	case 2:
		return Triangle(q), nil
	case 3:
		return Tetrahedron(q), nil
	}
	return Rule{}, fmt.Errorf("no simplex rule in dimension %d", d)
}

// ForShape returns the rule on the reference cell of shape s
func ForShape(s ufc.Shape, q int) (Rule, error) {
	if !s.IsSimplex() {
		return Rule{}, fmt.Errorf("no quadrature for %v cells", s)
	}
	return ForDimension(s.Dimension(), q)
}

// ForFacet returns the rule on a facet of a cell of shape s, in the
// coordinates of the reference facet
func ForFacet(s ufc.Shape, q int) (Rule, error) {
	if !s.IsSimplex() {
		return Rule{}, fmt.Errorf("no quadrature for %v facets", s)
	}
	return ForDimension(s.Dimension()-1, q)
}
