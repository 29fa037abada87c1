package quadrature

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// JacobiGQ computes the N+1 point Gauss quadrature for the Jacobi weight
// (1-x)^alpha (1+x)^beta on [-1,1], exact for polynomials of degree 2N+1.
// The nodes are the eigenvalues of the symmetric Jacobi matrix, the weights
// come from the first component of its eigenvectors.
func JacobiGQ(alpha, beta float64, N int) (X, W []float64) {
	if N == 0 {
		return []float64{-(alpha - beta) / (alpha + beta + 2.)}, []float64{Gamma0(alpha, beta)}
	}

	h1 := make([]float64, N+1)
	for i := range h1 {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// Main diagonal: -(alpha^2-beta^2)/(h1*(h1+2))
	d0 := make([]float64, N+1)
	fac := beta*beta - alpha*alpha
	for i, h := range h1 {
		d0[i] = fac / (h * (h + 2.))
	}
	if alpha+beta < 10*1.e-16 {
		d0[0] = 0.
	}

	// First off diagonal
	d1 := make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		h := h1[i]
		d1[i] = 2.0 / (h + 2.0) * math.Sqrt(
			ip1*(ip1+alpha+beta)*(ip1+alpha)*(ip1+beta)/(h+1)/(h+3),
		)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(NewSymTriDiagonal(d0, d1), true); !ok {
		panic("eigenvalue decomposition failed")
	}
	X = eig.Values(nil)

	var V mat.Dense
	eig.VectorsTo(&V)
	W = make([]float64, len(X))
	g0 := Gamma0(alpha, beta)
	for i := range W {
		v := V.At(0, i)
		W[i] = v * v * g0
	}
	return X, W
}

// Gamma0 is the integral of the Jacobi weight over [-1,1]
func Gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	return math.Gamma(alpha+1.) * math.Gamma(beta+1.) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

// NewSymTriDiagonal builds a symmetric matrix from its diagonal d0 and first
// off diagonal d1
func NewSymTriDiagonal(d0, d1 []float64) *mat.SymDense {
	n := len(d0)
	T := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		T.SetSym(i, i, d0[i])
		if i < n-1 {
			T.SetSym(i, i+1, d1[i])
		}
	}
	return T
}
