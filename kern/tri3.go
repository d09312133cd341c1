// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kern provides element kernels for linear (P1) triangles: the
// tabulation callables invoked by the assembler for each cell
package kern

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// midpoint quadrature on the reference triangle; exact for quadratics
var (
	qpoints = [3][2]float64{{0.5, 0.0}, {0.5, 0.5}, {0.0, 0.5}}
	qweight = 1.0 / 3.0
)

// Area returns the area of the triangle with vertex coordinates X [2][3]
func Area(X [][]float64) float64 {
	x, y := X[0], X[1]
	return 0.5 * math.Abs((x[1]-x[0])*(y[2]-y[0])-(x[2]-x[0])*(y[1]-y[0]))
}

// coef returns the first coefficient value, defaulting to 1
func coef(w []float64) float64 {
	if len(w) > 0 {
		return w[0]
	}
	return 1.0
}

// checkTri validates the coordinates matrix of one triangle
func checkTri(X [][]float64) (err error) {
	if len(X) != 2 || len(X[0]) != 3 || len(X[1]) != 3 {
		return chk.Err("triangle kernels require coordinates arranged as [2][3]")
	}
	return
}

// Mass tabulates the P1 mass matrix of one triangle into Ae [3][3] using
// midpoint quadrature, which integrates the shape-function products
// exactly. A coefficient w[0] (e.g. density) scales the matrix.
func Mass(Ae [][]float64, X [][]float64, w []float64) (err error) {
	if err = checkTri(X); err != nil {
		return
	}
	area := Area(X)
	if area <= 0 {
		return chk.Err("triangle is degenerate: area = %g", area)
	}
	rho := coef(w)
	var N [3]float64
	for _, q := range qpoints {
		N[0], N[1], N[2] = 1.0-q[0]-q[1], q[0], q[1]
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				Ae[i][j] += rho * qweight * area * N[i] * N[j]
			}
		}
	}
	return
}

// Stiffness tabulates the P1 stiffness (Laplace) matrix of one triangle into
// Ae [3][3]. The physical shape-function gradients come from the inverse of
// the cell jacobian. A coefficient w[0] (e.g. conductivity) scales the
// matrix.
func Stiffness(Ae [][]float64, X [][]float64, w []float64) (err error) {
	if err = checkTri(X); err != nil {
		return
	}
	x, y := X[0], X[1]
	J := mat.NewDense(2, 2, []float64{
		x[1] - x[0], x[2] - x[0],
		y[1] - y[0], y[2] - y[0],
	})
	var Ji mat.Dense
	if err = Ji.Inverse(J); err != nil {
		return chk.Err("cell jacobian is singular:\n%v", err)
	}

	// physical gradients: rows of G are the reference gradients of N
	G := mat.NewDense(3, 2, []float64{
		-1, -1,
		1, 0,
		0, 1,
	})
	var P mat.Dense
	P.Mul(G, &Ji)

	area := 0.5 * math.Abs(mat.Det(J))
	kap := coef(w)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Ae[i][j] += kap * area * (P.At(i, 0)*P.At(j, 0) + P.At(i, 1)*P.At(j, 1))
		}
	}
	return
}

// Load tabulates the P1 load vector of one triangle into be [3] for a
// uniform source s = w[0] (default 1): each vertex receives a third of the
// cell integral
func Load(be []float64, X [][]float64, w []float64) (err error) {
	if err = checkTri(X); err != nil {
		return
	}
	if len(be) != 3 {
		return chk.Err("P1 load vector must have 3 entries")
	}
	area := Area(X)
	if area <= 0 {
		return chk.Err("triangle is degenerate: area = %g", area)
	}
	s := coef(w)
	for i := 0; i < 3; i++ {
		be[i] += s * area / 3.0
	}
	return
}
