// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Orthonormalize makes the given set of vectors mutually orthogonal with
// unit norm, in place, using modified Gram-Schmidt. Fails if the vectors are
// linearly dependent. Typical use: building a nullspace basis of the
// assembled operator to hand to a solver.
func Orthonormalize(basis [][]float64) (err error) {
	for i, x := range basis {
		for _, y := range basis[:i] {
			alpha := la.VecDot(x, y)
			for k := range x {
				x[k] -= alpha * y[k]
			}
		}
		norm := math.Sqrt(la.VecDot(x, x))
		if norm < 1e-12 {
			return chk.Err("basis vector %d is linearly dependent on the previous ones", i)
		}
		for k := range x {
			x[k] /= norm
		}
	}
	return
}

// IsOrthonormal tells whether the given vectors are mutually orthogonal with
// unit norm, within tol
func IsOrthonormal(basis [][]float64, tol float64) bool {
	for _, x := range basis {
		if math.Abs(math.Sqrt(la.VecDot(x, x))-1.0) > tol {
			return false
		}
	}
	for i, x := range basis {
		for _, y := range basis[i+1:] {
			if math.Abs(la.VecDot(x, y)) > tol {
				return false
			}
		}
	}
	return true
}
