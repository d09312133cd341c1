// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/jamestiotio/dolfinx/kern"
	"github.com/jamestiotio/dolfinx/msh"
)

// Test_poisson01 assembles the Laplace operator on the unit square split into
// two P1 triangles, with u = 1 prescribed on the bottom edge and no source.
// The constant field u = 1 must satisfy the assembled system exactly.
func Test_poisson01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("poisson01. two-triangle Laplace problem")

	m, err := msh.New(2, [][]float64{
		{0, 0}, {1, 0}, {0, 1}, {1, 1},
	}, [][]int{
		{0, 1, 3},
		{0, 3, 2},
	})
	if err != nil {
		tst.Errorf("mesh generation failed:\n%v", err)
		return
	}
	space := &FunctionSpace{Name: "u", Dofs: &msh.ScalarDofs{M: m}}

	a, err := NewBilinearForm(m, space, space, kern.Stiffness)
	if err != nil {
		tst.Errorf("NewBilinearForm failed:\n%v", err)
		return
	}
	L, err := NewLinearForm(m, space, kern.Load, 0.0)
	if err != nil {
		tst.Errorf("NewLinearForm failed:\n%v", err)
		return
	}

	ebcs := new(Dirichlets)
	ebcs.Add(space, MethodPointwise, map[int]float64{0: 1.0, 1: 1.0})

	asm, err := NewAssembler([][]*Form{{a}}, []*Form{L}, ebcs)
	if err != nil {
		tst.Errorf("NewAssembler failed:\n%v", err)
		return
	}
	A := new(SpMatrix)
	b := new(DsVector)
	if err = asm.AssembleSystem(A, b); err != nil {
		tst.Errorf("AssembleSystem failed:\n%v", err)
		return
	}

	Ad := A.ToDense()
	chk.Deep2(tst, "A", 1e-15, Ad, [][]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, -0.5},
		{0, 0, -0.5, 1},
	})
	chk.Array(tst, "b", 1e-15, b.Values(), []float64{1, 1, 0.5, 0.5})

	// u = 1 everywhere solves the system: A u = b
	u := []float64{1, 1, 1, 1}
	res := make([]float64, 4)
	for i := 0; i < 4; i++ {
		res[i] = la.VecDot(Ad[i], u)
	}
	chk.Array(tst, "A u", 1e-15, res, b.Values())
}
