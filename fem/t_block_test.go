// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// twoFieldProblem builds a 2x2 block system over the 2-cell / 3-dof stub
// mesh: field u (stiffness-like blocks) and field p (mass-like block), with
// no coupling from p into u's equations (a[0][1] = nil)
func twoFieldProblem() (su, sp *FunctionSpace, a [][]*Form, L []*Form, ebcs *Dirichlets) {
	m := &stubMesh{ncells: 2}
	dofs := &stubDofs{dofs: [][]int{{0, 1}, {1, 2}}, n: 3}
	su = &FunctionSpace{Name: "u", Dofs: dofs}
	sp = &FunctionSpace{Name: "p", Dofs: dofs}

	a00, err := NewBilinearForm(m, su, su, fixedMat([][]float64{{1, -1}, {-1, 1}}))
	if err != nil {
		panic(err)
	}
	a11, err := NewBilinearForm(m, sp, sp, fixedMat([][]float64{{2, 0}, {0, 2}}))
	if err != nil {
		panic(err)
	}
	a10, err := NewBilinearForm(m, sp, su, fixedMat([][]float64{{1, 1}, {1, 1}}))
	if err != nil {
		panic(err)
	}
	L0, err := NewLinearForm(m, su, fixedVec([]float64{1, 1}))
	if err != nil {
		panic(err)
	}

	a = [][]*Form{
		{a00, nil},
		{a10, a11},
	}
	L = []*Form{L0, nil}
	ebcs = oneBc(su, 0, 5.0)
	return
}

func Test_block01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("block01. 2x2 block system with a nil off-diagonal block")

	_, _, a, L, ebcs := twoFieldProblem()
	asm, err := NewAssembler(a, L, ebcs)
	if err != nil {
		tst.Errorf("NewAssembler failed:\n%v", err)
		return
	}

	A := new(NestMatrix)
	b := new(DsVector)
	err = asm.AssembleSystem(A, b)
	if err != nil {
		tst.Errorf("AssembleSystem failed:\n%v", err)
		return
	}

	// nil form => absent sub-block
	if A.Sub[0][1] != nil {
		tst.Errorf("block (0,1) must not be allocated")
		return
	}

	// u-u block: constrained rows/cols eliminated, 1.0 on the diagonal
	chk.Deep2(tst, "A00", 1e-15, A.Sub[0][0].(*SpMatrix).ToDense(), [][]float64{
		{1, 0, 0},
		{0, 2, -1},
		{0, -1, 1},
	})

	// p-p block: no constraints on p
	chk.Deep2(tst, "A11", 1e-15, A.Sub[1][1].(*SpMatrix).ToDense(), [][]float64{
		{2, 0, 0},
		{0, 4, 0},
		{0, 0, 2},
	})

	// p-u block: column 0 eliminated; rectangular, so no diagonal ones
	chk.Deep2(tst, "A10", 1e-15, A.Sub[1][0].(*SpMatrix).ToDense(), [][]float64{
		{0, 1, 0},
		{0, 2, 1},
		{0, 1, 1},
	})

	// vector: L[0], lifted once per non-null block, then prescribed values
	chk.Array(tst, "b", 1e-15, b.Values(), []float64{5, 2, 1})
}

func Test_block02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("block02. block system requires a nested container")

	_, _, a, L, ebcs := twoFieldProblem()
	asm, err := NewAssembler(a, L, ebcs)
	if err != nil {
		tst.Errorf("NewAssembler failed:\n%v", err)
		return
	}

	err = asm.AssembleMatrix(new(SpMatrix))
	if err == nil {
		tst.Errorf("monolithic container must be rejected for a block array")
	}
}
