// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/jamestiotio/dolfinx/fem"
	"github.com/jamestiotio/dolfinx/msh"
)

func Test_prob01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("prob01. reading of a problem file")

	prob, err := ReadProblem("data/poisson4.json")
	if err != nil {
		tst.Errorf("ReadProblem failed:\n%v", err)
		return
	}
	chk.Float64(tst, "kappa", 1e-17, prob.Kappa, 1.0)
	chk.IntAssert(prob.Msh.Ndim, 2)
	chk.IntAssert(len(prob.Msh.Verts), 4)
	chk.IntAssert(len(prob.Msh.Cells), 2)
	chk.IntAssert(len(prob.Bcs), 1)
	chk.Ints(tst, "bc verts", prob.Bcs[0].Verts, []int{0, 1})

	// missing file
	if _, err = ReadProblem("data/__inexistent__.json"); err == nil {
		tst.Errorf("ReadProblem must fail on a missing file")
		return
	}
}

func Test_prob02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("prob02. mesh and boundary conditions of a problem")

	prob, err := ReadProblem("data/poisson4.json")
	if err != nil {
		tst.Errorf("ReadProblem failed:\n%v", err)
		return
	}

	m, err := prob.Mesh(0)
	if err != nil {
		tst.Errorf("Mesh failed:\n%v", err)
		return
	}
	chk.IntAssert(m.NumCells(), 2)
	if m.IsGhost(0) || m.IsGhost(1) {
		tst.Errorf("serial mesh must have no ghost cells")
		return
	}

	space := &fem.FunctionSpace{Name: "u", Dofs: &msh.ScalarDofs{M: m}}
	ebcs, err := prob.Dirichlets(space, 0)
	if err != nil {
		tst.Errorf("Dirichlets failed:\n%v", err)
		return
	}
	vals, err := ebcs.ValuesFor(space, false)
	if err != nil {
		tst.Errorf("ValuesFor failed:\n%v", err)
		return
	}
	chk.IntAssert(len(vals), 2)
	chk.Float64(tst, "vals[0]", 1e-15, vals[0], 1.0)
	chk.Float64(tst, "vals[1]", 1e-15, vals[1], 1.0)
}
