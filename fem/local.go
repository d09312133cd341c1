// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// cellTabulator invokes a form's element kernel cell by cell, reusing one
// local tensor buffer between calls. Buffers are resized whenever the dof
// count changes; contents never survive from one cell to the next.
type cellTabulator struct {
	form *Form
	Ae   [][]float64 // local matrix buffer
	be   []float64   // local vector buffer
}

func newCellTabulator(a *Form) *cellTabulator {
	return &cellTabulator{form: a}
}

// matrix computes the local matrix of cell cid, sized (n0,n1)
func (o *cellTabulator) matrix(cid, n0, n1 int) (Ae [][]float64, err error) {
	if len(o.Ae) != n0 || (n0 > 0 && len(o.Ae[0]) != n1) {
		o.Ae = utl.Alloc(n0, n1)
	} else {
		for i := range o.Ae {
			for j := range o.Ae[i] {
				o.Ae[i][j] = 0
			}
		}
	}
	if n0 == 0 || n1 == 0 {
		return o.Ae, nil
	}
	X := o.form.Msh.CellCoords(cid)
	if err = o.form.Mkern(o.Ae, X, o.form.W); err != nil {
		return nil, chk.Err("element kernel failed on cell %d:\n%v", cid, err)
	}
	return o.Ae, nil
}

// vector computes the local vector of cell cid, sized n
func (o *cellTabulator) vector(cid, n int) (be []float64, err error) {
	if len(o.be) != n {
		o.be = make([]float64, n)
	} else {
		for i := range o.be {
			o.be[i] = 0
		}
	}
	if n == 0 {
		return o.be, nil
	}
	X := o.form.Msh.CellCoords(cid)
	if err = o.form.Vkern(o.be, X, o.form.W); err != nil {
		return nil, chk.Err("element kernel failed on cell %d:\n%v", cid, err)
	}
	return o.be, nil
}

// formDims returns the global dimensions of the bilinear form a and an upper
// bound on the number of nonzero contributions from this processor's cells
func formDims(a *Form) (nrow, ncol, nnz int) {
	nrow = a.Spaces[0].Dofs.NumDofs()
	ncol = a.Spaces[1].Dofs.NumDofs()
	m := a.Msh
	for cid := 0; cid < m.NumCells(); cid++ {
		if m.IsGhost(cid) {
			continue
		}
		nnz += len(a.Spaces[0].Dofs.CellDofs(cid)) * len(a.Spaces[1].Dofs.CellDofs(cid))
	}
	return
}

// AssembleMatrixForm assembles the bilinear form a into A, one cell at a
// time. Rows and columns of each local matrix that correspond to constrained
// dofs are zeroed before accumulation; after finalisation, constrained rows
// of square blocks (test space == trial space) receive 1.0 on the diagonal.
// Ghost cells are skipped.
func AssembleMatrixForm(A Matrix, a *Form, ebcs *Dirichlets, distr bool) (err error) {

	// check form
	if err = a.CheckRank(2); err != nil {
		return
	}

	// initialise container
	if A.IsEmpty() {
		nrow, ncol, nnz := formDims(a)
		A.Init(nrow, ncol, nnz)
	}

	// boundary values per matrix axis
	spaces := [2]*FunctionSpace{a.Spaces[0], a.Spaces[1]}
	var bvals [2]map[int]float64
	for axis := 0; axis < 2; axis++ {
		if bvals[axis], err = ebcs.ValuesFor(spaces[axis], distr); err != nil {
			return
		}
	}

	// cell loop
	tab := newCellTabulator(a)
	m := a.Msh
	for cid := 0; cid < m.NumCells(); cid++ {

		// skip cells owned by other processors
		if m.IsGhost(cid) {
			continue
		}

		// dof maps for cell
		dofs0 := spaces[0].Dofs.CellDofs(cid)
		dofs1 := spaces[1].Dofs.CellDofs(cid)
		if len(dofs0) == 0 || len(dofs1) == 0 {
			continue
		}

		// local matrix
		var Ae [][]float64
		if Ae, err = tab.matrix(cid, len(dofs0), len(dofs1)); err != nil {
			return
		}

		// zero rows at constrained test dofs
		for i, I := range dofs0 {
			if _, ok := bvals[0][I]; ok {
				for j := range Ae[i] {
					Ae[i][j] = 0
				}
			}
		}

		// zero columns at constrained trial dofs
		for j, J := range dofs1 {
			if _, ok := bvals[1][J]; ok {
				for i := range Ae {
					Ae[i][j] = 0
				}
			}
		}

		// add to global matrix
		A.Add(Ae, dofs0, dofs1)
	}

	// finalise
	if err = A.Finalize(); err != nil {
		return
	}

	// identity rows for constrained dofs of square blocks
	if spaces[0] == spaces[1] && len(bvals[0]) > 0 {
		rows := make([]int, 0, len(bvals[0]))
		for eq := range bvals[0] {
			rows = append(rows, eq)
		}
		sort.Ints(rows)
		A.ZeroRows(rows, 1.0)
	}
	return
}

// AssembleVectorForm assembles the linear form L into b, one cell at a time,
// skipping ghost cells. Boundary conditions are not touched here; lifting
// and overwriting of constrained entries are separate steps.
func AssembleVectorForm(b Vector, L *Form) (err error) {

	// check form
	if err = L.CheckRank(1); err != nil {
		return
	}

	// initialise container
	if b.IsEmpty() {
		b.Init(L.Spaces[0].Dofs.NumDofs())
	}

	// cell loop
	tab := newCellTabulator(L)
	m := L.Msh
	for cid := 0; cid < m.NumCells(); cid++ {

		// skip cells owned by other processors
		if m.IsGhost(cid) {
			continue
		}

		// dof map for cell
		dofs := L.Spaces[0].Dofs.CellDofs(cid)
		if len(dofs) == 0 {
			continue
		}

		// local vector
		var be []float64
		if be, err = tab.vector(cid, len(dofs)); err != nil {
			return
		}

		// add to global vector
		b.Add(be, dofs)
	}

	// finalise
	return b.Finalize()
}
