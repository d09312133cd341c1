// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// LiftBc folds the prescribed boundary values of the trial (column) space of
// the bilinear form a into the right-hand side vector b: for every cell
// touching a constrained column dof J with value g, the contribution
// -Ae[:,j]*g is accumulated into the row dofs of b. The local matrix is
// recomputed from the element kernel; the assembled global matrix is never
// read back. For square blocks the constrained rows of Ae are zeroed first,
// matching the rows already zeroed in the assembled matrix.
func LiftBc(b Vector, a *Form, ebcs *Dirichlets, distr bool) (err error) {

	// check form
	if err = a.CheckRank(2); err != nil {
		return
	}

	// initialise container
	if b.IsEmpty() {
		b.Init(a.Spaces[0].Dofs.NumDofs())
	}

	// boundary values on the trial axis
	bvals, err := ebcs.ValuesFor(a.Spaces[1], distr)
	if err != nil {
		return
	}

	// cell loop
	square := a.Spaces[0] == a.Spaces[1]
	tab := newCellTabulator(a)
	var be []float64
	m := a.Msh
	for cid := 0; cid < m.NumCells() && len(bvals) > 0; cid++ {

		// skip cells owned by other processors
		if m.IsGhost(cid) {
			continue
		}

		// skip cells without constrained column dofs
		dofs1 := a.Spaces[1].Dofs.CellDofs(cid)
		hasbc := false
		for _, J := range dofs1 {
			if _, ok := bvals[J]; ok {
				hasbc = true
				break
			}
		}
		if !hasbc {
			continue
		}

		// recompute local matrix
		dofs0 := a.Spaces[0].Dofs.CellDofs(cid)
		if len(dofs0) == 0 {
			continue
		}
		var Ae [][]float64
		if Ae, err = tab.matrix(cid, len(dofs0), len(dofs1)); err != nil {
			return
		}

		// zero rows at constrained dofs of square blocks
		if square {
			for i, I := range dofs0 {
				if _, ok := bvals[I]; ok {
					for j := range Ae[i] {
						Ae[i][j] = 0
					}
				}
			}
		}

		// fold known values into the local vector
		if len(be) != len(dofs0) {
			be = make([]float64, len(dofs0))
		} else {
			for i := range be {
				be[i] = 0
			}
		}
		for j, J := range dofs1 {
			if g, ok := bvals[J]; ok {
				for i := range dofs0 {
					be[i] -= Ae[i][j] * g
				}
			}
		}

		// add to global vector
		b.Add(be, dofs0)
	}

	// finalise
	return b.Finalize()
}
