// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"
)

// SetBcValues overwrites the entries of b at the constrained dofs of L's
// function space with their prescribed values. Overwritten entries win over
// anything accumulated before, so this must run after assembly and lifting;
// together with the identity rows written into the matrix, the constrained
// equations become d = value.
func SetBcValues(b Vector, L *Form, ebcs *Dirichlets, distr bool) (err error) {

	// check form
	if err = L.CheckRank(1); err != nil {
		return
	}

	// initialise container
	if b.IsEmpty() {
		b.Init(L.Spaces[0].Dofs.NumDofs())
	}

	// boundary values for L's space
	bvals, err := ebcs.ValuesFor(L.Spaces[0], distr)
	if err != nil {
		return
	}

	// overwrite constrained entries
	rows := make([]int, 0, len(bvals))
	for eq := range bvals {
		rows = append(rows, eq)
	}
	sort.Ints(rows)
	vals := make([]float64, len(rows))
	for i, eq := range rows {
		vals[i] = bvals[eq]
	}
	b.Set(vals, rows)

	// finalise
	return b.Finalize()
}
