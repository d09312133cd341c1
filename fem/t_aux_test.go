// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// stubMesh is a mesh with no geometry: kernels in these tests return fixed
// tensors and never look at coordinates
type stubMesh struct {
	ncells int
	ghost  []bool
}

func (o *stubMesh) NumCells() int { return o.ncells }

func (o *stubMesh) IsGhost(cid int) bool {
	if o.ghost == nil {
		return false
	}
	return o.ghost[cid]
}

func (o *stubMesh) CellCoords(cid int) [][]float64 { return nil }

// stubDofs maps cells to fixed dof sequences
type stubDofs struct {
	dofs [][]int
	n    int
}

func (o *stubDofs) CellDofs(cid int) []int { return o.dofs[cid] }
func (o *stubDofs) NumDofs() int           { return o.n }

// fixedMat returns a kernel that adds the same local matrix for every cell
func fixedMat(ke [][]float64) MatrixKernel {
	return func(Ae [][]float64, X [][]float64, w []float64) error {
		for i := range ke {
			for j := range ke[i] {
				Ae[i][j] += ke[i][j]
			}
		}
		return nil
	}
}

// fixedVec returns a kernel that adds the same local vector for every cell
func fixedVec(be []float64) VectorKernel {
	return func(b []float64, X [][]float64, w []float64) error {
		for i := range be {
			b[i] += be[i]
		}
		return nil
	}
}

// lineProblem builds the 2-cell / 3-dof scenario: cells (0,1) and (1,2) of a
// single scalar field, each contributing ke = [[1,-1],[-1,1]] and be = [1,1]
func lineProblem(ghost []bool) (m *stubMesh, space *FunctionSpace, a, L *Form) {
	m = &stubMesh{ncells: 2, ghost: ghost}
	dofs := &stubDofs{dofs: [][]int{{0, 1}, {1, 2}}, n: 3}
	space = &FunctionSpace{Name: "u", Dofs: dofs}
	ke := [][]float64{{1, -1}, {-1, 1}}
	var err error
	a, err = NewBilinearForm(m, space, space, fixedMat(ke))
	if err != nil {
		panic(err)
	}
	L, err = NewLinearForm(m, space, fixedVec([]float64{1, 1}))
	if err != nil {
		panic(err)
	}
	return
}

// oneBc returns a boundary-condition set with a single constrained dof
func oneBc(space *FunctionSpace, eq int, value float64) *Dirichlets {
	ebcs := new(Dirichlets)
	ebcs.Add(space, MethodPointwise, map[int]float64{eq: value})
	return ebcs
}
