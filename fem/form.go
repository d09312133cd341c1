// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the assembly of global sparse linear systems from
// per-cell finite element contributions, with essential (Dirichlet) boundary
// conditions imposed by symmetric elimination and lifting of known values
// into the right-hand side
package fem

import (
	"github.com/cpmech/gosl/chk"
)

// Mesh is the cell-iteration and coordinate-extraction contract consumed by
// the assembler. Cells are visited in index order, which must be stable and
// reproducible across passes.
type Mesh interface {
	NumCells() int                  // number of cells visible to this processor, ghosts included
	IsGhost(cid int) bool           // cell is owned by another processor
	CellCoords(cid int) [][]float64 // vertex coordinates of one cell [ndim][nverts]
}

// DofMap is the per-cell index-lookup contract for one field. The length of
// the returned sequence may vary from cell to cell.
type DofMap interface {
	CellDofs(cid int) []int // ordered global dof indices of one cell
	NumDofs() int           // total number of dofs in this field
}

// FunctionSpace identifies one field and its dof numbering. A space built by
// restriction of another records its parent, so that constraint records can
// be matched to the axes they apply to.
type FunctionSpace struct {
	Name string          // field name; e.g. "u", "p"
	Dofs DofMap          // dof numbering of this field
	Up   *FunctionSpace  // parent space; nil unless this is a subspace
}

// Contains tells whether v shares the dofs of this space; i.e. whether v is
// this space or one of its subspaces
func (o *FunctionSpace) Contains(v *FunctionSpace) bool {
	for s := v; s != nil; s = s.Up {
		if s == o {
			return true
		}
	}
	return false
}

// MatrixKernel tabulates the local matrix of one cell into Ae, given the
// cell's vertex coordinates X [ndim][nverts] and coefficient values w.
// Ae arrives sized (ndofs0,ndofs1) and zeroed. Kernels must be pure: calling
// one twice for the same cell must produce the same tensor.
type MatrixKernel func(Ae [][]float64, X [][]float64, w []float64) error

// VectorKernel tabulates the local vector of one cell into be; same contract
// as MatrixKernel
type VectorKernel func(be []float64, X [][]float64, w []float64) error

// Form holds one variational form to be integrated cell by cell: a rank
// (2 = bilinear, 1 = linear), one function space per tensor axis, the mesh,
// and the element kernel that computes the cell contributions. Forms are
// immutable once built; the assembler holds non-owning references.
type Form struct {
	Rank   int              // 1 = linear (vector), 2 = bilinear (matrix)
	Msh    Mesh             // mesh to integrate over
	Spaces []*FunctionSpace // function spaces, one per axis: [test] or [test,trial]
	W      []float64        // coefficient values handed to the kernel; may be nil
	Mkern  MatrixKernel     // kernel for rank-2 forms
	Vkern  VectorKernel     // kernel for rank-1 forms
}

// NewBilinearForm creates a rank-2 form with test space (axis 0) and trial
// space (axis 1)
func NewBilinearForm(m Mesh, test, trial *FunctionSpace, kernel MatrixKernel, w ...float64) (a *Form, err error) {
	if m == nil {
		return nil, chk.Err("bilinear form requires a mesh")
	}
	if test == nil || trial == nil {
		return nil, chk.Err("bilinear form requires both test and trial function spaces")
	}
	if test.Dofs == nil || trial.Dofs == nil {
		return nil, chk.Err("function spaces of bilinear form must have dof maps")
	}
	if kernel == nil {
		return nil, chk.Err("bilinear form requires an element kernel")
	}
	a = &Form{Rank: 2, Msh: m, Spaces: []*FunctionSpace{test, trial}, W: w, Mkern: kernel}
	return
}

// NewLinearForm creates a rank-1 form with a single (test) function space
func NewLinearForm(m Mesh, space *FunctionSpace, kernel VectorKernel, w ...float64) (L *Form, err error) {
	if m == nil {
		return nil, chk.Err("linear form requires a mesh")
	}
	if space == nil || space.Dofs == nil {
		return nil, chk.Err("linear form requires a function space with a dof map")
	}
	if kernel == nil {
		return nil, chk.Err("linear form requires an element kernel")
	}
	L = &Form{Rank: 1, Msh: m, Spaces: []*FunctionSpace{space}, W: w, Vkern: kernel}
	return
}

// Space returns the function space of the given tensor axis
func (o *Form) Space(axis int) *FunctionSpace {
	return o.Spaces[axis]
}

// CheckRank returns an error if this form's rank differs from the expected one
func (o *Form) CheckRank(rank int) (err error) {
	if o.Rank != rank {
		return chk.Err("expecting form of rank %d but form has rank %d", rank, o.Rank)
	}
	return
}
