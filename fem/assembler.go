// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

// Assembler assembles the global linear system of one variational problem:
// a rectangular array of bilinear form blocks Ab[i][j] (nil = fields i and j
// do not couple), linear forms Lb[i], and a set of essential boundary
// conditions. Single-field problems use a 1x1 array and a monolithic matrix;
// anything larger produces a nested (block) matrix.
type Assembler struct {
	Ab      [][]*Form   // bilinear form blocks; nil entries mean no coupling
	Lb      []*Form     // linear forms, one per block row
	Ebcs    *Dirichlets // essential boundary conditions
	Distr   bool        // distributed/parallel run
	Verbose bool        // log progress messages (processor 0 only)
}

// NewAssembler validates the forms and returns a new Assembler.
// Shape and rank mismatches are rejected here, before any cell-loop work.
func NewAssembler(a [][]*Form, L []*Form, ebcs *Dirichlets) (o *Assembler, err error) {

	// check shapes
	if len(a) == 0 || len(a[0]) == 0 {
		return nil, chk.Err("assembler requires a non-empty array of bilinear forms")
	}
	if len(L) == 0 || L[0] == nil {
		return nil, chk.Err("assembler requires at least one linear form")
	}
	ncol := len(a[0])
	for i, row := range a {
		if len(row) != ncol {
			return nil, chk.Err("bilinear array must be rectangular: row %d has %d columns instead of %d", i, len(row), ncol)
		}
		for j, f := range row {
			if f == nil {
				continue
			}
			if err = f.CheckRank(2); err != nil {
				return nil, chk.Err("bilinear block (%d,%d) is invalid:\n%v", i, j, err)
			}
		}
	}
	for i, f := range L {
		if f == nil {
			continue
		}
		if err = f.CheckRank(1); err != nil {
			return nil, chk.Err("linear form %d is invalid:\n%v", i, err)
		}
	}

	// new assembler
	if ebcs == nil {
		ebcs = new(Dirichlets)
	}
	o = &Assembler{Ab: a, Lb: L, Ebcs: ebcs}
	if mpi.IsOn() {
		o.Distr = mpi.WorldSize() > 1
	}
	return
}

// AssembleMatrix assembles all bilinear blocks into A. An uninitialised A is
// allocated here: monolithic when the array is 1x1, nested otherwise, with
// one sub-matrix per non-null block. Re-assembling into an already
// initialised container is not implemented and fails without mutating it.
func (o *Assembler) AssembleMatrix(A Matrix) (err error) {

	// check container
	if !A.IsEmpty() {
		return chk.Err("matrix is already initialised: re-assembly is not implemented")
	}

	// monolithic matrix. the container is finalised inside the form
	// assembly, between accumulation and the constrained-row writes
	blockMatrix := len(o.Ab) > 1 || len(o.Ab[0]) > 1
	if !blockMatrix {
		if err = AssembleMatrixForm(A, o.Ab[0][0], o.Ebcs, o.Distr); err != nil {
			return chk.Err("assembly of matrix failed:\n%v", err)
		}
		return
	}

	// nested matrix
	nest, ok := A.(*NestMatrix)
	if !ok {
		return chk.Err("a block bilinear array requires a nested matrix container")
	}
	nest.Init(len(o.Ab), len(o.Ab[0]), 0)
	for i := range o.Ab {
		for j, a := range o.Ab[i] {
			if a == nil {
				continue
			}
			if o.showMsg() {
				io.Pf("> assembling matrix block (%d,%d)\n", i, j)
			}
			if err = AssembleMatrixForm(nest.Block(i, j), a, o.Ebcs, o.Distr); err != nil {
				return chk.Err("assembly of matrix block (%d,%d) failed:\n%v", i, j, err)
			}
		}
	}
	return
}

// AssembleVector assembles the first linear form into b, folds the known
// boundary values into it once per non-null bilinear block, and finally
// overwrites the constrained entries with their prescribed values. The
// assemble -> lift -> overwrite order is mandatory: overwritten entries win.
func (o *Assembler) AssembleVector(b Vector) (err error) {

	// assemble linear form
	if err = AssembleVectorForm(b, o.Lb[0]); err != nil {
		return chk.Err("assembly of vector failed:\n%v", err)
	}

	// lift boundary values, once per non-null bilinear block
	for i := range o.Ab {
		for j, a := range o.Ab[i] {
			if a == nil {
				continue
			}
			if err = LiftBc(b, a, o.Ebcs, o.Distr); err != nil {
				return chk.Err("lifting of boundary values failed on block (%d,%d):\n%v", i, j, err)
			}
		}
	}

	// enforce prescribed values
	if err = SetBcValues(b, o.Lb[0], o.Ebcs, o.Distr); err != nil {
		return chk.Err("setting of boundary values failed:\n%v", err)
	}
	return
}

// AssembleSystem runs AssembleMatrix then AssembleVector. The two passes
// share nothing but the boundary-condition set; local tensors are recomputed
// independently in each.
func (o *Assembler) AssembleSystem(A Matrix, b Vector) (err error) {
	if err = o.AssembleMatrix(A); err != nil {
		return
	}
	return o.AssembleVector(b)
}

// showMsg tells whether progress messages should be printed
func (o *Assembler) showMsg() bool {
	if !o.Verbose {
		return false
	}
	if mpi.IsOn() {
		return mpi.WorldRank() == 0
	}
	return true
}
