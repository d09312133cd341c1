// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
)

// Matrix is the global matrix contract consumed by the assembler. The caller
// owns the container exclusively for one full assembly pass.
type Matrix interface {
	IsEmpty() bool                        // container is not yet initialised
	Init(nrow, ncol, nnz int)             // allocate for given dimensions and nonzero estimate
	Add(Ae [][]float64, rows, cols []int) // accumulate a local matrix at global indices
	ZeroRows(rows []int, diag float64)    // overwrite whole rows with zeros and diag on the diagonal
	Finalize() (err error)                // flush accumulated entries; must precede any read
}

// Vector is the global vector contract consumed by the assembler
type Vector interface {
	IsEmpty() bool                  // container is not yet initialised
	Init(n int)                     // allocate for given dimension
	Add(be []float64, rows []int)   // accumulate a local vector at global indices
	Set(vals []float64, rows []int) // overwrite entries; wins over any accumulation
	Finalize() (err error)          // flush accumulated entries; must precede any read
}

// SpMatrix is a global sparse matrix accumulated in triplet form. In
// distributed runs each processor holds the triplets of its own cells; the
// summation of entries shared between processors is left to the downstream
// solver, as with distributed sparse solvers taking per-processor triplets.
type SpMatrix struct {
	Nrow, Ncol int             // global dimensions
	T          la.Triplet      // accumulated entries; duplicates sum on conversion
	Fixed      map[int]float64 // rows overwritten by ZeroRows: row => diagonal value
	ready      bool
	final      bool
}

// IsEmpty tells whether this matrix is not yet initialised
func (o *SpMatrix) IsEmpty() bool { return !o.ready }

// Init allocates the triplet store for nnz entries
func (o *SpMatrix) Init(nrow, ncol, nnz int) {
	o.Nrow, o.Ncol = nrow, ncol
	o.T.Init(nrow, ncol, nnz)
	o.Fixed = make(map[int]float64)
	o.ready = true
	o.final = false
}

// Add accumulates the local matrix Ae at global rows/cols
func (o *SpMatrix) Add(Ae [][]float64, rows, cols []int) {
	if !o.ready {
		chk.Panic("matrix must be initialised before adding entries")
	}
	for i, I := range rows {
		for j, J := range cols {
			o.T.Put(I, J, Ae[i][j])
		}
	}
}

// ZeroRows overwrites the given rows with zeros, placing diag on the
// diagonal. Overwritten rows win over all accumulated entries.
func (o *SpMatrix) ZeroRows(rows []int, diag float64) {
	for _, I := range rows {
		o.Fixed[I] = diag
	}
}

// Finalize marks the end of accumulation. Calling it again is a no-op.
func (o *SpMatrix) Finalize() (err error) {
	if !o.ready {
		return chk.Err("matrix must be initialised before finalisation")
	}
	o.final = true
	return
}

// ToDense returns a dense copy of this matrix, mainly for inspection and
// tests. Rows overwritten by ZeroRows come out as identity-style rows.
func (o *SpMatrix) ToDense() (res [][]float64) {
	res = o.T.ToMatrix(nil).ToDense().GetDeep2()
	for I, diag := range o.Fixed {
		for j := range res[I] {
			res[I][j] = 0
		}
		if I < o.Ncol {
			res[I][I] = diag
		}
	}
	return
}

// DsVector is a global dense vector replicated on every processor. Additions
// accumulate locally and are joined across processors on Finalize; entries
// overwritten with Set stay authoritative over any accumulation.
type DsVector struct {
	Distr bool              // distributed run: join local additions on Finalize
	V     []float64         // joined values
	pend  []float64         // local additions since the last join
	w     []float64         // workspace receiving the all-reduce result
	ins   map[int]float64   // overwritten entries
	comm  *mpi.Communicator // world communicator; allocated on first join
	ready bool
}

// NewDsVector returns an initialised vector of dimension n
func NewDsVector(n int, distr bool) (o *DsVector) {
	o = &DsVector{Distr: distr}
	o.Init(n)
	return
}

// IsEmpty tells whether this vector is not yet initialised
func (o *DsVector) IsEmpty() bool { return !o.ready }

// Init allocates the vector with dimension n
func (o *DsVector) Init(n int) {
	o.V = make([]float64, n)
	o.pend = make([]float64, n)
	o.w = make([]float64, n)
	o.ins = make(map[int]float64)
	o.ready = true
}

// Add accumulates the local vector be at global rows
func (o *DsVector) Add(be []float64, rows []int) {
	if !o.ready {
		chk.Panic("vector must be initialised before adding entries")
	}
	for i, I := range rows {
		o.pend[I] += be[i]
	}
}

// Set overwrites entries at the given rows with vals
func (o *DsVector) Set(vals []float64, rows []int) {
	if !o.ready {
		chk.Panic("vector must be initialised before setting entries")
	}
	for i, I := range rows {
		o.ins[I] = vals[i]
	}
}

// Finalize joins pending additions, across processors in distributed runs,
// and re-applies overwritten entries
func (o *DsVector) Finalize() (err error) {
	if !o.ready {
		return chk.Err("vector must be initialised before finalisation")
	}
	if o.Distr && mpi.IsOn() {
		if o.comm == nil {
			o.comm = mpi.NewCommunicator(nil)
		}
		o.comm.AllReduceSum(o.w, o.pend)
		copy(o.pend, o.w)
	}
	for i, v := range o.pend {
		o.V[i] += v
		o.pend[i] = 0
	}
	for I, v := range o.ins {
		o.V[I] = v
	}
	return
}

// Values returns the joined vector entries
func (o *DsVector) Values() []float64 { return o.V }

// NestMatrix is a block-structured global matrix: one sub-matrix per field
// pair, with nil entries where two fields do not couple. Init takes the
// block-grid dimensions; sub-matrices are allocated by the assembler, one
// per non-null bilinear block, using New.
type NestMatrix struct {
	Sub [][]Matrix    // sub-matrices [nblockrows][nblockcols]; nil = absent
	New func() Matrix // sub-matrix allocator; defaults to new SpMatrix
}

// IsEmpty tells whether the block grid has not been allocated yet
func (o *NestMatrix) IsEmpty() bool { return o.Sub == nil }

// Init allocates an empty nrow x ncol block grid
func (o *NestMatrix) Init(nrow, ncol, nnz int) {
	o.Sub = make([][]Matrix, nrow)
	for i := 0; i < nrow; i++ {
		o.Sub[i] = make([]Matrix, ncol)
	}
	if o.New == nil {
		o.New = func() Matrix { return new(SpMatrix) }
	}
}

// Block returns the sub-matrix at block position (i,j), allocating an empty
// one on first access
func (o *NestMatrix) Block(i, j int) Matrix {
	if o.Sub[i][j] == nil {
		o.Sub[i][j] = o.New()
	}
	return o.Sub[i][j]
}

// Add is not supported on the nested container; entries go into sub-blocks
func (o *NestMatrix) Add(Ae [][]float64, rows, cols []int) {
	chk.Panic("nested matrix does not support direct entry accumulation; use Block(i,j)")
}

// ZeroRows is not supported on the nested container
func (o *NestMatrix) ZeroRows(rows []int, diag float64) {
	chk.Panic("nested matrix does not support direct row overwrite; use Block(i,j)")
}

// Finalize finalises all allocated sub-matrices
func (o *NestMatrix) Finalize() (err error) {
	if o.Sub == nil {
		return chk.Err("nested matrix must be initialised before finalisation")
	}
	for i := range o.Sub {
		for j := range o.Sub[i] {
			if o.Sub[i][j] != nil {
				if err = o.Sub[i][j].Finalize(); err != nil {
					return chk.Err("finalisation of block (%d,%d) failed:\n%v", i, j, err)
				}
			}
		}
	}
	return
}
