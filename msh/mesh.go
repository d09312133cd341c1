// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh defines light mesh structures: vertices, cells with processor
// ownership, and per-vertex dof numbering for scalar fields
package msh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Vert holds vertex data
type Vert struct {
	Id int       // identifier
	C  []float64 // coordinates [ndim]
}

// Cell holds cell data, including the processor that owns it. A cell whose
// Part differs from the local processor is a ghost: replicated locally but
// assembled by its owner.
type Cell struct {
	Id    int   // identifier
	Verts []int // vertex ids, in local dof order
	Part  int   // owning processor
}

// Mesh holds the cells visible to one processor, ghost cells included
type Mesh struct {
	Ndim  int     // space dimension
	Verts []*Vert // all vertices
	Cells []*Cell // all cells, ghosts included
	Proc  int     // this processor
}

// New creates a mesh from vertex coordinates and cell connectivities. All
// cells are owned by processor 0.
func New(ndim int, verts [][]float64, cells [][]int) (o *Mesh, err error) {
	if ndim < 1 {
		return nil, chk.Err("space dimension must be at least 1")
	}
	o = &Mesh{Ndim: ndim}
	for i, c := range verts {
		if len(c) != ndim {
			return nil, chk.Err("vertex %d has %d coordinates instead of %d", i, len(c), ndim)
		}
		o.Verts = append(o.Verts, &Vert{Id: i, C: c})
	}
	for i, vids := range cells {
		for _, v := range vids {
			if v < 0 || v >= len(o.Verts) {
				return nil, chk.Err("cell %d references inexistent vertex %d", i, v)
			}
		}
		o.Cells = append(o.Cells, &Cell{Id: i, Verts: vids})
	}
	return
}

// NumCells returns the number of cells, ghosts included
func (o *Mesh) NumCells() int { return len(o.Cells) }

// IsGhost tells whether cell cid is owned by another processor
func (o *Mesh) IsGhost(cid int) bool { return o.Cells[cid].Part != o.Proc }

// CellCoords returns the vertex coordinates of cell cid arranged as
// [ndim][nverts]
func (o *Mesh) CellCoords(cid int) (X [][]float64) {
	c := o.Cells[cid]
	X = utl.Alloc(o.Ndim, len(c.Verts))
	for j, v := range c.Verts {
		for k := 0; k < o.Ndim; k++ {
			X[k][j] = o.Verts[v].C[k]
		}
	}
	return
}

// ScalarDofs numbers one dof per vertex over the whole mesh, in vertex
// order. It implements the per-cell index-lookup contract of the assembler
// for a scalar field.
type ScalarDofs struct {
	M *Mesh
}

// CellDofs returns the global dofs of cell cid, one per vertex
func (o *ScalarDofs) CellDofs(cid int) []int { return o.M.Cells[cid].Verts }

// NumDofs returns the total number of dofs
func (o *ScalarDofs) NumDofs() int { return len(o.M.Verts) }
