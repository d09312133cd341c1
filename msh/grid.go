// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"github.com/cpmech/gosl/chk"
)

// UnitSquare returns a structured triangle mesh of the unit square with
// nx x ny vertices numbered row-major from the origin. Each quad is split
// along its lower-left to upper-right diagonal into two triangles.
func UnitSquare(nx, ny int) (o *Mesh) {
	if nx < 2 || ny < 2 {
		chk.Panic("unit square grid requires at least 2x2 vertices. nx=%d, ny=%d", nx, ny)
	}
	dx := 1.0 / float64(nx-1)
	dy := 1.0 / float64(ny-1)
	verts := make([][]float64, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			verts = append(verts, []float64{float64(i) * dx, float64(j) * dy})
		}
	}
	cells := make([][]int, 0, 2*(nx-1)*(ny-1))
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			a := j*nx + i      // lower-left
			b := a + 1         // lower-right
			c := a + nx        // upper-left
			d := c + 1         // upper-right
			cells = append(cells, []int{a, b, d})
			cells = append(cells, []int{a, d, c})
		}
	}
	o, err := New(2, verts, cells)
	if err != nil {
		chk.Panic("cannot build unit square grid:\n%v", err)
	}
	return
}

// BottomVerts returns the vertex ids on the bottom edge (y=0) of a grid
// built by UnitSquare
func BottomVerts(nx int) (vids []int) {
	vids = make([]int, nx)
	for i := 0; i < nx; i++ {
		vids[i] = i
	}
	return
}
