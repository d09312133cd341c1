// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input-data layer: reading of problem (.json)
// files defining the mesh, coefficients and boundary conditions of one
// assembly run
package inp

import (
	"encoding/json"
	"os"

	"github.com/jamestiotio/dolfinx/fem"
	"github.com/jamestiotio/dolfinx/msh"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// BcData holds one essential boundary condition record: a set of constrained
// vertices and the time function giving the prescribed value
type BcData struct {
	Verts  []int      `json:"verts"`  // constrained vertices (scalar dofs)
	Method string     `json:"method"` // application method; empty means "pointwise"
	Ftype  string     `json:"ftype"`  // value function type; e.g. "cte"
	Fprms  dbf.Params `json:"fprms"`  // value function parameters
}

// Func returns the time function giving this record's prescribed value.
// Unknown function types panic.
func (o *BcData) Func() (fcn dbf.T) {
	ftype := o.Ftype
	if ftype == "" {
		ftype = "cte"
	}
	return dbf.New(ftype, o.Fprms)
}

// MeshData holds the mesh portion of a problem file
type MeshData struct {
	Ndim  int         `json:"ndim"`  // space dimension
	Verts [][]float64 `json:"verts"` // vertex coordinates
	Cells [][]int     `json:"cells"` // cell connectivities
	Parts []int       `json:"parts"` // owning processor per cell; empty means all on processor 0
}

// Problem holds one assembly problem read from a JSON file
type Problem struct {
	Name   string    `json:"name"`   // problem name
	Kappa  float64   `json:"kappa"`  // diffusion coefficient
	Source float64   `json:"source"` // uniform source term
	Msh    MeshData  `json:"mesh"`   // mesh data
	Bcs    []*BcData `json:"bcs"`    // essential boundary conditions
}

// ReadProblem reads a problem description from a JSON file
func ReadProblem(fn string) (o *Problem, err error) {
	if _, errSt := os.Stat(fn); errSt != nil {
		return nil, chk.Err("cannot read problem file:\n%v", errSt)
	}
	b := io.ReadFile(fn)
	o = new(Problem)
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot parse problem file %q:\n%v", fn, err)
	}
	if o.Msh.Ndim < 1 || len(o.Msh.Verts) == 0 || len(o.Msh.Cells) == 0 {
		return nil, chk.Err("problem file %q has no usable mesh", fn)
	}
	if len(o.Msh.Parts) > 0 && len(o.Msh.Parts) != len(o.Msh.Cells) {
		return nil, chk.Err("mesh has %d cells but %d partition entries", len(o.Msh.Cells), len(o.Msh.Parts))
	}
	return
}

// Mesh builds the mesh structure for the given processor
func (o *Problem) Mesh(proc int) (m *msh.Mesh, err error) {
	m, err = msh.New(o.Msh.Ndim, o.Msh.Verts, o.Msh.Cells)
	if err != nil {
		return nil, chk.Err("cannot build mesh of problem %q:\n%v", o.Name, err)
	}
	m.Proc = proc
	for i, p := range o.Msh.Parts {
		m.Cells[i].Part = p
	}
	return
}

// Dirichlets builds the boundary-condition set for the given function space,
// evaluating the value functions at time t and at each vertex coordinate
func (o *Problem) Dirichlets(space *fem.FunctionSpace, t float64) (ebcs *fem.Dirichlets, err error) {
	ebcs = &fem.Dirichlets{Gth: fem.MpiGatherer{}}
	for i, bc := range o.Bcs {
		fcn := bc.Func()
		vals := make(map[int]float64)
		for _, v := range bc.Verts {
			if v < 0 || v >= len(o.Msh.Verts) {
				return nil, chk.Err("boundary condition %d references inexistent vertex %d", i, v)
			}
			vals[v] = fcn.F(t, o.Msh.Verts[v])
		}
		method := bc.Method
		if method == "" {
			method = fem.MethodPointwise
		}
		if err = ebcs.Add(space, method, vals); err != nil {
			return nil, chk.Err("boundary condition %d cannot be recorded:\n%v", i, err)
		}
	}
	return
}
