// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/jamestiotio/dolfinx/fem"
	"github.com/jamestiotio/dolfinx/inp"
	"github.com/jamestiotio/dolfinx/kern"
	"github.com/jamestiotio/dolfinx/msh"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.WorldRank() == 0 {
				io.PfRed("\nERROR: %v\n", err)
			}
		}
		mpi.Stop()
	}()
	mpi.Start()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "inp/data/poisson4", ".json", true)
	verbose := io.ArgToBool(1, true)
	atTime := io.ArgToFloat(2, 0)

	// message
	if mpi.WorldRank() == 0 && verbose {
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"evaluate boundary values at time", "atTime", atTime,
		))
	}

	// read problem
	prob, err := inp.ReadProblem(fnamepath)
	if err != nil {
		chk.Panic("cannot read problem:\n%v", err)
	}

	// mesh and function space
	proc := 0
	distr := mpi.IsOn() && mpi.WorldSize() > 1
	if distr {
		proc = mpi.WorldRank()
	}
	m, err := prob.Mesh(proc)
	if err != nil {
		chk.Panic("cannot build mesh:\n%v", err)
	}
	space := &fem.FunctionSpace{Name: "u", Dofs: &msh.ScalarDofs{M: m}}

	// forms
	a, err := fem.NewBilinearForm(m, space, space, kern.Stiffness, prob.Kappa)
	if err != nil {
		chk.Panic("cannot create bilinear form:\n%v", err)
	}
	L, err := fem.NewLinearForm(m, space, kern.Load, prob.Source)
	if err != nil {
		chk.Panic("cannot create linear form:\n%v", err)
	}

	// boundary conditions
	ebcs, err := prob.Dirichlets(space, atTime)
	if err != nil {
		chk.Panic("cannot build boundary conditions:\n%v", err)
	}
	if mpi.WorldRank() == 0 && verbose {
		io.Pf("%v\n", ebcs.List())
	}

	// assemble system
	asm, err := fem.NewAssembler([][]*fem.Form{{a}}, []*fem.Form{L}, ebcs)
	if err != nil {
		chk.Panic("cannot create assembler:\n%v", err)
	}
	asm.Verbose = verbose
	A := new(fem.SpMatrix)
	b := &fem.DsVector{Distr: distr}
	if err = asm.AssembleSystem(A, b); err != nil {
		chk.Panic("assembly failed:\n%v", err)
	}

	// report
	if mpi.WorldRank() == 0 && verbose {
		io.Pf("> system assembled: %d equations, %d constrained\n", space.Dofs.NumDofs(), len(A.Fixed))
		if space.Dofs.NumDofs() <= 16 {
			io.Pf("A =\n%v", la.NewMatrixDeep2(A.ToDense()).Print("%10.4f"))
			io.Pf("\nb =%10.4f\n", b.Values())
		}
	}
}
