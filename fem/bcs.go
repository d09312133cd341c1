// Copyright 2021 The Dolfinx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

// MethodPointwise marks boundary conditions whose values are determined
// locally on each processor; these need no cross-processor gather. All other
// methods require a gather before the values are used.
const MethodPointwise = "pointwise"

// Dirichlet holds one essential boundary condition: prescribed values at
// global dofs of one function space
type Dirichlet struct {
	Space  *FunctionSpace  // constrained function space
	Method string          // application method; e.g. "pointwise", "topological"
	Vals   map[int]float64 // dof => prescribed value
}

// Gatherer is the cross-processor merge contract for boundary values. Gather
// must be idempotent: merging an already merged map returns the same map.
type Gatherer interface {
	Gather(space *FunctionSpace, vals map[int]float64) (map[int]float64, error)
}

// Dirichlets records the active essential boundary conditions of one
// assembly pass. The collection is read-only during assembly; only the
// cross-processor gather produces new (merged) maps.
type Dirichlets struct {
	Bcs []*Dirichlet // active constraints
	Gth Gatherer     // cross-processor merge collaborator; may be nil in serial runs
}

// Add records prescribed values for dofs of the given space
func (o *Dirichlets) Add(space *FunctionSpace, method string, vals map[int]float64) (err error) {
	if space == nil {
		return chk.Err("boundary condition requires a function space")
	}
	if len(vals) == 0 {
		return chk.Err("boundary condition requires at least one prescribed dof value")
	}
	o.Bcs = append(o.Bcs, &Dirichlet{space, method, vals})
	return
}

// ValuesFor merges the constraints applicable to one axis into a single
// dof => value map: a constraint applies if the queried space contains its
// space. In distributed runs the merged map is gathered across processors,
// at most once per call, unless every applicable constraint is pointwise.
func (o *Dirichlets) ValuesFor(space *FunctionSpace, distr bool) (vals map[int]float64, err error) {
	vals = make(map[int]float64)
	needGather := false
	for _, bc := range o.Bcs {
		if space.Contains(bc.Space) {
			for eq, v := range bc.Vals {
				vals[eq] = v
			}
			if bc.Method != MethodPointwise {
				needGather = true
			}
		}
	}
	if distr && needGather {
		if o.Gth == nil {
			return nil, chk.Err("boundary values require a cross-processor gather but no gatherer is set")
		}
		vals, err = o.Gth.Gather(space, vals)
		if err != nil {
			return nil, chk.Err("gather of boundary values failed:\n%v", err)
		}
	}
	return
}

// List returns a sorted listing of all recorded constraints
func (o *Dirichlets) List() (l string) {
	l = io.Sf("%8s%12s%23s\n", "dof", "method", "value")
	for _, bc := range o.Bcs {
		eqs := make([]int, 0, len(bc.Vals))
		for eq := range bc.Vals {
			eqs = append(eqs, eq)
		}
		sort.Ints(eqs)
		method := bc.Method
		if method == "" {
			method = MethodPointwise
		}
		for _, eq := range eqs {
			l += io.Sf("%8d%12s%23.13f\n", eq, method, bc.Vals[eq])
		}
	}
	return
}

// MpiGatherer merges boundary maps across processors with all-reduce sums.
// Every processor ends up with the complete map; entries present on more
// than one processor are averaged, so gathering a gathered map returns the
// same values.
type MpiGatherer struct{}

// Gather merges vals across all processors. In serial runs the map is
// returned unchanged.
func (o MpiGatherer) Gather(space *FunctionSpace, vals map[int]float64) (res map[int]float64, err error) {
	if !mpi.IsOn() || mpi.WorldSize() < 2 {
		return vals, nil
	}
	n := space.Dofs.NumDofs()
	v := make([]float64, n)
	c := make([]float64, n)
	for eq, val := range vals {
		if eq < 0 || eq >= n {
			return nil, chk.Err("boundary condition at dof %d is outside [0,%d)", eq, n)
		}
		v[eq] = val
		c[eq] = 1
	}
	comm := mpi.NewCommunicator(nil)
	sv := make([]float64, n)
	sc := make([]float64, n)
	comm.AllReduceSum(sv, v)
	comm.AllReduceSum(sc, c)
	return mergeCounted(sv, sc), nil
}

// mergeCounted converts summed values and presence counts into a dof map,
// averaging entries reported by more than one processor. Running the merged
// map through another sum-and-merge round reproduces it, which is what lets
// a gathered map be gathered again without drift.
func mergeCounted(v, c []float64) (res map[int]float64) {
	res = make(map[int]float64)
	for eq := range v {
		if c[eq] > 0 {
			res[eq] = v[eq] / c[eq]
		}
	}
	return
}
