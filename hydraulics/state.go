// Package hydraulics implements the per-link head-loss coefficients, the
// discrete status engine, the leak/emitter/pressure-dependent demand
// outflow models, and the damped-Newton GGA solver that ties them together
// with a sparse.Solver.
package hydraulics

import (
	"math"

	"github.com/cpmech/waternet/net"
	"github.com/cpmech/waternet/sparse"
	"github.com/cpmech/waternet/wmetrics"
)

// Kinematic viscosity of water and standard gravity, US-customary units
// (ft^2/s, ft/s^2), matching the internal units the parser is expected to
// convert into.
const (
	Viscosity = 1.1e-5
	Gravity   = 32.2
)

// State holds every per-link and per-node working array the coefficient
// functions and solver read and mutate during a hydraulic solve. One State
// is built per Network and reused across an entire extended-period run;
// Assemble clears the per-iteration accumulators (Rhs, Xtmp) on each pass.
type State struct {
	Net     *net.Network
	Opt     *net.Options
	Solver  *sparse.Solver
	Metrics *wmetrics.Registry

	// per-link, 1-based (index 0 unused)
	P, Y []float64 // head-loss coefficients: P = 1/gradient, Y = hloss/gradient

	// per-node, 1-based, size Nnodes+1
	Head       []float64
	Rhs        []float64 // assembled right-hand side F, original node indexing
	Xtmp       []float64 // node flow-imbalance accumulator, rebuilt every assembly
	DemandFlow []float64 // actual junction demand outflow (PDA) or base*pattern (DDA)
	FullDemand []float64 // target/full junction demand before PDA reduction
	EmitterFlow []float64
	LeakFlow    []float64 // aggregate leak outflow per junction

	leaks        []leakAgg // precomputed per-junction leak aggregates, see leak.go
	leakFA, leakVA []float64 // running fixed-/variable-area leak flow split per junction

	cycles int // not updated: Solve counts status-change cycles in a local variable
}

// NewState allocates a State sized to n and wires the sparse solver built
// over n's junction-junction subgraph.
func NewState(n *net.Network, opt *net.Options, solver *sparse.Solver, metrics *wmetrics.Registry) *State {
	nn := len(n.Nodes)
	nl := len(n.Links)
	s := &State{
		Net:         n,
		Opt:         opt,
		Solver:      solver,
		Metrics:     metrics,
		P:           make([]float64, nl+1),
		Y:           make([]float64, nl+1),
		Head:        make([]float64, nn+1),
		Rhs:         make([]float64, nn+1),
		Xtmp:        make([]float64, nn+1),
		DemandFlow:  make([]float64, n.Njuncs+1),
		FullDemand:  make([]float64, n.Njuncs+1),
		EmitterFlow: make([]float64, n.Njuncs+1),
		LeakFlow:    make([]float64, n.Njuncs+1),
	}
	for _, nd := range n.Nodes {
		s.Head[nd.Index] = nd.Elevation
	}
	s.leaks = buildLeakAggregates(n)
	s.leakFA = make([]float64, n.Njuncs+1)
	s.leakVA = make([]float64, n.Njuncs+1)
	s.initLeakFlows()
	return s
}

// sgn returns -1 for negative x and 1 otherwise, matching the C SGN macro's use in hydcoeffs.c
// (zero maps to +1 there; callers only call it on nonzero flows in
// practice, so this keeps the same convention).
func sgn(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func abs(x float64) float64 { return math.Abs(x) }

// rhsAdd adds val to the right-hand-side accumulator for original node
// index idx.
func rhsAdd(s *State, idx int, val float64) {
	s.Rhs[idx] += val
}
