package sparse

import "github.com/cpmech/waternet/net"

// Solver is the assembled GGA linear system for one network topology,
// reused across Newton iterations and rebuilt only when the topology
// changes.
type Solver struct {
	N   int
	sym *Symbolic
	num *Numeric
}

// NewSolver runs the full symbolic phase (parallel-link elimination,
// minimum-degree reordering, symbolic factor, link-to-offset map) for the
// junction-junction subgraph implied by links, where each entry is
// (n1, n2, linkIndex) in original node indexing restricted to links whose
// both endpoints are junctions (njuncs is the junction count / system
// order).
func NewSolver(njuncs int, links [][3]int) *Solver {
	es := NewEdgeSet(njuncs, links)
	ord := MinimumDegree(es)
	sym := Factor(es, ord)
	return &Solver{N: njuncs, sym: sym, num: NewNumeric(sym)}
}

// JunctionLinks extracts the (n1, n2, linkIndex) triples needed by
// NewSolver from a Network, keeping only links with both endpoints in the
// junction range.
func JunctionLinks(n *net.Network) [][3]int {
	var out [][3]int
	for _, l := range n.Links {
		if net.IsJunction(l.N1, n.Njuncs) && net.IsJunction(l.N2, n.Njuncs) {
			out = append(out, [3]int{l.N1, l.N2, l.Index})
		}
	}
	return out
}

// Reset begins a new coefficient-assembly pass.
func (s *Solver) Reset() { s.num.Reset() }

// AddDiag adds val to the diagonal entry for junction index orig.
func (s *Solver) AddDiag(orig int, val float64) { s.num.AddDiag(orig, val) }

// AddOffByLink adds val to the off-diagonal cell owned by linkIndex.
func (s *Solver) AddOffByLink(linkIndex int, val float64) { s.num.AddOffByLink(linkIndex, val) }

// FactorAndSolve factors the currently assembled matrix and solves for the
// head-correction vector given the RHS f in original 1-based node
// indexing (size N+1, index 0 unused). Returns an errs.Error(SingularMatrix)
// naming the offending junction on failure.
func (s *Solver) FactorAndSolve(f []float64) ([]float64, error) {
	if err := s.num.Factorize(); err != nil {
		return nil, err
	}
	return s.num.Solve(f), nil
}
