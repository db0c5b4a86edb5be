package hydraulics

import (
	"math"

	"github.com/cpmech/waternet/net"
)

// FAVAD (fixed and variable area discharge) models a leaky pipe as
// Q = Co*L*(Ao + m*H)*sqrt(H), where Co is an orifice coefficient, L the
// pipe length, Ao the fixed leak area per unit length, m the change in
// leak area per unit pressure head, and H the pressure head. The inverted
// form is used as a pair of equivalent emitters at each end node:
//
//	H = Cfa * Qfa^2        (fixed-area leakage)
//	H = Cva * Qva^(2/3)    (variable-area leakage)
const leakOrificeCoeff = 4.8149866e-6 // Co, with sq.mm -> sq.m and length-unit folded in

// leakAgg is a junction's precomputed aggregate leak coefficients, summed
// from every connected pipe's half-length contribution.
type leakAgg struct {
	cfa, cva float64 // zero means "this junction has no leakage of that kind"
}

// buildLeakAggregates sums each pipe's fixed/variable-area leak
// contribution onto its junction end nodes (half the pipe's length at
// each end; the full length when the other end is a tank or reservoir,
// since those don't carry a leakage demand of their own), then inverts
// the sum into the Cfa/Cva coefficients used by leakHeadloss.
func buildLeakAggregates(n *net.Network) []leakAgg {
	aggs := make([]leakAgg, n.Njuncs+1)
	for _, l := range n.Links {
		if l.Type != net.Pipe && l.Type != net.CVPipe {
			continue
		}
		if l.LeakArea == 0.0 && l.LeakExpansion == 0.0 {
			continue
		}
		n1Junc := net.IsJunction(l.N1, n.Njuncs)
		n2Junc := net.IsJunction(l.N2, n.Njuncs)
		if !n1Junc && !n2Junc {
			continue
		}
		length := l.Length / 100.0
		if n1Junc && n2Junc {
			length *= 0.5
		}
		cArea := leakOrificeCoeff * l.LeakArea * length
		cExpan := leakOrificeCoeff * l.LeakExpansion * length
		if n1Junc {
			aggs[l.N1].cfa += cArea
			aggs[l.N1].cva += cExpan
		}
		if n2Junc {
			aggs[l.N2].cfa += cArea
			aggs[l.N2].cva += cExpan
		}
	}
	for i := range aggs {
		if aggs[i].cfa > 0.0 {
			aggs[i].cfa = 1.0 / (aggs[i].cfa * aggs[i].cfa)
		} else {
			aggs[i].cfa = 0.0
		}
		if aggs[i].cva > 0.0 {
			aggs[i].cva = 1.0 / math.Pow(aggs[i].cva, 2.0/3.0)
		} else {
			aggs[i].cva = 0.0
		}
	}
	return aggs
}

// HasLeakage reports whether any junction in the network carries a
// nonzero leak coefficient.
func (s *State) HasLeakage() bool {
	for _, a := range s.leaks {
		if a.cfa != 0 || a.cva != 0 {
			return true
		}
	}
	return false
}

// initLeakFlows seeds a nonzero starting leak flow at every leaking
// junction, as the barrier-function linearization below is singular at
// exactly zero flow.
func (s *State) initLeakFlows() {
	for i, a := range s.leaks {
		if a.cfa > 0.0 {
			s.leakFA[i] = 0.001
		}
		if a.cva > 0.0 {
			s.leakVA[i] = 0.001
		}
		s.LeakFlow[i] = s.leakFA[i] + s.leakVA[i]
	}
}

// evalLeakHeadloss evaluates the inverted leakage relation hloss = c*q^(1/n)
// and its gradient, with a smooth lower barrier keeping flow from going
// negative.
func evalLeakHeadloss(q, c, n float64) (hloss, hgrad float64) {
	inv := 1.0 / n
	hgrad = inv * c * math.Pow(abs(q), inv-1.0)
	hloss = hgrad * q / inv
	a := 1.0e9 * q
	b := math.Sqrt(a*a + 1.0e-6)
	hloss += (a - b) / 2.0
	hgrad += (1.0e9 / 2.0) * (1.0 - a/b)
	return
}

// leakHeadloss returns the fixed- and variable-area head loss/gradient
// pairs for junction i's current leak flow split, or ok=false if it has no
// leakage at all.
func (s *State) leakHeadloss(i int) (hfa, gfa, hva, gva float64, ok bool) {
	a := s.leaks[i]
	if a.cfa == 0.0 && a.cva == 0.0 {
		return 0, 0, 0, 0, false
	}
	qfa, qva := s.leakSplit(i)
	if a.cfa > 0.0 {
		hfa, gfa = evalLeakHeadloss(qfa, a.cfa, 0.5)
	}
	if a.cva > 0.0 {
		hva, gva = evalLeakHeadloss(qva, a.cva, 1.5)
	}
	return hfa, gfa, hva, gva, true
}

// leakSplit holds the running fixed/variable-area leak flow split per
// junction; stored inline in LeakFlow as their sum, with the split tracked
// separately since the two halves converge at different rates.
func (s *State) leakSplit(i int) (qfa, qva float64) {
	return s.leakFA[i], s.leakVA[i]
}

// leakCoeffs adds every leaking junction's contribution to the assembled
// system, mirroring emitterCoeffs's pattern of two independent equivalent
// emitters summed onto the same row.
func (s *State) leakCoeffs() {
	for i := 1; i <= s.Net.Njuncs; i++ {
		hfa, gfa, hva, gva, ok := s.leakHeadloss(i)
		if !ok {
			continue
		}
		node := s.Net.Nodes[i-1]
		if gfa > 0.0 {
			s.Solver.AddDiag(i, 1.0/gfa)
			rhsAdd(s, i, (hfa+node.Elevation)/gfa)
		}
		if gva > 0.0 {
			s.Solver.AddDiag(i, 1.0/gva)
			rhsAdd(s, i, (hva+node.Elevation)/gva)
		}
		s.Xtmp[i] -= s.LeakFlow[i]
	}
}

// leakFlowChange applies the GGA flow-update formula to junction i's
// fixed- and variable-area leak flows after a linear solve, returning the
// total change (used the same way an emitter or PDA flow change is).
func (s *State) leakFlowChange(i int, relax float64) float64 {
	hfa, gfa, hva, gva, ok := s.leakHeadloss(i)
	if !ok {
		return 0
	}
	h := s.Head[i] - s.Net.Nodes[i-1].Elevation
	var dqfa, dqva float64
	if gfa > 0.0 {
		dqfa = (hfa - h) / gfa * relax
		s.leakFA[i] -= dqfa
	}
	if gva > 0.0 {
		dqva = (hva - h) / gva * relax
		s.leakVA[i] -= dqva
	}
	s.LeakFlow[i] = s.leakFA[i] + s.leakVA[i]
	return dqfa + dqva
}

// leakageConverged reports whether every leaking junction's solved flow
// matches the flow a direct evaluation of the FAVAD relation at its
// current pressure would give, within an absolute tolerance of 0.0001.
func (s *State) leakageConverged() bool {
	const tol = 0.0001
	for i := 1; i <= s.Net.Njuncs; i++ {
		a := s.leaks[i]
		if a.cfa == 0 && a.cva == 0 {
			continue
		}
		h := s.Head[i] - s.Net.Nodes[i-1].Elevation
		qref := 0.0
		if h > 0.0 {
			if a.cfa > 0.0 {
				qref = math.Sqrt(h / a.cfa)
			}
			if a.cva > 0.0 {
				qref += math.Pow(h/a.cva, 1.5)
			}
		}
		qtest := s.leakFA[i] + s.leakVA[i]
		if abs(qref-qtest) > tol {
			return false
		}
	}
	return true
}
