package hydraulics

import "github.com/cpmech/waternet/net"

// headlossCoeffs computes P[k]/Y[k] for every link, dispatching on type.
// PRV/PSV/FCV links with a live (non-fixed) setting are left with P=0 here;
// their matrix contribution is computed separately by valveCoeffs once
// node row assignments are known.
func (s *State) headlossCoeffs() {
	for _, l := range s.Net.Links {
		k := l.Index
		switch l.Type {
		case net.Pipe, net.CVPipe:
			s.pipeCoeff(k)
		case net.Pump:
			s.pumpCoeff(k)
		case net.PBV:
			s.pbvCoeff(k)
		case net.TCV:
			s.tcvCoeff(k)
		case net.GPV:
			s.gpvCoeff(k)
		case net.FCV, net.PRV, net.PSV:
			if l.Setting == net.Missing {
				s.valveCoeff(k)
			} else {
				s.P[k] = 0.0
			}
		}
	}
}

// linkCoeffs folds every link's P/Y contribution into the assembled
// system and accumulates each junction's flow imbalance in Xtmp. Links
// with P == 0 are active-status valves handled separately by valveCoeffs.
func (s *State) linkCoeffs() {
	for _, l := range s.Net.Links {
		k := l.Index
		if s.P[k] == 0.0 {
			continue
		}
		n1, n2 := l.N1, l.N2
		s.Xtmp[n1] -= l.Flow
		s.Xtmp[n2] += l.Flow

		s.Solver.AddOffByLink(k, -s.P[k])

		if net.IsJunction(n1, s.Net.Njuncs) {
			s.Solver.AddDiag(n1, s.P[k])
			rhsAdd(s, n1, s.Y[k])
		} else {
			rhsAdd(s, n2, s.P[k]*s.Head[n1])
		}

		if net.IsJunction(n2, s.Net.Njuncs) {
			s.Solver.AddDiag(n2, s.P[k])
			rhsAdd(s, n2, -s.Y[k])
		} else {
			rhsAdd(s, n1, s.P[k]*s.Head[n2])
		}
	}
}

// nodeCoeffs folds each junction's demand outflow into its flow imbalance
// and carries the result onto the right-hand side.
func (s *State) nodeCoeffs() {
	for i := 1; i <= s.Net.Njuncs; i++ {
		s.Xtmp[i] -= s.DemandFlow[i]
		rhsAdd(s, i, s.Xtmp[i])
	}
}

// valveCoeffs computes the matrix contribution of every PRV, PSV, and FCV
// whose status isn't fixed OPEN/CLOSED (those were already folded in by
// headlossCoeffs+linkCoeffs above).
func (s *State) valveCoeffs() {
	for _, l := range s.Net.Links {
		if l.Setting == net.Missing {
			continue
		}
		switch l.Type {
		case net.PRV:
			s.prvCoeff(l.Index, l.N1, l.N2)
		case net.PSV:
			s.psvCoeff(l.Index, l.N1, l.N2)
		case net.FCV:
			s.fcvCoeff(l.Index, l.N1, l.N2)
		}
	}
}

// Assemble resets the working arrays and rebuilds the full linearized
// system -- link, emitter, demand, and leak contributions, then node flow
// balance, then the special active-valve pass -- ready for a Cholesky
// solve.
func (s *State) Assemble() {
	s.Solver.Reset()
	for i := range s.Rhs {
		s.Rhs[i] = 0
	}
	for i := range s.Xtmp {
		s.Xtmp[i] = 0
	}

	s.headlossCoeffs()
	s.linkCoeffs()
	s.emitterCoeffs()
	s.demandCoeffs()
	s.leakCoeffs()
	s.nodeCoeffs()
	s.valveCoeffs()
}
