package hydraulics

import (
	"math"

	"github.com/cpmech/waternet/net"
)

const tiny = 1.0e-6

// valveCoeff computes P[k] and Y[k] for a completely open, closed, or
// minor-loss-only throttled valve -- the fallback path every other valve
// family reduces to once its own special-case conditions don't apply.
func (s *State) valveCoeff(k int) {
	l := s.Net.Links[k-1]
	flow := l.Flow

	if l.Status <= net.Closed {
		s.P[k] = 1.0 / net.CBIG
		s.Y[k] = flow
		return
	}

	if l.Km > 0.0 {
		q := abs(flow)
		qa := s.Opt.RQtol / 2.0 / l.Km
		var hgrad, y float64
		if q <= qa {
			hgrad = s.Opt.RQtol
			y = flow
		} else {
			hgrad = 2.0 * l.Km * q
			y = flow / 2.0
		}
		s.P[k] = 1.0 / hgrad
		s.Y[k] = y
		return
	}

	s.P[k] = 1.0 / net.CSMALL
	s.Y[k] = flow
}

// pbvCoeff handles a pressure-breaker valve: force the head loss to equal
// its setting unless the valve's own minor loss already exceeds it, in
// which case it behaves as an open pipe.
func (s *State) pbvCoeff(k int) {
	l := s.Net.Links[k-1]
	if l.Setting == net.Missing || l.Setting == 0.0 {
		s.valveCoeff(k)
		return
	}
	if l.Km*l.Flow*l.Flow > l.Setting {
		s.valveCoeff(k)
		return
	}
	s.P[k] = net.CBIG
	s.Y[k] = l.Setting * net.CBIG
}

// tcvCoeff handles a throttle control valve by converting its setting to a
// synthetic minor-loss coefficient and falling through to the open-pipe
// path, then restoring the link's real Km.
func (s *State) tcvCoeff(k int) {
	l := s.Net.Links[k-1]
	km := l.Km
	if l.Setting != net.Missing {
		l.Km = 0.02517 * l.Setting / (l.Diameter * l.Diameter * l.Diameter * l.Diameter)
	}
	s.valveCoeff(k)
	l.Km = km
}

// gpvCoeff handles a general-purpose valve, whose setting names a
// head-loss curve rather than a numeric target; it is treated as a pipe
// when closed, otherwise the local slope/intercept of the curve segment
// bracketing the current flow is used directly.
func (s *State) gpvCoeff(k int) {
	l := s.Net.Links[k-1]
	if l.Status == net.Closed {
		s.valveCoeff(k)
		return
	}
	curveIdx := int(math.Round(l.Setting))
	curve := s.Net.Curves[curveIdx-1]
	q := math.Max(abs(l.Flow), tiny)
	slope, intercept := curve.Slope(q)
	r := math.Max(slope, tiny)
	s.P[k] = 1.0 / r
	s.Y[k] = (intercept/r + q) * sgn(l.Flow)
}

// prvCoeff handles a pressure-reducing valve. When ACTIVE it breaks the
// network at the valve: the downstream node's head is pinned to the
// setting via a stiff diagonal penalty, and Y is set so the Newton step
// converges the valve's own flow to the downstream node's flow imbalance.
func (s *State) prvCoeff(k, n1, n2 int) {
	l := s.Net.Links[k-1]
	i, j := n1, n2
	hset := s.Net.Nodes[n2-1].Elevation + l.Setting

	if l.Status == net.Active {
		s.P[k] = 0.0
		s.Y[k] = l.Flow + s.Xtmp[n2]
		s.Solver.AddDiag(j, net.CBIG)
		rhsAdd(s, j, hset*net.CBIG)
		if s.Xtmp[n2] < 0.0 {
			rhsAdd(s, i, s.Xtmp[n2])
		}
		return
	}

	s.valveCoeff(k)
	s.Solver.AddOffByLink(k, -s.P[k])
	s.Solver.AddDiag(i, s.P[k])
	s.Solver.AddDiag(j, s.P[k])
	rhsAdd(s, i, s.Y[k]-l.Flow)
	rhsAdd(s, j, -(s.Y[k] - l.Flow))
}

// psvCoeff handles a pressure-sustaining valve, the upstream/downstream
// mirror of prvCoeff.
func (s *State) psvCoeff(k, n1, n2 int) {
	l := s.Net.Links[k-1]
	i, j := n1, n2
	hset := s.Net.Nodes[n1-1].Elevation + l.Setting

	if l.Status == net.Active {
		s.P[k] = 0.0
		s.Y[k] = l.Flow - s.Xtmp[n1]
		s.Solver.AddDiag(i, net.CBIG)
		rhsAdd(s, i, hset*net.CBIG)
		if s.Xtmp[n1] > 0.0 {
			rhsAdd(s, j, s.Xtmp[n1])
		}
		return
	}

	s.valveCoeff(k)
	s.Solver.AddOffByLink(k, -s.P[k])
	s.Solver.AddDiag(i, s.P[k])
	s.Solver.AddDiag(j, s.P[k])
	rhsAdd(s, i, s.Y[k]-l.Flow)
	rhsAdd(s, j, -(s.Y[k] - l.Flow))
}

// fcvCoeff handles a flow control valve. When ACTIVE it breaks the network
// and injects the setting flow as an external demand/supply pair so the
// valve flow itself is pinned; otherwise it behaves as an open pipe.
func (s *State) fcvCoeff(k, n1, n2 int) {
	l := s.Net.Links[k-1]
	q := l.Setting
	i, j := n1, n2

	if l.Status == net.Active {
		s.Xtmp[n1] -= q
		rhsAdd(s, i, -q)
		s.Xtmp[n2] += q
		rhsAdd(s, j, q)
		s.P[k] = 1.0 / net.CBIG
		s.Solver.AddOffByLink(k, -s.P[k])
		s.Solver.AddDiag(i, s.P[k])
		s.Solver.AddDiag(j, s.P[k])
		s.Y[k] = l.Flow - q
		return
	}

	s.valveCoeff(k)
	s.Solver.AddOffByLink(k, -s.P[k])
	s.Solver.AddDiag(i, s.P[k])
	s.Solver.AddDiag(j, s.P[k])
	rhsAdd(s, i, s.Y[k]-l.Flow)
	rhsAdd(s, j, -(s.Y[k] - l.Flow))
}
