package hydraulics

import (
	"math"

	"github.com/cpmech/waternet/net"
)

// pumpCoeff computes P[k] and Y[k] for a pump link, following its curve
// kind. Closed pumps or a zero speed setting are treated as a very
// high-resistance pipe so the GGA assembly still sees a finite coefficient.
func (s *State) pumpCoeff(k int) {
	l := s.Net.Links[k-1]
	setting := l.Setting
	if l.Status <= net.Closed || setting == 0.0 {
		s.P[k] = 1.0 / net.CBIG
		s.Y[k] = l.Flow
		return
	}

	pump := s.Net.Pumps[l.PumpIndex-1]
	q := abs(l.Flow)

	var h0, r, hgrad, hloss float64
	if pump.CurveType == net.CustomCurve {
		curve := s.Net.Curves[pump.CurveIndex-1]
		slope, intercept := curve.Slope(q / setting)
		pump.H0 = intercept
		pump.R = -slope
		pump.N = 1.0

		hgrad = pump.R * setting
		hloss = -pump.H0*setting*setting + hgrad*l.Flow
	} else {
		h0 = -setting * setting * pump.H0
		n := pump.N
		r = pump.R * math.Pow(setting, 2.0-n)

		qa := math.Pow(s.Opt.RQtol/n/r, 1.0/(n-1.0))
		if q <= qa {
			hgrad = s.Opt.RQtol
			hloss = h0 + hgrad*l.Flow
		} else {
			hgrad = n * r * math.Pow(q, n-1.0)
			hloss = h0 + hgrad*l.Flow/n
		}
	}

	s.P[k] = 1.0 / hgrad
	s.Y[k] = hloss / hgrad
}

// PreparePumps derives (H0, R, N) for every non-custom pump curve and
// records each pump's full-speed shutoff head in Hmax, which the status
// engine needs independent of whatever speed-adjusted H0 pumpCoeff last
// left behind.
func PreparePumps(n *net.Network) {
	for _, p := range n.Pumps {
		switch p.CurveType {
		case net.CustomCurve:
			curve := n.Curves[p.CurveIndex-1]
			p.Hmax = curve.Y[0]
		case net.ConstHP:
			p.Hmax = net.BIG
		default:
			curve := n.Curves[p.CurveIndex-1]
			p.H0, p.R, p.N = DerivePumpCurve(curve)
			p.Hmax = p.H0
		}
	}
}

// DerivePumpCurve computes (H0, R, N) for single-point and three-point pump
// curve inputs, the one-time setup step a custom curve skips (it derives
// its local slope/intercept per-flow instead, in pumpCoeff).
//
// Single-point: the curve's one (Q,H) pair plus the shutoff assumption
// H0 = 1.33*H and a flow-at-1.33x-design-head-to-zero extrapolation yield
// the standard EPANET closed-form (n=2 power law through the origin-offset
// triple). Three-point: N is solved from the ratio of head drops between
// the two off-design points, then R from either point.
func DerivePumpCurve(curve *net.Curve) (h0, r, n float64) {
	switch len(curve.X) {
	case 1:
		q1, h1 := curve.X[0], curve.Y[0]
		h0 = 1.33333 * h1
		r = (h0 - h1) / math.Pow(q1, 2.0)
		n = 2.0
		return
	case 3:
		q0, h0v := curve.X[0], curve.Y[0]
		q1, h1 := curve.X[1], curve.Y[1]
		q2, h2 := curve.X[2], curve.Y[2]
		h0 = h0v
		if q0 != 0 || h1 >= h0 || h2 >= h1 {
			return h0, 0, 0
		}
		n = math.Log((h0-h1)/(h0-h2)) / math.Log(q1/q2)
		r = -(h1 - h0) / math.Pow(q1, n)
		return
	default:
		return 0, 0, 0
	}
}
