package hydraulics

import (
	"math"

	"github.com/cpmech/waternet/net"
)

// Darcy-Weisbach friction-factor constants, named the way the formulas
// they serve are commonly written (Swamee-Jain, Dunlop transition).
const (
	a1 = 3.14159265358979323850e+03  // 1000*pi
	a2 = 1.57079632679489661930e+03  // 500*pi
	a8 = 4.61841319859066668690e+00  // 5.74*(pi/4)^0.9
	a9 = -8.68588963806503655300e-01 // -2/ln(10)
	ab = 3.28895476345399058690e-03  // 5.74/4000^0.9
	ac = -5.14214965799093883760e-03 // aa*ab, aa = -2*0.9*2/ln(10)
)

// ResistanceCoeff computes a pipe's head-loss resistance coefficient R for
// the project's selected formula, given diameter and length in feet and a
// roughness value whose meaning depends on the formula: Hazen-Williams C,
// Darcy-Weisbach absolute roughness in feet, or Manning's n.
func ResistanceCoeff(formula net.HeadlossFormula, diameter, length, roughness float64) float64 {
	switch formula {
	case net.DarcyWeisbach:
		return length / (2.0 * Gravity * diameter * math.Pow(math.Pi*diameter*diameter/4.0, 2))
	case net.ChezyManning:
		return math.Pow(4.0*roughness/(1.49*math.Pi*diameter*diameter), 2) * math.Pow(diameter/4.0, -4.0/3.0) * length
	default: // Hazen-Williams
		return 4.727 * length / (math.Pow(roughness, 1.852) * math.Pow(diameter, 4.871))
	}
}

// PrecomputeThresholds fills in R and the small-flow linearization
// threshold Qa on every pipe link, using the project's headloss formula and
// the RQtol the options carry. It must be rerun whenever a pipe's
// diameter, length, roughness, or the project's formula changes.
func PrecomputeThresholds(n *net.Network, opt *net.Options) {
	for _, l := range n.Links {
		if l.Type != net.Pipe && l.Type != net.CVPipe {
			continue
		}
		l.R = ResistanceCoeff(opt.HeadlossFormula, l.Diameter, l.Length, l.Roughness)
		if opt.HeadlossFormula == net.DarcyWeisbach {
			// Darcy-Weisbach's linearization happens inside dwPipeCoeff via the
			// Reynolds-number laminar branch instead of a precomputed Qa.
			continue
		}
		nExp := hazenManningExponent(opt.HeadlossFormula)
		l.Qa = math.Pow(opt.RQtol/nExp/l.R, 1.0/(nExp-1.0))
	}
}

func hazenManningExponent(formula net.HeadlossFormula) float64 {
	if formula == net.ChezyManning {
		return 2.0
	}
	return 1.852
}

// pipeCoeff computes P[k] and Y[k] for a pipe link given its absolute flow
// and current status, following the linear-near-zero / power-law split
// common to Hazen-Williams and Chezy-Manning.
func (s *State) pipeCoeff(k int) {
	l := s.Net.Links[k-1]
	flow := l.Flow

	if l.Status <= net.Closed {
		s.P[k] = 1.0 / net.CBIG
		s.Y[k] = flow
		return
	}
	if s.Opt.HeadlossFormula == net.DarcyWeisbach {
		s.dwPipeCoeff(k)
		return
	}

	nExp := hazenManningExponent(s.Opt.HeadlossFormula)
	q := abs(flow)
	r := l.R
	ml := l.Km

	var hgrad, hloss float64
	if q <= l.Qa {
		hgrad = s.Opt.RQtol
		hloss = hgrad * q
	} else {
		hgrad = nExp * r * math.Pow(q, nExp-1.0)
		hloss = hgrad * q / nExp
	}

	if ml > 0.0 {
		hloss += ml * q * q
		hgrad += 2.0 * ml * q
	}

	hloss *= sgn(flow)
	s.P[k] = 1.0 / hgrad
	s.Y[k] = hloss / hgrad
}

// dwPipeCoeff computes P[k] and Y[k] for a pipe under Darcy-Weisbach,
// branching on Reynolds number: Hagen-Poiseuille for laminar flow, the
// friction-factor relation (Swamee-Jain or Dunlop transition) otherwise.
func (s *State) dwPipeCoeff(k int) {
	l := s.Net.Links[k-1]
	flow := l.Flow
	q := abs(flow)
	r := l.R
	ml := l.Km
	e := l.Roughness / l.Diameter
	visc := Viscosity * l.Diameter

	var hloss, hgrad float64
	if q <= a2*visc {
		rr := 16.0 * math.Pi * visc * r
		hloss = flow * (rr + ml*q)
		hgrad = rr + 2.0*ml*q
	} else {
		f, dfdq := frictionFactor(q, e, visc)
		r1 := f*r + ml
		hloss = r1 * q * flow
		hgrad = (2.0 * r1 * q) + (dfdq * r * q * q)
	}

	s.P[k] = 1.0 / hgrad
	s.Y[k] = hloss / hgrad
}

// frictionFactor computes the Darcy-Weisbach friction factor and its
// derivative with respect to flow, given |q|, relative roughness e, and
// s = viscosity*diameter (so that Re = q/s).
func frictionFactor(q, e, s float64) (f, dfdq float64) {
	w := q / s
	if w >= a1 {
		y1 := a8 / math.Pow(w, 0.9)
		y2 := e/3.7 + y1
		y3 := a9 * math.Log(y2)
		f = 1.0 / (y3 * y3)
		dfdq = 1.8 * f * y1 * a9 / y2 / y3 / q
		return
	}
	y2 := e/3.7 + ab
	y3 := a9 * math.Log(y2)
	fa := 1.0 / (y3 * y3)
	fb := (2.0 + ac/(y2*y3)) * fa
	r := w / a2
	x1 := 7.0*fa - fb
	x2 := 0.128 - 17.0*fa + 2.5*fb
	x3 := -0.128 + 13.0*fa - (fb + fb)
	x4 := 0.032 - 3.0*fa + 0.5*fb
	f = x1 + r*(x2+r*(x3+r*x4))
	dfdq = (x2 + r*(2.0*x3+r*3.0*x4)) / s / a2
	return
}
