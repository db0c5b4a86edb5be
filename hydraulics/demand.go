package hydraulics

import "math"

// psiPerFoot converts feet of head to PSI, used only for the narrow linear
// range substituted when Preq equals Pmin.
const psiPerFoot = 0.4333

// emitterCoeffs adds the head-loss contribution of every junction emitter
// to the diagonal and RHS, modeling each as a fictitious pipe to a
// fictitious reservoir at the junction's elevation.
func (s *State) emitterCoeffs() {
	for i := 1; i <= s.Net.Njuncs; i++ {
		node := s.Net.Nodes[i-1]
		if node.Ke == 0.0 {
			continue
		}
		hloss, hgrad := s.emitterHeadloss(i)
		s.Solver.AddDiag(i, 1.0/hgrad)
		rhsAdd(s, i, (hloss+node.Elevation)/hgrad)
		s.Xtmp[i] -= s.EmitterFlow[i]
	}
}

func (s *State) emitterHeadloss(i int) (hloss, hgrad float64) {
	node := s.Net.Nodes[i-1]
	ke := math.Max(1e-6, node.Ke)
	qexp := s.Opt.EmitterExponent
	qa := math.Pow(s.Opt.RQtol/ke/qexp, 1.0/(qexp-1.0))
	q := s.EmitterFlow[i]
	if abs(q) <= qa {
		hgrad = s.Opt.RQtol
		hloss = hgrad * q
		return
	}
	hgrad = qexp * ke * math.Pow(abs(q), qexp-1.0)
	hloss = hgrad * q / qexp
	return
}

// demandParams retrieves the pressure range and exponent of the
// project-wide pressure-dependent-demand function.
func (s *State) demandParams() (dp, n float64) {
	if s.Opt.Preq == s.Opt.Pmin {
		return 0.01 / psiPerFoot, 1.0
	}
	return s.Opt.Preq - s.Opt.Pmin, 1.0 / s.Opt.Pexp
}

// demandCoeffs adds the pressure-dependent-demand contribution of every
// positively-demanding junction. A no-op under demand-driven analysis.
func (s *State) demandCoeffs() {
	if s.Opt.DemandModel == 0 { // DDA
		return
	}
	dp, n := s.demandParams()
	for i := 1; i <= s.Net.Njuncs; i++ {
		if s.FullDemand[i] <= 0.0 {
			continue
		}
		hloss, hgrad := demandHeadloss(s.DemandFlow[i], s.FullDemand[i], dp, n)
		s.Solver.AddDiag(i, 1.0/hgrad)
		rhsAdd(s, i, (hloss+s.Net.Nodes[i-1].Elevation+s.Opt.Pmin)/hgrad)
	}
}

// demandHeadloss implements the barrier function delivering a
// pressure-dependent demand d out of a full target dfull: quadratic
// penalties outside [0, dfull], a linear region near zero, and the power
// relation h = dp*(d/dfull)^n in between, so the Newton Jacobian stays
// well-posed across the whole domain.
func demandHeadloss(d, dfull, dp, n float64) (hloss, hgrad float64) {
	const rb = 1.0e9
	const eps = 0.001
	r := d / dfull

	switch {
	case r > 1.0:
		hgrad = rb
		hloss = dp + rb*(d-dfull)
	case r < 0:
		hgrad = rb
		hloss = rb * d
	case r < eps:
		hgrad = dp * math.Pow(eps, n) / dfull / eps
		hloss = hgrad * d
	default:
		hgrad = n * dp * math.Pow(r, n-1.0) / dfull
		hloss = hgrad * d / n
	}
	return
}

// EmitterFlowChange reports the Newton correction to a junction's emitter
// outflow implied by its current head, the same GGA update form as
// DemandFlowChange.
func (s *State) EmitterFlowChange(i int) float64 {
	if s.Net.Nodes[i-1].Ke == 0.0 {
		return 0
	}
	hloss, hgrad := s.emitterHeadloss(i)
	return (hloss - (s.Head[i] - s.Net.Nodes[i-1].Elevation)) / hgrad
}

// DemandFlowChange reports the Newton correction to a junction's
// pressure-dependent demand flow implied by its current head -- used by
// the solver's outflow-update step after each linear solve.
func (s *State) DemandFlowChange(i int) float64 {
	dp, n := s.demandParams()
	hloss, hgrad := demandHeadloss(s.DemandFlow[i], s.FullDemand[i], dp, n)
	return (hloss - s.Head[i] + s.Net.Nodes[i-1].Elevation + s.Opt.Pmin) / hgrad
}
