package hydraulics

import (
	"math"

	"github.com/cpmech/waternet/errs"
	"github.com/cpmech/waternet/net"
)

// SolveResult summarizes one hydraulic solve for the caller (time stepper,
// reports, metrics).
type SolveResult struct {
	NewtonIterations int
	StatusCycles     int
	Converged        bool
	Unbalanced       bool
}

// Solve runs the damped-Newton GGA iteration to convergence: an inner loop
// of linearize-solve-relax-update-flows passes, wrapped by an outer loop
// that recomputes discrete link statuses and retries while they're still
// changing. It mutates Head, per-link Flow/Status, and every outflow
// model's internal state in place.
func (s *State) Solve(tol Tolerances) (SolveResult, error) {
	var res SolveResult
	relax := s.Opt.RelaxationFactor
	if relax <= 0 {
		relax = 1.0
	}

	for cycle := 0; ; cycle++ {
		converged, iters, unbalanced, err := s.newtonLoop(relax)
		res.NewtonIterations += iters
		if err != nil {
			return res, err
		}
		res.Converged = converged
		res.Unbalanced = unbalanced

		statusChanged := s.ValveStatus(tol) || s.LinkStatus(tol)
		res.StatusCycles = cycle + 1
		if !statusChanged {
			break
		}
		if cycle+1 >= s.Opt.StatusCycleLimit {
			res.Unbalanced = true
			break
		}
	}

	if s.Metrics != nil {
		s.Metrics.ObserveSolve(res.NewtonIterations, res.StatusCycles, res.Unbalanced)
	}
	if res.Unbalanced && s.Opt.Unbalanced != net.Continue {
		return res, errs.New(errs.HydraulicUnbalanced, "hydraulic step failed to converge after %d iterations", res.NewtonIterations)
	}
	return res, nil
}

// newtonLoop runs the inner Newton iteration to convergence or the trial
// cap; when Unbalanced is Continue it then runs up to UnbalancedMax extra
// iterations at half the current relaxation.
func (s *State) newtonLoop(relax float64) (converged bool, iters int, unbalanced bool, err error) {
	prevErr := math.MaxFloat64
	maxTrials := s.Opt.Trials

	for trial := 0; trial < maxTrials; trial++ {
		iters++
		s.Assemble()
		dh, serr := s.Solver.FactorAndSolve(s.Rhs)
		if serr != nil {
			if s.Metrics != nil {
				s.Metrics.IncSingularPivot()
			}
			return false, iters, false, serr
		}

		relErr := s.applyCorrection(dh, relax)
		if relErr > prevErr && relax > s.Opt.DampLimit && s.Opt.DampLimit > 0 {
			relax *= 0.5
		}
		prevErr = relErr

		if relErr < s.Opt.Accuracy && (!s.HasLeakage() || s.leakageConverged()) {
			return true, iters, false, nil
		}
	}

	if s.Opt.Unbalanced == net.Continue {
		for extra := 0; extra < s.Opt.UnbalancedMax; extra++ {
			iters++
			s.Assemble()
			dh, serr := s.Solver.FactorAndSolve(s.Rhs)
			if serr != nil {
				return false, iters, true, nil
			}
			relErr := s.applyCorrection(dh, relax*0.5)
			if relErr < s.Opt.Accuracy {
				return true, iters, false, nil
			}
		}
	}
	return false, iters, true, nil
}

// applyCorrection applies the relaxed head correction to every junction,
// updates every link's flow via the GGA flow-update formula, updates every
// pressure-dependent outflow model, and returns the relative flow change
// used as the convergence criterion.
func (s *State) applyCorrection(dh []float64, relax float64) float64 {
	for i := 1; i <= s.Net.Njuncs; i++ {
		s.Head[i] += relax * dh[i]
	}

	var num, den float64
	for _, l := range s.Net.Links {
		n1, n2 := l.N1, l.N2
		dh1, dh2 := 0.0, 0.0
		if net.IsJunction(n1, s.Net.Njuncs) {
			dh1 = relax * dh[n1]
		}
		if net.IsJunction(n2, s.Net.Njuncs) {
			dh2 = relax * dh[n2]
		}
		qOld := l.Flow
		qNew := qOld - s.P[l.Index]*(dh1-dh2-s.Y[l.Index])
		l.Flow = qNew
		num += abs(qNew - qOld)
		den += abs(qNew)
	}

	for i := 1; i <= s.Net.Njuncs; i++ {
		if s.Net.Nodes[i-1].Ke != 0.0 {
			dq := s.EmitterFlowChange(i) * relax
			s.EmitterFlow[i] -= dq
			num += abs(dq)
			den += abs(s.EmitterFlow[i])
		}
		if s.Opt.DemandModel == net.PDA && s.FullDemand[i] > 0.0 {
			dq := s.DemandFlowChange(i) * relax
			s.DemandFlow[i] -= dq
			num += abs(dq)
			den += abs(s.DemandFlow[i])
		}
		if dq := s.leakFlowChange(i, relax); dq != 0 {
			num += abs(dq)
			den += abs(s.LeakFlow[i])
		}
	}

	if den < 1.0 {
		den = 1.0
	}
	return num / den
}
