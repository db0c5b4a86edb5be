package quality

import (
	"github.com/cpmech/waternet/net"
)

// Step advances water quality by one sub-step dt: pipe and tank bulk/wall
// reaction, advective transport through every link's segment chain, node
// inflow mixing and source injection (in the topological order computed
// by the last UpdateHydraulics call), and mass-balance accounting. htime
// is the absolute simulation clock, used for pattern-driven source
// strength.
func (e *Engine) Step(dt, htime float64) {
	if dt <= 0 {
		return
	}

	switch e.opt.QualityMode {
	case net.QualityAge:
		e.agePipes(dt)
		e.ageTanks(dt)
	case net.QualityTrace:
		// Trace mode is pure advection; no reaction pass.
	default:
		e.reactPipes(dt)
		e.reactTanks(dt)
	}

	e.transportAndMix(dt, htime)
}

func (e *Engine) agePipes(dt float64) {
	for _, l := range e.n.Links {
		ch := e.linkChain[l.Index]
		for i := range ch {
			ch[i].C += dt / 3600.0
		}
	}
}

func (e *Engine) ageTanks(dt float64) {
	for i, t := range e.n.Tanks {
		if t.IsReservoir() {
			continue
		}
		if t.Mix == net.Mix2Comp {
			e.tank2[i].mixC += dt / 3600.0
			e.tank2[i].stagC += dt / 3600.0
			continue
		}
		ch := e.tankChain[i]
		for j := range ch {
			ch[j].C += dt / 3600.0
		}
	}
}

// reactPipes applies bulk and Sherwood-corrected wall reaction to every
// pipe segment, mirroring qualreact.c's reactpipes.
func (e *Engine) reactPipes(dt float64) {
	for _, l := range e.n.Links {
		if l.Type != net.Pipe && l.Type != net.CVPipe {
			continue
		}
		ch := e.linkChain[l.Index]
		for i := range ch {
			cOld := ch[i].C
			cNew, _ := pipeReact(cOld, l, e.wallCoeff[l.Index], e.opt, dt)
			ch[i].C = cNew
			e.Mass.Reacted += (cOld - cNew) * ch[i].V
		}
	}
}

// reactTanks applies bulk reaction to every tank's stored segments (or its
// two compartments), mirroring qualreact.c's reacttanks.
func (e *Engine) reactTanks(dt float64) {
	for i, t := range e.n.Tanks {
		if t.IsReservoir() {
			continue
		}
		if t.Mix == net.Mix2Comp {
			tc := &e.tank2[i]
			cOld := tc.mixC
			tc.mixC, _ = tankReact(tc.mixC, t.Kb, e.opt.TankOrder, e.opt.Climit, dt)
			e.Mass.TankRx += (cOld - tc.mixC) * tc.mixV
			cOld = tc.stagC
			tc.stagC, _ = tankReact(tc.stagC, t.Kb, e.opt.TankOrder, e.opt.Climit, dt)
			e.Mass.TankRx += (cOld - tc.stagC) * tc.stagV
			continue
		}
		ch := e.tankChain[i]
		for j := range ch {
			cOld := ch[j].C
			ch[j].C, _ = tankReact(ch[j].C, t.Kb, e.opt.TankOrder, e.opt.Climit, dt)
			e.Mass.TankRx += (cOld - ch[j].C) * ch[j].V
		}
	}
}

// transportAndMix walks nodes in topological (upstream-first) order,
// mixing each node's inflows, applying its source, and pushing its
// outflow quality into every link or tank it feeds.
func (e *Engine) transportAndMix(dt, htime float64) {
	exitConc := make([]float64, len(e.n.Links)+1)
	tol := e.opt.QualityTolerance

	for _, v := range e.order {
		if tank := e.n.TankByNode(v); tank != nil {
			e.mixTankNode(v, tank, dt, exitConc)
		} else {
			e.mixJunctionNode(v, dt, exitConc)
		}
		e.applySource(v, htime)
		e.pushOutflows(v, dt, tol, exitConc)
	}
}

func (e *Engine) mixJunctionNode(v int, dt float64, exitConc []float64) {
	invol, inmass := e.gatherInflow(v, dt, exitConc)
	if invol > 0 {
		e.nodeQual[v] = inmass / invol
	}
	e.Mass.Inflow += inmass
	if len(e.outLinks[v]) == 0 {
		e.Mass.Outflow += invol * e.nodeQual[v]
	}
}

func (e *Engine) gatherInflow(v int, dt float64, exitConc []float64) (vol, mass float64) {
	for _, lk := range e.inLinks[v] {
		l := e.n.Links[lk-1]
		q := abs(l.Flow) * dt
		if q <= 0 {
			continue
		}
		vol += q
		mass += q * exitConc[lk]
	}
	return vol, mass
}
