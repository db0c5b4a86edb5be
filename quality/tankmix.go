package quality

import "github.com/cpmech/waternet/net"

// mixTankNode gathers a tank's inflow volume and mass for this sub-step,
// applies its mixing model, and records the result as the node's outflow
// quality.
func (e *Engine) mixTankNode(v int, tank *net.Tank, dt float64, exitConc []float64) {
	if tank.IsReservoir() {
		return
	}
	idx := tankSliceIndex(e.n, tank)
	invol, inmass := e.gatherInflow(v, dt, exitConc)
	outvol := 0.0
	for _, lk := range e.outLinks[v] {
		outvol += abs(e.n.Links[lk-1].Flow) * dt
	}
	vnet := invol - outvol

	switch tank.Mix {
	case net.MixCSTR:
		e.nodeQual[v] = e.tankMixCSTR(idx, invol, inmass, vnet)
	case net.Mix2Comp:
		e.nodeQual[v] = e.tankMix2Comp(idx, tank, invol, inmass, vnet)
	case net.MixFIFO:
		e.nodeQual[v] = e.tankMixFIFO(idx, invol, inmass, vnet, e.opt.QualityTolerance)
	case net.MixLIFO:
		e.nodeQual[v] = e.tankMixLIFO(idx, invol, inmass, vnet, e.opt.QualityTolerance)
	}
	e.Mass.Inflow += inmass
}

func tankSliceIndex(n *net.Network, t *net.Tank) int {
	for i, tk := range n.Tanks {
		if tk == t {
			return i
		}
	}
	return -1
}

// tankMixCSTR implements the 1-compartment complete-mix model: the single
// segment's volume and concentration update together, grounded on
// qualreact.c's tankmix1.
func (e *Engine) tankMixCSTR(idx int, vin, massIn, vnet float64) float64 {
	ch := e.tankChain[idx]
	if len(ch) == 0 {
		return 0
	}
	seg := &ch[0]
	vnew := seg.V + vin
	if vnew > 0 {
		seg.C = (seg.C*seg.V + massIn) / vnew
	}
	seg.V += vnet
	if seg.V < 0 {
		seg.V = 0
	}
	e.tankChain[idx] = ch
	return seg.C
}

// tankMix2Comp implements the 2-compartment model, grounded on
// qualreact.c's tankmix2: a full-mixing zone of configurable volume that
// overflows into a stagnant zone while filling, and draws it back while
// draining.
func (e *Engine) tankMix2Comp(idx int, tank *net.Tank, vin, massIn, vnet float64) float64 {
	tc := &e.tank2[idx]
	vmz := tank.MixFrac * tank.MaxVolume

	vt := 0.0
	switch {
	case vnet > 0:
		vt = tc.mixV + vnet - vmz
		if vt < 0 {
			vt = 0
		}
		if vin > 0 {
			tc.mixC = (tc.mixC*tc.mixV + massIn) / (tc.mixV + vin)
		}
		if vt > 0 {
			tc.stagC = (tc.stagC*tc.stagV + tc.mixC*vt) / (tc.stagV + vt)
		}
	case vnet < 0:
		if tc.stagV > 0 {
			vt = tc.stagV
			if vt > -vnet {
				vt = -vnet
			}
		}
		if vin+vt > 0 {
			tc.mixC = (tc.mixC*tc.mixV + massIn + tc.stagC*vt) / (tc.mixV + vin + vt)
		}
	}

	if vt > 0 {
		tc.mixV = vmz
		if vnet > 0 {
			tc.stagV += vt
		} else {
			tc.stagV -= vt
			if tc.stagV < 0 {
				tc.stagV = 0
			}
		}
	} else {
		tc.mixV += vnet
		if tc.mixV > vmz {
			tc.mixV = vmz
		}
		if tc.mixV < 0 {
			tc.mixV = 0
		}
		tc.stagV = 0
	}
	return tc.mixC
}

// tankMixFIFO implements the First-In-First-Out model, grounded on
// qualreact.c's tankmix3: inflow joins the newest segment, outflow draws
// from the oldest.
func (e *Engine) tankMixFIFO(idx int, vin, massIn, vnet, tol float64) float64 {
	ch := e.tankChain[idx]
	if len(ch) == 0 {
		return 0
	}
	if vin > 0 {
		cin := massIn / vin
		ch = ch.mergeOrAppend(vin, cin, tol)
	}
	vout := vin - vnet
	var newCh chain
	var vsum, wsum float64
	newCh, vsum, wsum = ch.withdrawFront(vout)
	ch = newCh
	e.tankChain[idx] = ch

	switch {
	case vsum > 0:
		return wsum / vsum
	case len(ch) == 0:
		return 0
	default:
		return ch[0].C
	}
}

// tankMixLIFO implements the Last-In-First-Out model, grounded on
// qualreact.c's tankmix4: inflow and outflow both act on the newest
// (entry) end of the chain.
func (e *Engine) tankMixLIFO(idx int, vin, massIn, vnet, tol float64) float64 {
	ch := e.tankChain[idx]
	if len(ch) == 0 {
		return 0
	}
	cin := 0.0
	if vin > 0 {
		cin = massIn / vin
	}
	reported := ch[len(ch)-1].C

	switch {
	case vnet > 0:
		ch = ch.mergeOrAppend(vnet, cin, tol)
		reported = ch[len(ch)-1].C
	case vnet < 0:
		var vsum, wsum float64
		ch, vsum, wsum = ch.withdrawBack(-vnet)
		if vsum+vin > 0 {
			reported = (wsum + massIn) / (vsum + vin)
		}
	}
	e.tankChain[idx] = ch
	return reported
}

// applySource adjusts node v's outflow quality for its source, if any, per
// its injection type: a fixed concentration setpoint, a boosted addition
// to the mixed result, a mass-rate booster divided by the node's total
// outflow rate, or a flow-paced addition applied whenever the node has
// positive outflow.
func (e *Engine) applySource(v int, htime float64) {
	node := e.n.Nodes[v-1]
	src := node.Src
	if src == nil {
		return
	}
	strength := src.Strength
	if src.Pattern > 0 && src.Pattern <= len(e.n.Patterns) {
		p := e.n.Patterns[src.Pattern-1]
		strength *= p.At(htime, e.opt.PatternStep, int(e.opt.PatternStart))
	}

	outvol := 0.0
	for _, lk := range e.outLinks[v] {
		outvol += abs(e.n.Links[lk-1].Flow)
	}

	switch src.Type {
	case net.Setpoint:
		if strength > e.nodeQual[v] {
			e.nodeQual[v] = strength
		}
	case net.Concentration:
		e.nodeQual[v] += strength
	case net.MassBooster:
		if outvol > 0 {
			e.nodeQual[v] += strength / outvol
		}
	case net.FlowPaced:
		if outvol > 0 {
			e.nodeQual[v] += strength
		}
	}
	e.Mass.Source += strength
}

// pushOutflows advects node v's outflow quality into every link it feeds
// this sub-step: reacting links (pipes) merge it into the entry end of
// their segment chain and withdraw volume dt*|q| from the exit end; pumps
// and valves carry quality through instantaneously with no storage.
func (e *Engine) pushOutflows(v int, dt, tol float64, exitConc []float64) {
	c := e.nodeQual[v]
	for _, lk := range e.outLinks[v] {
		l := e.n.Links[lk-1]
		vol := abs(l.Flow) * dt
		if vol <= 0 {
			exitConc[lk] = c
			continue
		}
		if l.Type == net.Pipe || l.Type == net.CVPipe {
			ch := e.linkChain[lk]
			ch = ch.mergeOrAppend(vol, c, tol)
			var outVol, outConc float64
			ch, outVol, outConc = ch.withdrawFront(vol)
			e.linkChain[lk] = ch
			if outVol <= 0 {
				outConc = c
			}
			exitConc[lk] = outConc
		} else {
			exitConc[lk] = c
		}
	}
}
