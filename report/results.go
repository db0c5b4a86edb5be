package report

import (
	"github.com/cpmech/waternet/hydraulics"
	"github.com/cpmech/waternet/net"
	"github.com/cpmech/waternet/quality"
)

// NodeResult is one node's reported state at a single time.
type NodeResult struct {
	Time    float64
	Head    float64
	Demand  float64
	Quality float64
}

// LinkResult is one link's reported state at a single time.
type LinkResult struct {
	Time    float64
	Flow    float64
	Status  net.Status
	Setting float64
}

// Collector accumulates report-step snapshots plus whole-run summaries
// (flow balance, pump energy, reaction totals) across a simulation.
type Collector struct {
	Nodes [][]NodeResult // outer index: node index - 1
	Links [][]LinkResult // outer index: link index - 1

	Flow   FlowBalance
	Pumps  map[int]*PumpEnergy // keyed by Network.Pumps index

	ReactedBulk float64
	ReactedWall float64
	ReactedTank float64
}

// NewCollector allocates a Collector sized to n, with one empty result
// slice per node and link.
func NewCollector(n *net.Network) *Collector {
	c := &Collector{
		Nodes: make([][]NodeResult, len(n.Nodes)),
		Links: make([][]LinkResult, len(n.Links)),
		Pumps: make(map[int]*PumpEnergy, len(n.Pumps)),
	}
	for i := range n.Pumps {
		c.Pumps[i+1] = &PumpEnergy{}
	}
	return c
}

// RecordStep appends one report-step snapshot for every node and link, and
// folds this step's duration into the flow balance and pump energy
// accumulators. qeng is nil when water quality isn't being simulated.
func (c *Collector) RecordStep(n *net.Network, opt *net.Options, st *hydraulics.State, qeng *quality.Engine, htime, dt float64) {
	for i := 1; i <= len(n.Nodes); i++ {
		q := 0.0
		if qeng != nil {
			q = qeng.NodeQuality(i)
		}
		demand := 0.0
		if i <= n.Njuncs {
			demand = st.DemandFlow[i]
		}
		c.Nodes[i-1] = append(c.Nodes[i-1], NodeResult{Time: htime, Head: st.Head[i], Demand: demand, Quality: q})
	}

	for _, l := range n.Links {
		c.Links[l.Index-1] = append(c.Links[l.Index-1], LinkResult{Time: htime, Flow: l.Flow, Status: l.Status, Setting: l.Setting})

		if l.Type == net.Pump && l.PumpIndex > 0 {
			p := n.Pumps[l.PumpIndex-1]
			head := headGain(l, p)
			eff := pumpEfficiency(p, l.Flow, n.Curves)
			priceMult := 1.0
			if p.EnergyPattern > 0 && p.EnergyPattern <= len(n.Patterns) {
				priceMult = n.Patterns[p.EnergyPattern-1].At(htime, opt.PatternStep, int(opt.PatternStart))
			}
			pe := c.Pumps[l.PumpIndex]
			pe.Update(l.Flow, head, eff, priceMult, p.EnergyPrice, dt)
		}
	}

	c.Flow.Update(n, st, dt)

	if qeng != nil {
		c.ReactedBulk = qeng.Mass.Reacted
		c.ReactedTank = qeng.Mass.TankRx
	}
}
