// Package report collects per-step hydraulic and water-quality results
// into whole-run summaries: the network flow balance, pump energy use, and
// aggregate reaction totals.
package report

import (
	"github.com/cpmech/waternet/hydraulics"
	"github.com/cpmech/waternet/net"
)

// FlowBalance accumulates the network's flow balance across a run,
// grounded on flowbalance.c's running totals: inflow and outflow seen at
// every boundary (demand, emitter, leakage, storage), the demand deficit
// under pressure-dependent analysis, and the overall inflow/outflow ratio.
type FlowBalance struct {
	TotalInflow    float64
	TotalOutflow   float64
	ConsumerDemand float64
	EmitterDemand  float64
	LeakageDemand  float64
	DeficitDemand  float64
	StorageDemand  float64

	LeakagePercent float64 // current-period leakage as a percent of inflow

	elapsed float64
}

// Update folds one hydraulic step's results, weighted by its duration dt,
// into the running totals.
func (fb *FlowBalance) Update(n *net.Network, st *hydraulics.State, dt float64) {
	if dt <= 0 {
		return
	}

	var inflow, outflow, consumer, emitter, leakage, deficit, storage float64

	for i := 1; i <= n.Njuncs; i++ {
		v := st.DemandFlow[i]
		if v < 0 {
			inflow += -v
		} else {
			consumer += v
			outflow += v
		}

		v = st.EmitterFlow[i]
		emitter += v
		outflow += v

		v = st.LeakFlow[i]
		leakage += v
		outflow += v

		if st.Opt.DemandModel == net.PDA && st.FullDemand[i] > 0 {
			if d := st.FullDemand[i] - st.DemandFlow[i]; d > 0 {
				deficit += d
			}
		}
	}

	for _, tank := range n.Tanks {
		v := netTankDemand(n, st, tank.NodeIndex)
		if tank.IsReservoir() {
			if v >= 0 {
				outflow += v
			} else {
				inflow += -v
			}
		} else {
			storage += v
		}
	}

	denom := inflow
	if storage < 0 {
		denom += -storage
	}
	if denom > 0 {
		fb.LeakagePercent = leakage / denom * 100.0
	}

	fb.TotalInflow += inflow * dt
	fb.TotalOutflow += outflow * dt
	fb.ConsumerDemand += consumer * dt
	fb.EmitterDemand += emitter * dt
	fb.LeakageDemand += leakage * dt
	fb.DeficitDemand += deficit * dt
	fb.StorageDemand += storage * dt
	fb.elapsed += dt
}

// netTankDemand is the node-balance equivalent of EPANET's NodeDemand for
// a tank/reservoir node: net outflow through every connected link.
func netTankDemand(n *net.Network, st *hydraulics.State, nodeIndex int) float64 {
	q := 0.0
	for _, l := range n.Links {
		if l.Status <= net.Closed {
			continue
		}
		switch nodeIndex {
		case l.N1:
			q += l.Flow
		case l.N2:
			q -= l.Flow
		}
	}
	return q
}

// Finalize converts the running totals to time-averages and computes the
// overall inflow/outflow ratio, mirroring flowbalance.c's endflowbalance.
func (fb *FlowBalance) Finalize() (ratio float64) {
	seconds := fb.elapsed
	if seconds <= 0 {
		seconds = 1.0
	}
	fb.TotalInflow /= seconds
	fb.TotalOutflow /= seconds
	fb.ConsumerDemand /= seconds
	fb.EmitterDemand /= seconds
	fb.LeakageDemand /= seconds
	fb.DeficitDemand /= seconds
	fb.StorageDemand /= seconds

	qin, qout := fb.TotalInflow, fb.TotalOutflow
	if fb.StorageDemand > 0 {
		qout += fb.StorageDemand
	} else {
		qin -= fb.StorageDemand
	}

	switch {
	case qin == qout:
		ratio = 1.0
	case qin > 0:
		ratio = qout / qin
	default:
		ratio = 0.0
	}
	return ratio
}
