package report

import (
	"math"

	"github.com/cpmech/waternet/net"
)

// hpToKw converts horsepower to kilowatts.
const hpToKw = 0.7457

// specificWeight is water's specific weight in lb/ft^3, used to convert a
// flow-times-head hydraulic power into horsepower.
const specificWeight = 62.4

// PumpEnergy accumulates one pump's running energy use across a run: total
// kWh consumed, peak demand in kW, and the total energy cost (price times
// pattern multiplier times kWh), following the running-total style of flowbalance.c's accumulators
// rather than a single end-of-run computation.
type PumpEnergy struct {
	KwhUsed   float64
	PeakKw    float64
	Cost      float64
	utilHours float64
}

// Update folds one hydraulic step's pump operation, of duration dt
// seconds, into the running energy totals. flow is in cfs, head is the
// pump's head gain in feet, efficiency is a fraction in (0,1], and
// priceMult is the energy-pattern multiplier in effect (1.0 if none).
func (pe *PumpEnergy) Update(flow, head, efficiency, priceMult, price, dt float64) {
	if flow <= 0 || head <= 0 || efficiency <= 0 {
		return
	}
	hp := flow * head * specificWeight / (550.0 * efficiency)
	kw := hp * hpToKw
	hours := dt / 3600.0

	pe.KwhUsed += kw * hours
	if kw > pe.PeakKw {
		pe.PeakKw = kw
	}
	pe.Cost += kw * hours * price * priceMult
	pe.utilHours += hours
}

// AverageKw is the pump's time-averaged power draw over the hours it ran.
func (pe *PumpEnergy) AverageKw() float64 {
	if pe.utilHours <= 0 {
		return 0
	}
	return pe.KwhUsed / pe.utilHours
}

// pumpEfficiency evaluates a pump's efficiency-vs-flow curve at the given
// flow, or returns its constant efficiency if it carries no curve (or the
// curve gives no positive value), or 0.65 when no constant is set either.
func pumpEfficiency(p *net.Pump, flow float64, curves []*net.Curve) float64 {
	if p.Efficiency > 0 && p.Efficiency <= len(curves) {
		eff := curves[p.Efficiency-1].Lookup(flow) / 100.0
		if eff > 0 {
			return eff
		}
	}
	if p.ConstEff > 0 {
		return p.ConstEff / 100.0
	}
	return 0.65
}

// headGain returns a pump link's current head rise, H0 - R*|Q|^N,
// clamped to zero.
func headGain(l *net.Link, p *net.Pump) float64 {
	q := l.Flow
	if q < 0 {
		q = -q
	}
	h := p.H0 - p.R*math.Pow(q, p.N)
	if h < 0 {
		return 0
	}
	return h
}
