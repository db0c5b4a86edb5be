// Package timestep drives the extended-period simulation clock: it
// advances Htime from 0 to Dur, computing a variable step size bounded by
// every scheduled event (hydraulic step, report step, pattern change, tank
// fill/drain, control trigger, rule-check boundary), integrating tank
// storage across each step, applying demand patterns, firing controls and
// rules, and invoking the hydraulic solver.
package timestep

import (
	"log/slog"
	"math"

	"github.com/cpmech/waternet/hydraulics"
	"github.com/cpmech/waternet/net"
	"github.com/cpmech/waternet/quality"
	"github.com/cpmech/waternet/report"
	"github.com/cpmech/waternet/rules"
	"github.com/cpmech/waternet/wlog"
)

// Clock tracks the extended-period simulation's elapsed time and the
// boundaries it has most recently crossed.
type Clock struct {
	Htime        float64
	lastReport   float64
	lastRuleStep float64
	firstStep    bool
}

// NewClock returns a clock positioned at the start of the run.
func NewClock() *Clock {
	return &Clock{firstStep: true}
}

// Driver owns every piece of state the time stepper reads or mutates each
// step: the network, options, hydraulic solver state, tank levels, and the
// rule/control engine.
type Driver struct {
	Net   *net.Network
	Opt   *net.Options
	State *hydraulics.State
	Tol   hydraulics.Tolerances
	Rules   *rules.Engine
	Quality *quality.Engine // nil when Opt.QualityMode == net.QualityNone
	Report  *report.Collector
	Log     *slog.Logger

	Clock *Clock

	TankVolume []float64 // current stored volume per tank, indexed like Net.Tanks
}

// NewDriver builds a Driver with tanks initialized to their starting level.
func NewDriver(n *net.Network, opt *net.Options, st *hydraulics.State, tol hydraulics.Tolerances) *Driver {
	d := &Driver{
		Net: n, Opt: opt, State: st, Tol: tol,
		Rules:      rules.NewEngine(n),
		Report:     report.NewCollector(n),
		Log:        wlog.Discard(),
		Clock:      NewClock(),
		TankVolume: make([]float64, len(n.Tanks)),
	}
	if opt.QualityMode != net.QualityNone {
		d.Quality = quality.NewEngine(n, opt)
	}
	for i, t := range n.Tanks {
		d.TankVolume[i] = t.VolumeFromHead(t.InitHead, n.Curves)
		st.Head[t.NodeIndex] = t.InitHead
	}
	return d
}

// Step runs one extended-period step: compute tstep, integrate tanks,
// apply demands, process controls/rules, solve hydraulics, and advance the
// clock. Returns the step length taken (0 at the final step).
func (d *Driver) Step() (float64, error) {
	tstep := d.computeTstep()

	if !d.Clock.firstStep && tstep > 0 {
		d.integrateTanks(tstep)
	} else {
		d.applyReservoirHeads()
	}
	d.Clock.firstStep = false

	d.applyDemands()

	d.processControls()

	if d.atRuleCheckBoundary() {
		changed := d.Rules.Evaluate(d.Net, d.State.Head, d.Clock.Htime, d.Clock.lastRuleStep)
		d.Clock.lastRuleStep = d.Clock.Htime
		if changed {
			d.Log.Debug("rule actions applied", "time", d.Clock.Htime)
		}
	}

	res, err := d.State.Solve(d.Tol)
	if err != nil {
		return 0, err
	}
	if res.Unbalanced {
		d.Log.Warn("hydraulic step unbalanced", "time", d.Clock.Htime, "iterations", res.NewtonIterations)
	}

	d.recordStatuses()

	if d.Quality != nil {
		d.Quality.UpdateHydraulics()
		d.runQualitySubsteps(tstep)
	}

	d.Clock.Htime += tstep

	if d.atReportBoundary() {
		d.Report.RecordStep(d.Net, d.Opt, d.State, d.Quality, d.Clock.Htime, d.Clock.Htime-d.Clock.lastReport)
		d.Clock.lastReport = d.Clock.Htime
	}

	return tstep, nil
}

func (d *Driver) atReportBoundary() bool {
	if d.Opt.ReportStep <= 0 {
		return false
	}
	return math.Mod(d.Clock.Htime, d.Opt.ReportStep) == 0
}

// runQualitySubsteps advances water quality across the just-solved
// hydraulic interval in QualityStep-sized sub-steps, so reaction and
// transport see a finer time resolution than the hydraulic solve itself.
func (d *Driver) runQualitySubsteps(tstep float64) {
	qstep := d.Opt.QualityStep
	if qstep <= 0 {
		qstep = tstep
	}
	t := d.Clock.Htime
	remaining := tstep
	for remaining > 0 {
		dt := qstep
		if dt > remaining {
			dt = remaining
		}
		d.Quality.Step(dt, t)
		t += dt
		remaining -= dt
	}
}

// Done reports whether the simulation clock has reached Dur.
func (d *Driver) Done() bool { return d.Clock.Htime >= d.Opt.Duration }

// computeTstep returns the minimum of every scheduled-event horizon: the
// next hydraulic step boundary, report boundary, pattern change, tank
// fill/drain time, control trigger, and rule-check boundary.
func (d *Driver) computeTstep() float64 {
	t := d.Opt.Duration - d.Clock.Htime
	if t <= 0 {
		return 0
	}

	t = math.Min(t, untilNextBoundary(d.Clock.Htime, d.Opt.HydraulicStep))
	t = math.Min(t, untilNextBoundary(d.Clock.Htime, d.Opt.ReportStep))
	t = math.Min(t, untilNextBoundary(d.Clock.Htime, d.Opt.PatternStep))
	t = math.Min(t, untilNextBoundary(d.Clock.Htime, d.Opt.RuleStep))
	t = math.Min(t, d.tankTimeToLimit())
	t = math.Min(t, d.controlTimeToTrigger())

	if t < 0 {
		t = 0
	}
	return t
}

// untilNextBoundary returns the time remaining until t crosses the next
// multiple of step, or step itself if t already sits on a boundary.
func untilNextBoundary(t, step float64) float64 {
	if step <= 0 {
		return math.MaxFloat64
	}
	rem := math.Mod(t, step)
	if rem == 0 {
		return step
	}
	return step - rem
}

// tankTimeToLimit linearly projects each tank's current net flow and
// returns the time until the first one fills or empties.
func (d *Driver) tankTimeToLimit() float64 {
	best := math.MaxFloat64
	for i, tk := range d.Net.Tanks {
		if tk.IsReservoir() {
			continue
		}
		q := netTankFlow(d.Net, d.State, tk.NodeIndex)
		if q == 0 {
			continue
		}
		vol := d.TankVolume[i]
		var target float64
		if q > 0 {
			target = tk.MaxVolume
		} else {
			target = tk.MinVolume
		}
		dt := (target - vol) / q
		if dt > 0 && dt < best {
			best = dt
		}
	}
	return best
}

// netTankFlow sums signed flow across every link touching nodeIndex,
// positive meaning net inflow to the tank.
func netTankFlow(n *net.Network, st *hydraulics.State, nodeIndex int) float64 {
	q := 0.0
	for _, l := range n.Links {
		if l.Status <= net.Closed {
			continue
		}
		switch nodeIndex {
		case l.N1:
			q -= l.Flow
		case l.N2:
			q += l.Flow
		}
	}
	return q
}

// controlTimeToTrigger scans every simple control and returns the time
// until the nearest one fires: a scheduled AtTime/AtClockTime control, or a
// level control reached by linear extrapolation of the controlling tank's
// current net flow.
func (d *Driver) controlTimeToTrigger() float64 {
	best := math.MaxFloat64
	for _, c := range d.Net.Controls {
		switch c.Trigger {
		case net.AtTime:
			if c.Fired() {
				continue
			}
			if dt := c.Time - d.Clock.Htime; dt > 0 && dt < best {
				best = dt
			}
		case net.AtClockTime:
			if c.Fired() {
				continue
			}
			dt := math.Mod(c.Time-d.Clock.Htime, 86400)
			if dt <= 0 {
				dt += 86400
			}
			if dt < best {
				best = dt
			}
		case net.BelowLevel, net.AboveLevel:
			tank := d.Net.TankByNode(c.NodeIndex)
			if tank == nil {
				continue
			}
			idx := tankIndex(d.Net, tank)
			q := netTankFlow(d.Net, d.State, c.NodeIndex)
			if q == 0 {
				continue
			}
			targetVol := tank.VolumeFromHead(c.Level, d.Net.Curves)
			dt := (targetVol - d.TankVolume[idx]) / q
			if dt > 0 && dt < best {
				best = dt
			}
		}
	}
	return best
}

func tankIndex(n *net.Network, t *net.Tank) int {
	for i, tk := range n.Tanks {
		if tk == t {
			return i
		}
	}
	return -1
}

func (d *Driver) atRuleCheckBoundary() bool {
	if d.Opt.RuleStep <= 0 {
		return false
	}
	return math.Mod(d.Clock.Htime, d.Opt.RuleStep) == 0
}
