// Package rules implements the rule-based control engine (simple controls
// are processed by package timestep): premise
// evaluation with short-circuit AND/OR semantics, and priority-based
// conflict resolution when multiple rules target the same link.
package rules

import (
	"math"
	"sort"

	"github.com/cpmech/waternet/net"
)

// Engine evaluates a network's rule set at each rule-check boundary.
type Engine struct {
	n *net.Network
}

// NewEngine builds a rule engine bound to n.
func NewEngine(n *net.Network) *Engine {
	return &Engine{n: n}
}

// winner tracks the highest-priority action so far proposed for a link;
// ties go to the earlier rule (lower Index).
type winner struct {
	action   net.RuleAction
	priority int
	index    int
}

// Evaluate runs one rule-check pass at time htime, the previous boundary
// having been prevTime (used for the half-open time-premise interval
// (prevTime, htime]). Every rule's premise list is evaluated; THEN actions
// are proposed on a true result, ELSE actions otherwise. Conflicting
// actions on the same link are resolved by rule priority, then by rule
// index. Surviving actions are applied; the return value reports whether
// any link's status or setting actually changed.
func (e *Engine) Evaluate(n *net.Network, head []float64, htime, prevTime float64) bool {
	winners := make(map[int]winner)

	rules := make([]*net.Rule, len(n.Rules))
	copy(rules, n.Rules)
	sort.Slice(rules, func(i, j int) bool { return rules[i].Index < rules[j].Index })

	for _, r := range rules {
		ok := e.evalPremises(r.Premises, head, htime, prevTime)
		actions := r.ThenActions
		if !ok {
			actions = r.ElseActions
		}
		for _, a := range actions {
			proposeAction(winners, r, a)
		}
	}

	changed := false
	for linkIdx, w := range winners {
		l := n.Links[linkIdx-1]
		if w.action.HasStatus && l.Status != w.action.Status {
			l.Status = w.action.Status
			changed = true
		}
		if l.Setting != w.action.Setting {
			l.Setting = w.action.Setting
			changed = true
		}
	}
	return changed
}

func proposeAction(winners map[int]winner, r *net.Rule, a net.RuleAction) {
	cur, exists := winners[a.LinkIndex]
	if !exists || r.Priority > cur.priority || (r.Priority == cur.priority && r.Index < cur.index) {
		winners[a.LinkIndex] = winner{action: a, priority: r.Priority, index: r.Index}
	}
}

// evalPremises implements the short-circuit IF/AND/OR chain: AND-joined
// clauses within a group must all hold; an OR starts a fresh group, and the
// rule is true if any group is true.
func (e *Engine) evalPremises(premises []net.Premise, head []float64, htime, prevTime float64) bool {
	if len(premises) == 0 {
		return true
	}
	overall := false
	group := true
	for i, p := range premises {
		v := e.evalOne(p, head, htime, prevTime)
		switch {
		case i == 0 || p.Logic == net.And:
			group = group && v
		case p.Logic == net.Or:
			overall = overall || group
			group = v
		}
	}
	overall = overall || group
	return overall
}

// evalOne evaluates a single premise clause against current state.
func (e *Engine) evalOne(p net.Premise, head []float64, htime, prevTime float64) bool {
	switch p.Object {
	case net.SystemObj:
		return e.evalSystem(p, htime, prevTime)
	case net.NodeObj:
		return e.evalNode(p, head, htime)
	case net.LinkObj:
		return e.evalLink(p)
	}
	return false
}

func (e *Engine) evalSystem(p net.Premise, htime, prevTime float64) bool {
	switch p.Variable {
	case net.VarTime:
		if p.Relop == net.Eq {
			return crossedBoundary(p.Value, prevTime, htime)
		}
		return compare(htime, p.Relop, p.Value)
	case net.VarClockTime:
		ct := math.Mod(htime, 86400)
		ctPrev := math.Mod(prevTime, 86400)
		if p.Relop == net.Eq {
			return crossedBoundary(p.Value, ctPrev, ct)
		}
		return compare(ct, p.Relop, p.Value)
	case net.VarDemand:
		return compare(e.totalDemand(), p.Relop, p.Value)
	}
	return false
}

// crossedBoundary reports whether target lies in the half-open interval
// (prev, cur], so a clock-equality premise fires exactly once per crossing
// rather than on every step that happens to land past it.
func crossedBoundary(target, prev, cur float64) bool {
	if cur <= prev {
		return false
	}
	return target > prev && target <= cur
}

func (e *Engine) totalDemand() float64 {
	total := 0.0
	for i := 1; i <= e.n.Njuncs; i++ {
		total += e.n.Nodes[i-1].FullBaseDemand()
	}
	return total
}

func (e *Engine) evalNode(p net.Premise, head []float64, htime float64) bool {
	node := e.n.Nodes[p.ObjIndex-1]
	switch p.Variable {
	case net.VarPressure:
		return compare(head[p.ObjIndex]-node.Elevation, p.Relop, p.Value)
	case net.VarHead:
		return compare(head[p.ObjIndex], p.Relop, p.Value)
	case net.VarLevel:
		tank := e.n.TankByNode(p.ObjIndex)
		if tank == nil {
			return false
		}
		return compare(head[p.ObjIndex]-tank.MinHead, p.Relop, p.Value)
	case net.VarFillTime, net.VarDrainTime:
		tank := e.n.TankByNode(p.ObjIndex)
		if tank == nil || tank.IsReservoir() {
			return false
		}
		return e.evalTankTimer(p, tank, head)
	}
	return false
}

// evalTankTimer linearly projects the time remaining for a tank to fill or
// drain at the net flow implied by the currently-solved link flows.
func (e *Engine) evalTankTimer(p net.Premise, tank *net.Tank, head []float64) bool {
	q := 0.0
	for _, l := range e.n.Links {
		if l.Status <= net.Closed {
			continue
		}
		switch tank.NodeIndex {
		case l.N1:
			q -= l.Flow
		case l.N2:
			q += l.Flow
		}
	}
	vol := tank.VolumeFromHead(head[tank.NodeIndex], e.n.Curves)

	var target, dt float64
	if p.Variable == net.VarFillTime {
		if q <= 0 {
			return false
		}
		target = tank.MaxVolume
		dt = (target - vol) / q
	} else {
		if q >= 0 {
			return false
		}
		target = tank.MinVolume
		dt = (vol - target) / -q
	}
	return compare(dt, p.Relop, p.Value)
}

func (e *Engine) evalLink(p net.Premise) bool {
	l := e.n.Links[p.ObjIndex-1]
	switch p.Variable {
	case net.VarFlow:
		return compare(l.Flow, p.Relop, p.Value)
	case net.VarSetting:
		return compare(l.Setting, p.Relop, p.Value)
	case net.VarStatus:
		switch p.Relop {
		case net.Eq:
			return l.Status == p.Status
		case net.Ne:
			return l.Status != p.Status
		}
	}
	return false
}

func compare(v float64, op net.RelOp, target float64) bool {
	switch op {
	case net.Eq:
		return v == target
	case net.Ne:
		return v != target
	case net.Below, net.LE:
		return v <= target
	case net.Above, net.GE:
		return v >= target
	}
	return false
}
