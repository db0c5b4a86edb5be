package timestep

import "github.com/cpmech/waternet/net"

// applyDemands recomputes every junction's target demand from its base
// demand categories, each category's own pattern, and the project-wide
// demand multiplier. Under DDA the result is fed directly to the
// hydraulic solver as a fixed nodal outflow; under PDA it becomes the
// "full" demand the pressure-dependent barrier function targets.
func (d *Driver) applyDemands() {
	for i := 1; i <= d.Net.Njuncs; i++ {
		node := d.Net.Nodes[i-1]
		total := 0.0
		for _, dem := range node.Demands {
			mult := 1.0
			if dem.Pattern > 0 && dem.Pattern <= len(d.Net.Patterns) {
				p := d.Net.Patterns[dem.Pattern-1]
				mult = p.At(d.Clock.Htime, d.Opt.PatternStep, int(d.Opt.PatternStart))
			}
			total += dem.Base * mult * d.Opt.DemandMultiplier
		}

		if d.Opt.DemandModel == net.PDA {
			d.State.FullDemand[i] = total
			if total <= 0 {
				d.State.DemandFlow[i] = total
			}
		} else {
			d.State.DemandFlow[i] = total
		}
	}
}
