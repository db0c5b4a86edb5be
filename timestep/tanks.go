package timestep

import "github.com/cpmech/waternet/net"

// integrateTanks advances every tank's stored volume by trapezoidal
// integration of its net flow over the elapsed step, using the flow at the
// start of the step (the only one available -- EPANET's own tanktimestep
// accepts this first-order approximation too) averaged with itself, then
// projects the new head from the updated volume.
func (d *Driver) integrateTanks(tstep float64) {
	for i, tk := range d.Net.Tanks {
		if tk.IsReservoir() {
			d.State.Head[tk.NodeIndex] = d.reservoirHead(tk)
			continue
		}
		q := netTankFlow(d.Net, d.State, tk.NodeIndex)
		vol := d.TankVolume[i] + q*tstep
		if vol < tk.MinVolume {
			vol = tk.MinVolume
		}
		if vol > tk.MaxVolume {
			vol = tk.MaxVolume
		}
		d.TankVolume[i] = vol
		d.State.Head[tk.NodeIndex] = tk.HeadFromVolume(vol, d.Net.Curves)
	}
}

// applyReservoirHeads refreshes every reservoir's fixed-grade head from its
// pattern without touching tank storage, used on the first step before any
// interval has elapsed to integrate over.
func (d *Driver) applyReservoirHeads() {
	for _, tk := range d.Net.Tanks {
		if tk.IsReservoir() {
			d.State.Head[tk.NodeIndex] = d.reservoirHead(tk)
		}
	}
}

// reservoirHead evaluates a reservoir's fixed-grade head, applying its time
// pattern if it carries one.
func (d *Driver) reservoirHead(tk *net.Tank) float64 {
	base := d.Net.Nodes[tk.NodeIndex-1].Elevation
	if tk.Pattern <= 0 || tk.Pattern > len(d.Net.Patterns) {
		return base
	}
	p := d.Net.Patterns[tk.Pattern-1]
	return base * p.At(d.Clock.Htime, d.Opt.PatternStep, int(d.Opt.PatternStart))
}
