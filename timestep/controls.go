package timestep

import (
	"math"

	"github.com/cpmech/waternet/net"
)

// processControls applies every simple control whose trigger condition has
// been reached at the current clock time, mirroring the linear per-step
// scan EPANET's controls() performs ahead of rule evaluation.
func (d *Driver) processControls() {
	for _, c := range d.Net.Controls {
		if c.Trigger == net.AtTime || c.Trigger == net.AtClockTime {
			if c.Fired() {
				continue
			}
			if !d.timeControlDue(c) {
				continue
			}
			d.applyControl(c)
			c.MarkFired()
			continue
		}

		tank := d.Net.TankByNode(c.NodeIndex)
		if tank == nil {
			continue
		}
		head := d.State.Head[c.NodeIndex]
		switch c.Trigger {
		case net.BelowLevel:
			if head <= c.Level {
				d.applyControl(c)
			}
		case net.AboveLevel:
			if head >= c.Level {
				d.applyControl(c)
			}
		}
	}
}

func (d *Driver) timeControlDue(c *net.SimpleControl) bool {
	if c.Trigger == net.AtTime {
		return d.Clock.Htime >= c.Time
	}
	return math.Mod(d.Clock.Htime, 86400) >= c.Time
}

func (d *Driver) applyControl(c *net.SimpleControl) {
	l := d.Net.Links[c.LinkIndex-1]
	l.Status = c.NewStatus
	l.Setting = c.NewSetting
}
