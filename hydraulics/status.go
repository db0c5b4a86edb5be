package hydraulics

import "github.com/cpmech/waternet/net"

// Tolerances governing status-change hysteresis and check-valve reverse
// flow detection, carried alongside the Newton accuracy options since
// they're consulted at the same point in the outer loop.
type Tolerances struct {
	Htol float64 // head tolerance, feet
	Qtol float64 // flow tolerance, cfs
}

// DefaultTolerances mirrors the values most installations leave untouched.
func DefaultTolerances() Tolerances { return Tolerances{Htol: 0.05, Qtol: 0.0005} }

// ValveStatus updates every PRV/PSV whose setting is live (not fixed
// OPEN/CLOSED), returning true if any of them changed status.
func (s *State) ValveStatus(tol Tolerances) bool {
	changed := false
	for _, l := range s.Net.Links {
		if l.Type != net.PRV && l.Type != net.PSV {
			continue
		}
		if l.Setting == net.Missing {
			continue
		}
		prev := l.Status
		n1, n2 := l.N1, l.N2
		switch l.Type {
		case net.PRV:
			hset := s.Net.Nodes[n2-1].Elevation + l.Setting
			l.Status = prvStatus(l, prev, hset, s.Head[n1], s.Head[n2], tol)
		case net.PSV:
			hset := s.Net.Nodes[n1-1].Elevation + l.Setting
			l.Status = psvStatus(l, prev, hset, s.Head[n1], s.Head[n2], tol)
		}
		if l.Status != prev {
			changed = true
		}
	}
	return changed
}

// LinkStatus updates check valves, pumps, non-fixed FCVs, and
// tank-connected links, returning true if any link changed status. Flows
// are never revised here, only the discrete status.
func (s *State) LinkStatus(tol Tolerances) bool {
	changed := false
	for _, l := range s.Net.Links {
		n1, n2 := l.N1, l.N2
		dh := s.Head[n1] - s.Head[n2]
		prev := l.Status

		if l.Status == net.XHEAD || l.Status == net.TempClosed {
			l.Status = net.Open
		}

		switch l.Type {
		case net.CVPipe:
			l.Status = cvStatus(l.Status, dh, l.Flow, tol)
		case net.Pump:
			if l.Status >= net.Open && l.Setting > 0.0 {
				l.Status = s.pumpStatus(l, -dh, tol)
			}
		case net.FCV:
			if l.Setting != net.Missing {
				l.Status = fcvStatus(l, prev, s.Head[n1], s.Head[n2], tol)
			}
		}

		if n1 > s.Net.Njuncs || n2 > s.Net.Njuncs {
			s.tankStatus(l, n1, n2, tol)
		}

		if l.Status != prev {
			changed = true
		}
	}
	return changed
}

// cvStatus prevents reverse flow through a check-valve pipe.
func cvStatus(cur net.Status, dh, q float64, tol Tolerances) net.Status {
	if abs(dh) > tol.Htol {
		if dh < -tol.Htol {
			return net.Closed
		}
		if q < -tol.Qtol {
			return net.Closed
		}
		return net.Open
	}
	if q < -tol.Qtol {
		return net.Closed
	}
	return cur
}

// pumpStatus reports XHEAD if the pump's current head gain exceeds the
// speed-scaled shutoff head it can deliver.
func (s *State) pumpStatus(l *net.Link, dh float64, tol Tolerances) net.Status {
	pump := s.Net.Pumps[l.PumpIndex-1]
	hmax := net.BIG
	if pump.CurveType != net.ConstHP {
		hmax = l.Setting * l.Setting * pump.Hmax
	}
	if dh > hmax+tol.Htol {
		return net.XHEAD
	}
	return net.Open
}

// prvStatus transitions a pressure-reducing valve among
// {ACTIVE, OPEN, CLOSED, XPRESSURE}.
func prvStatus(l *net.Link, cur net.Status, hset, h1, h2 float64, tol Tolerances) net.Status {
	hml := l.Km * l.Flow * l.Flow
	switch cur {
	case net.Active:
		switch {
		case l.Flow < -tol.Qtol:
			return net.Closed
		case h1-hml < hset-tol.Htol:
			return net.Open
		default:
			return net.Active
		}
	case net.Open:
		switch {
		case l.Flow < -tol.Qtol:
			return net.Closed
		case h2 >= hset+tol.Htol:
			return net.Active
		default:
			return net.Open
		}
	case net.Closed:
		switch {
		case h1 >= hset+tol.Htol && h2 < hset-tol.Htol:
			return net.Active
		case h1 < hset-tol.Htol && h1 > h2+tol.Htol:
			return net.Open
		default:
			return net.Closed
		}
	case net.XPressure:
		if l.Flow < -tol.Qtol {
			return net.Closed
		}
	}
	return cur
}

// psvStatus is the upstream/downstream mirror of prvStatus.
func psvStatus(l *net.Link, cur net.Status, hset, h1, h2 float64, tol Tolerances) net.Status {
	hml := l.Km * l.Flow * l.Flow
	switch cur {
	case net.Active:
		switch {
		case l.Flow < -tol.Qtol:
			return net.Closed
		case h2+hml > hset+tol.Htol:
			return net.Open
		default:
			return net.Active
		}
	case net.Open:
		switch {
		case l.Flow < -tol.Qtol:
			return net.Closed
		case h1 < hset-tol.Htol:
			return net.Active
		default:
			return net.Open
		}
	case net.Closed:
		switch {
		case h2 > hset+tol.Htol && h1 > h2+tol.Htol:
			return net.Open
		case h1 >= hset+tol.Htol && h1 > h2+tol.Htol:
			return net.Active
		default:
			return net.Closed
		}
	case net.XPressure:
		if l.Flow < -tol.Qtol {
			return net.Closed
		}
	}
	return cur
}

// fcvStatus forces XFCV on reverse flow or a negative head gradient, and
// escapes XFCV back to ACTIVE once flow again reaches the setting.
func fcvStatus(l *net.Link, cur net.Status, h1, h2 float64, tol Tolerances) net.Status {
	switch {
	case h1-h2 < -tol.Htol:
		return net.XFCV
	case l.Flow < -tol.Qtol:
		return net.XFCV
	case cur == net.XFCV && l.Flow >= l.Setting:
		return net.Active
	}
	return cur
}

// tankStatus closes a link flowing into a full tank or out of an empty
// one, identifying which endpoint is the tank and normalizing flow sign
// so n1 is always that endpoint.
func (s *State) tankStatus(l *net.Link, n1, n2 int, tol Tolerances) {
	if l.Status <= net.Closed {
		return
	}
	q := l.Flow
	i := n1 - s.Net.Njuncs
	if i <= 0 {
		i = n2 - s.Net.Njuncs
		if i <= 0 {
			return
		}
		n1, n2 = n2, n1
		q = -q
	}
	tank := s.Net.TankByNode(n1)
	if tank == nil || tank.IsReservoir() {
		return
	}

	h := s.Head[n1] - s.Head[n2]

	if s.Head[n1] >= tank.MaxHead-tol.Htol {
		switch {
		case l.Type == net.Pump:
			if l.N2 == n1 {
				l.Status = net.TempClosed
			}
		case cvStatus(net.Open, h, q, tol) == net.Closed:
			l.Status = net.TempClosed
		}
	}

	if s.Head[n1] <= tank.MinHead+tol.Htol {
		switch {
		case l.Type == net.Pump:
			if l.N1 == n1 {
				l.Status = net.TempClosed
			}
		case cvStatus(net.Closed, h, q, tol) == net.Open:
			l.Status = net.TempClosed
		}
	}
}
