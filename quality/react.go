package quality

import (
	"math"

	"github.com/cpmech/waternet/net"
)

const (
	tiny     = 1e-7
	secPerDay = 86400.0
)

// sgn returns the sign of x as +-1, treating zero as positive, matching the
// SGN macro reaction rates are built on.
func sgn(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// bulkRate computes the bulk reaction rate (mass/volume/time) for
// concentration c at coefficient kb and reaction order, honoring the
// limiting potential Climit: zero-order kinetics ignore c entirely,
// negative order selects Michaelis-Menten kinetics, and positive order
// gives the usual n-th order rate law.
func bulkRate(c, kb, order, climit float64) float64 {
	switch {
	case order == 0.0:
		c = 1.0
	case order < 0.0:
		c1 := climit + sgn(kb)*c
		if math.Abs(c1) < tiny {
			c1 = sgn(c1) * tiny
		}
		c = c / c1
	default:
		var c1 float64
		if climit == 0.0 {
			c1 = c
		} else {
			c1 = math.Max(0.0, sgn(kb)*(climit-c))
		}
		switch order {
		case 1.0:
			c = c1
		case 2.0:
			c = c1 * c
		default:
			c = c1 * math.Pow(math.Max(0.0, c), order-1.0)
		}
	}
	if c < 0 {
		c = 0
	}
	return kb * c
}

// wallRate computes the wall reaction rate in mass/volume/time for a pipe
// of diameter d, intrinsic wall coefficient kw, and precomputed rate
// coefficient kf: a mass-transfer coefficient (ft/sec) for zero-order
// reactions, or an apparent first-order wall coefficient (1/sec) otherwise.
func wallRate(c, d, kw, kf, wallOrder float64) float64 {
	if kw == 0.0 || d == 0.0 {
		return 0.0
	}
	if wallOrder == 0.0 {
		rate := sgn(kw) * c * kf
		lim := kw
		if math.Abs(rate) < math.Abs(lim) {
			lim = rate
		}
		return lim * 4.0 / d
	}
	return c * kf
}

// wallRateCoeff returns the link's effective wall rate coefficient (Rc):
// the apparent first-order coefficient folding in Sherwood-number mass
// transfer, or the mass-transfer coefficient itself for a zero-order
// reaction. Recomputed once per hydraulic step since it depends on flow
// velocity through the Reynolds number.
func wallRateCoeff(l *net.Link, opt *net.Options) float64 {
	if l.Kw == 0.0 {
		return 0.0
	}
	d := l.Diameter
	if d <= 0 {
		return 0.0
	}
	if opt.SchmidtNumber == 0.0 {
		if opt.WallOrder == 0.0 {
			return math.MaxFloat64
		}
		return l.Kw * (4.0 / d)
	}

	q := l.Flow
	if l.Status <= net.Closed {
		q = 0
	}
	area := math.Pi * d * d / 4.0
	u := math.Abs(q) / area
	re := u * d / opt.Viscosity

	var sh float64
	switch {
	case re < 1.0:
		sh = 2.0
	case re >= 2300.0:
		sh = 0.0149 * math.Pow(re, 0.88) * math.Pow(opt.SchmidtNumber, 0.333)
	default:
		y := d / l.Length * re * opt.SchmidtNumber
		sh = 3.65 + 0.0668*y/(1.0+0.04*math.Pow(y, 0.667))
	}

	kf := sh * opt.Diffusivity / d

	if opt.WallOrder == 0.0 {
		return kf
	}
	kw := l.Kw
	return (4.0 / d) * kw * kf / (kf + math.Abs(kw))
}

// pipeReact reacts a pipe segment's concentration c over dt, combining
// bulk and (Sherwood-corrected) wall reaction rates, and returns the new
// concentration alongside the concentration drop c - cnew.
func pipeReact(c float64, l *net.Link, rc float64, opt *net.Options, dt float64) (cnew, reacted float64) {
	rbulk := bulkRate(c, l.Kb, opt.BulkOrder, opt.Climit)
	rwall := wallRate(c, l.Diameter, l.Kw, rc, opt.WallOrder)
	dc := (rbulk + rwall) * dt
	cnew = math.Max(0.0, c+dc)
	return cnew, c - cnew
}

// tankReact reacts a tank segment's concentration c over dt using the
// tank's own bulk coefficient kb.
func tankReact(c, kb, order, climit, dt float64) (cnew, reacted float64) {
	rbulk := bulkRate(c, kb, order, climit)
	dc := rbulk * dt
	cnew = math.Max(0.0, c+dc)
	return cnew, c - cnew
}
