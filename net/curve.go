package net

import "sort"

// CurveType tags the role a Curve plays; it does not change the
// interpolation algorithm, only how callers interpret X/Y.
type CurveType int

const (
	Generic CurveType = iota
	Volume
	PumpHead
	Efficiency
	HeadLossCurve
)

// Curve is an ordered set of strictly increasing (x, y) points, looked up
// by piecewise-linear interpolation and clamped at the endpoints -- no
// extrapolation.
type Curve struct {
	ID    string
	Index int
	Type  CurveType
	X, Y  []float64
}

// Lookup returns the piecewise-linear interpolated Y for a given X, clamped
// at the endpoints.
func (c *Curve) Lookup(x float64) float64 {
	n := len(c.X)
	if n == 0 {
		return 0
	}
	if n == 1 || x <= c.X[0] {
		return c.Y[0]
	}
	if x >= c.X[n-1] {
		return c.Y[n-1]
	}
	i := sort.SearchFloat64s(c.X, x)
	// i is the first index with c.X[i] >= x; interpolate between i-1 and i.
	if c.X[i] == x {
		return c.Y[i]
	}
	x0, x1 := c.X[i-1], c.X[i]
	y0, y1 := c.Y[i-1], c.Y[i]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

// InverseLookup is Lookup with X and Y swapped; used to convert a volume
// back to a head for tank volume curves. Y must be monotonically
// increasing for this to be well defined, which holds for volume curves by
// construction: points must be strictly increasing.
func (c *Curve) InverseLookup(y float64) float64 {
	n := len(c.Y)
	if n == 0 {
		return 0
	}
	if n == 1 || y <= c.Y[0] {
		return c.X[0]
	}
	if y >= c.Y[n-1] {
		return c.X[n-1]
	}
	i := sort.SearchFloat64s(c.Y, y)
	if c.Y[i] == y {
		return c.X[i]
	}
	y0, y1 := c.Y[i-1], c.Y[i]
	x0, x1 := c.X[i-1], c.X[i]
	return x0 + (x1-x0)*(y-y0)/(y1-y0)
}

// Slope returns the local slope and intercept of the segment bracketing x,
// used by the custom pump-curve coefficient path: H = intercept
// + slope*x on that segment.
func (c *Curve) Slope(x float64) (slope, intercept float64) {
	n := len(c.X)
	if n < 2 {
		return 0, 0
	}
	i := sort.SearchFloat64s(c.X, x)
	if i <= 0 {
		i = 1
	}
	if i >= n {
		i = n - 1
	}
	x0, x1 := c.X[i-1], c.X[i]
	y0, y1 := c.Y[i-1], c.Y[i]
	slope = (y1 - y0) / (x1 - x0)
	intercept = y0 - slope*x0
	return
}
