package net

// PumpCurveType enumerates how a pump's head-flow relationship is given.
type PumpCurveType int

const (
	ConstHP PumpCurveType = iota
	OnePoint
	ThreePoint
	CustomCurve
	NoCurve
)

// Pump is the auxiliary record referenced by a pump-type Link. H0, R, N
// are the full-speed coefficients of H = H0 - R*Q^N: PreparePumps derives
// them for single- and three-point curves, and for a custom curve the
// coefficient function rewrites them (with N = 1) from the curve segment
// in use on every call; the speed setting is applied when they are used,
// not stored here. Hmax is the fixed
// full-speed shutoff head used only by the XHEAD status check, which needs
// the unadjusted value independent of the current speed setting.
type Pump struct {
	CurveType  PumpCurveType
	CurveIndex int // index into Network.Curves for CustomCurve/derivations

	H0, R, N float64
	Hmax     float64 // full-speed (setting=1) shutoff head

	EnergyPattern int // pattern index for energy-cost multiplier; 0 = none
	EnergyPrice   float64
	UtilPattern   int // pattern index for utilization; 0 = none

	Efficiency int // curve index for efficiency-vs-flow; 0 = none (use a constant)
	ConstEff   float64
}
