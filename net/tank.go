package net

// MixModel enumerates the four tank-mixing models available to a tank.
type MixModel int

const (
	MixCSTR MixModel = iota
	Mix2Comp
	MixFIFO
	MixLIFO
)

// Tank is a node with storage behavior. Area == 0 designates a reservoir
// (fixed head); reservoirs ignore every field below Area except Pattern,
// which drives their fixed-grade head via a time pattern.
type Tank struct {
	NodeIndex int // index of the underlying Node

	Area float64 // cross-sectional area; 0 => reservoir

	MinHead, InitHead, MaxHead       float64
	MinVolume, MaxVolume, InitVolume float64

	VolCurve int // curve index overriding the cylinder formula; 0 = none

	Pattern int // fixed-grade time pattern index (reservoirs only); 0 = none

	Kb float64 // bulk reaction coefficient the quality engine uses for this tank's water

	Mix      MixModel
	MixFrac  float64 // mixing-zone fraction for Mix2Comp; unused otherwise
	HasKbSet bool    // records that Kb was assigned explicitly; the quality engine does not read it and always uses Kb
}

// IsReservoir reports whether the tank is in fact a fixed-grade reservoir.
func (t *Tank) IsReservoir() bool { return t.Area <= 0 }

// VolumeFromHead converts a head to a stored volume using either the
// tank's volume curve (clamped, piecewise-linear, keyed by level above
// MinHead) or the cylinder formula.
func (t *Tank) VolumeFromHead(head float64, curves []*Curve) float64 {
	level := head - t.MinHead
	if t.VolCurve > 0 && t.VolCurve <= len(curves) {
		return curves[t.VolCurve-1].Lookup(level)
	}
	return t.MinVolume + t.Area*level
}

// HeadFromVolume is the inverse of VolumeFromHead.
func (t *Tank) HeadFromVolume(vol float64, curves []*Curve) float64 {
	if t.VolCurve > 0 && t.VolCurve <= len(curves) {
		level := curves[t.VolCurve-1].InverseLookup(vol)
		return t.MinHead + level
	}
	level := (vol - t.MinVolume) / t.Area
	return t.MinHead + level
}
