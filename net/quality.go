package net

// QualityMode selects what the water-quality engine propagates: nothing, a
// reactive chemical, water age, or a source trace.
type QualityMode int

const (
	QualityNone QualityMode = iota
	QualityChemical
	QualityAge
	QualityTrace
)
