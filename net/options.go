package net

// DemandModel selects between demand-driven analysis, where junction
// demand is a fixed input, and pressure-dependent analysis, where outflow
// is a function of available pressure.
type DemandModel int

const (
	DDA DemandModel = iota
	PDA
)

// UnbalancedAction controls what happens when a hydraulic step fails to
// converge within the iteration cap.
type UnbalancedAction int

const (
	Continue UnbalancedAction = iota
	Stop
)

// Options is the configuration value-object the core consumes. It is a
// plain struct populated entirely by the embedding host/parser; the core
// never loads it from a file or environment.
type Options struct {
	Trials   int     // Newton iteration cap per hydraulic solve
	Accuracy float64 // Hacc: Newton convergence tolerance on relative flow change
	Tolerance float64 // Ctol: WQ convergence / segment-coalescing tolerance

	EmitterExponent float64 // Qexp, default 0.5
	DemandMultiplier float64

	DemandModel DemandModel
	HeadlossFormula HeadlossFormula

	Unbalanced    UnbalancedAction
	UnbalancedMax int // extra trials allowed when Unbalanced == Continue

	DampLimit        float64 // floor on relaxation: it is halved when the error grows only while above this; 0 disables halving
	RelaxationFactor float64 // initial damping factor ω

	Pmin, Preq, Pexp float64 // pressure-dependent demand parameters

	QualityTolerance float64 // minimum concentration change to coalesce WQ segments

	RQtol float64 // relative flow tolerance for head-loss linearization thresholds

	HydraulicStep float64 // seconds between hydraulic solves
	PatternStep   float64
	PatternStart  float64
	ReportStep    float64
	RuleStep      float64 // Rulestep, seconds between rule-check boundaries
	QualityStep   float64 // Qstep, WQ sub-step
	Duration      float64 // Dur

	StatusCycleLimit int // max outer status-change cycles per hydraulic step

	PDAEnabled bool // not kept in step with DemandModel; the solver reads DemandModel only

	// Water-quality parameters. BulkOrder/WallOrder are reaction orders (1 is
	// the common case; 0 gives a mass-transfer-limited wall reaction; negative
	// selects Michaelis-Menten kinetics). Climit bounds the reaction
	// potential. Diffusivity and Viscosity are molecular diffusivity and
	// kinematic viscosity of the carrier fluid (ft^2/sec); SchmidtNumber is
	// Viscosity/Diffusivity, precomputed by the caller (0 disables the
	// Sherwood-number mass-transfer correction entirely).
	QualityMode   QualityMode
	TraceNode     int // node index whose 100% source drives trace mode
	BulkOrder     float64
	WallOrder     float64
	TankOrder     float64
	Climit        float64
	Diffusivity   float64
	Viscosity     float64
	SchmidtNumber float64
}

// DefaultOptions mirrors EPANET's own defaults closely enough to be a
// sensible zero-configuration starting point; embedding hosts override
// individual fields as their input data dictates.
func DefaultOptions() Options {
	return Options{
		Trials:           40,
		Accuracy:         0.001,
		Tolerance:        0.01,
		EmitterExponent:  0.5,
		DemandMultiplier: 1.0,
		DemandModel:      DDA,
		HeadlossFormula:  HazenWilliams,
		Unbalanced:       Continue,
		UnbalancedMax:    10,
		DampLimit:        0,
		RelaxationFactor: 1.0,
		Pmin:             0,
		Preq:             0.1,
		Pexp:             0.5,
		QualityTolerance: 0.01,
		RQtol:            1e-7,
		HydraulicStep:    3600,
		PatternStep:      3600,
		PatternStart:     0,
		ReportStep:       3600,
		RuleStep:         360,
		QualityStep:      300,
		Duration:         0,
		StatusCycleLimit: 10,
		QualityMode:      QualityNone,
		BulkOrder:        1.0,
		WallOrder:        1.0,
		TankOrder:        1.0,
		Diffusivity:      1.3e-8,
		Viscosity:        1.1e-5,
		SchmidtNumber:    1.1e-5 / 1.3e-8,
	}
}

// Standard "BIG"/"SMALL" penalty constants used throughout the valve and
// status-active coefficient paths to force a head loss/gain via a stiff
// penalty term rather than a hard constraint.
const (
	CBIG   = 1.0e8
	CSMALL = 1.0e-6
	BIG    = 1.0e10
)

// Missing is the sentinel link-setting value meaning "no fixed setting is
// in effect" -- a PRV/PSV/FCV/GPV carrying this setting is controlled
// entirely by its status rather than a numeric target.
const Missing = -1.0e10
