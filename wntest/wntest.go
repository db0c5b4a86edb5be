// Package wntest builds small, literal networks for exercising the
// hydraulic and water-quality core end to end, in the same spirit as
// fem's testing.go fixture builders: each function returns a fully wired
// *net.Network plus the *net.Options it was designed against, ready to
// hand straight to waternet.Project.Open.
package wntest

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/waternet/net"
)

// must panics on the first error, the same short-circuit idiom fem's own
// fixture builders use for construction that "can't fail" once written
// correctly.
func must(err error) {
	if err != nil {
		chk.Panic("wntest: %v", err)
	}
}

// SinglePipe builds a reservoir feeding one junction through a single
// Hazen-Williams pipe: reservoir at 100 ft, 1000 ft of 12-in C=100 pipe,
// junction at elevation 0 demanding 500 gpm (1.1144 cfs).
func SinglePipe() (*net.Network, *net.Options) {
	n := net.NewNetwork()

	j, err := n.AddJunction("J1", 0)
	must(err)
	j.Demands = []net.Demand{{Base: 500.0 / 448.831}} // gpm -> cfs

	_, err = n.AddTankNode("R1", 100, &net.Tank{})
	must(err)

	l, err := n.AddLink("P1", 2, 1, net.Pipe)
	must(err)
	l.Diameter = 12.0 / 12.0
	l.Length = 1000
	l.Roughness = 100

	opt := net.DefaultOptions()
	opt.HeadlossFormula = net.HazenWilliams
	return n, &opt
}

// TankFill builds a tank with a constant 10 cfs inflow: a junction with a
// demand of -10 cfs (an injected inflow) drains entirely through one short
// pipe into the tank, so the net inflow is 10 cfs whatever the tank level.
// Tank area is 50 sq ft, starting level
// 10 ft; spec scenario 2 expects the level to reach 30 ft after 100 s.
func TankFill() (*net.Network, *net.Options) {
	n := net.NewNetwork()

	j, err := n.AddJunction("J1", 0)
	must(err)
	j.Demands = []net.Demand{{Base: -10}} // negative demand: inflow, cfs

	_, err = n.AddTankNode("T1", 0, &net.Tank{
		Area: 50, MinHead: 0, InitHead: 10, MaxHead: 100,
		MinVolume: 0, MaxVolume: 5000, InitVolume: 500,
	})
	must(err)

	l, err := n.AddLink("P1", 1, 2, net.Pipe)
	must(err)
	l.Diameter = 4.0
	l.Length = 10
	l.Roughness = 140

	opt := net.DefaultOptions()
	opt.HeadlossFormula = net.HazenWilliams
	opt.HydraulicStep = 100
	opt.ReportStep = 100
	opt.Duration = 100
	return n, &opt
}

// PRVRegulation builds a 100-ft upstream reservoir, a PRV set to 40 psi-
// equivalent-feet, and a 60-ft downstream reservoir, matching spec
// scenario 3: the PRV, while active, pins the downstream node's head to
// Node[n2].Elevation + Setting.
func PRVRegulation() (*net.Network, *net.Options) {
	n := net.NewNetwork()

	_, err := n.AddTankNode("R1", 100, &net.Tank{})
	must(err)
	_, err = n.AddTankNode("R2", 60, &net.Tank{})
	must(err)

	l, err := n.AddLink("V1", 1, 2, net.PRV)
	must(err)
	l.Setting = 40
	l.Diameter = 12.0 / 12.0

	opt := net.DefaultOptions()
	return n, &opt
}

// CheckValveClosure connects a 50-ft reservoir to a 100-ft reservoir
// through a check-valve pipe oriented from the low to the high reservoir,
// matching spec scenario 4: flow must settle at zero with the CV closed.
func CheckValveClosure() (*net.Network, *net.Options) {
	n := net.NewNetwork()

	_, err := n.AddTankNode("R1", 50, &net.Tank{})
	must(err)
	_, err = n.AddTankNode("R2", 100, &net.Tank{})
	must(err)

	l, err := n.AddLink("P1", 1, 2, net.CVPipe)
	must(err)
	l.Diameter = 12.0 / 12.0
	l.Length = 500
	l.Roughness = 120

	opt := net.DefaultOptions()
	return n, &opt
}

// PumpLevelControl builds a source reservoir feeding a tank through a
// pump, with two simple controls mirroring spec scenario 5: open the pump
// when the tank level drops below 30 ft, close it above 80 ft. Tank starts
// at 50 ft, rising.
func PumpLevelControl() (*net.Network, *net.Options) {
	n := net.NewNetwork()

	_, err := n.AddTankNode("R1", 0, &net.Tank{})
	must(err)
	tankNode, err := n.AddTankNode("T1", 0, &net.Tank{
		Area: 100, MinHead: 0, InitHead: 50, MaxHead: 120,
		MinVolume: 0, MaxVolume: 12000, InitVolume: 5000,
	})
	must(err)

	pl, err := n.AddLink("PU1", 1, 2, net.Pump)
	must(err)
	pl.Status = net.Open
	pl.InitStatus = net.Open

	pump := &net.Pump{CurveType: net.OnePoint, H0: 150, R: 0.0005, N: 2, Hmax: 150}
	n.Pumps = append(n.Pumps, pump)
	pl.PumpIndex = len(n.Pumps)

	n.AddControl(&net.SimpleControl{
		LinkIndex: pl.Index, NewStatus: net.Open,
		Trigger: net.BelowLevel, NodeIndex: tankNode.Index, Level: 30,
	})
	n.AddControl(&net.SimpleControl{
		LinkIndex: pl.Index, NewStatus: net.Closed,
		Trigger: net.AboveLevel, NodeIndex: tankNode.Index, Level: 80,
	})

	opt := net.DefaultOptions()
	opt.HydraulicStep = 3600
	opt.ReportStep = 3600
	opt.Duration = 24 * 3600
	return n, &opt
}

// ChlorineMassBalance is SinglePipe seeded with a uniform 1 mg/L chlorine
// concentration and zero bulk/wall decay, matching spec scenario 6: run 24
// hours and check that total system mass is conserved within Ctol times
// total volume.
func ChlorineMassBalance() (*net.Network, *net.Options) {
	n, opt := SinglePipe()
	for _, nd := range n.Nodes {
		nd.InitQual = 1.0
	}
	for _, l := range n.Links {
		l.Kb = 0
		l.Kw = 0
	}
	opt.QualityMode = net.QualityChemical
	opt.BulkOrder = 1.0
	opt.WallOrder = 1.0
	opt.HydraulicStep = 3600
	opt.QualityStep = 300
	opt.ReportStep = 3600
	opt.Duration = 24 * 3600
	return n, opt
}
