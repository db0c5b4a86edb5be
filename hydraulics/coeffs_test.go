package hydraulics

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/waternet/net"
	"github.com/cpmech/waternet/sparse"
)

func Test_resistance01(tst *testing.T) {
	chk.PrintTitle("resistance01. Hazen-Williams resistance coefficient")

	r := ResistanceCoeff(net.HazenWilliams, 1.0, 1000.0, 100.0)
	want := 4.727 * 1000.0 / (math.Pow(100.0, 1.852) * math.Pow(1.0, 4.871))
	chk.Scalar(tst, "R", 1e-9, r, want)
}

func Test_pipecoeff01(tst *testing.T) {
	chk.PrintTitle("pipecoeff01. single-pipe head-loss coefficients")

	n := net.NewNetwork()
	j, err := n.AddJunction("J1", 0)
	if err != nil {
		tst.Fatal(err)
	}
	j.Demands = []net.Demand{{Base: 1.1144}}
	if _, err = n.AddTankNode("R1", 100, &net.Tank{}); err != nil {
		tst.Fatal(err)
	}
	l, err := n.AddLink("P1", 2, 1, net.Pipe)
	if err != nil {
		tst.Fatal(err)
	}
	l.Diameter = 1.0
	l.Length = 1000
	l.Roughness = 100
	l.Flow = 1.1144

	opt := net.DefaultOptions()
	PrecomputeThresholds(n, &opt)
	if l.R <= 0 {
		tst.Fatalf("expected positive resistance coefficient, got %v", l.R)
	}

	solver := sparse.NewSolver(n.Njuncs, sparse.JunctionLinks(n))
	st := NewState(n, &opt, solver, nil)
	st.pipeCoeff(l.Index)

	if st.P[l.Index] <= 0 || st.Y[l.Index] <= 0 {
		tst.Fatalf("expected positive P/Y, got P=%v Y=%v", st.P[l.Index], st.Y[l.Index])
	}
}
