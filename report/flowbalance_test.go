package report

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/waternet/hydraulics"
	"github.com/cpmech/waternet/net"
	"github.com/cpmech/waternet/sparse"
)

func Test_flowbalance01(tst *testing.T) {
	chk.PrintTitle("flowbalance01. consumer demand accumulates into total outflow")

	n := net.NewNetwork()
	j, err := n.AddJunction("J1", 0)
	if err != nil {
		tst.Fatal(err)
	}
	j.Demands = []net.Demand{{Base: 2.0}}
	if _, err = n.AddTankNode("R1", 100, &net.Tank{}); err != nil {
		tst.Fatal(err)
	}
	if _, err = n.AddLink("P1", 2, 1, net.Pipe); err != nil {
		tst.Fatal(err)
	}

	opt := net.DefaultOptions()
	solver := sparse.NewSolver(n.Njuncs, sparse.JunctionLinks(n))
	st := hydraulics.NewState(n, &opt, solver, nil)
	st.DemandFlow[j.Index] = 2.0

	var fb FlowBalance
	fb.Update(n, st, 10)

	chk.Scalar(tst, "consumer demand (time-weighted)", 1e-12, fb.ConsumerDemand, 20.0)
	chk.Scalar(tst, "total outflow (time-weighted)", 1e-12, fb.TotalOutflow, 20.0)
}
