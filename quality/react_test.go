package quality

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/waternet/net"
)

func Test_bulkrate01(tst *testing.T) {
	chk.PrintTitle("bulkrate01. first-order decay rate is proportional to c")

	rate := bulkRate(2.0, -0.5, 1.0, 0.0)
	chk.Scalar(tst, "rate", 1e-12, rate, -1.0)
}

func Test_bulkrate02(tst *testing.T) {
	chk.PrintTitle("bulkrate02. zero-order reaction ignores concentration")

	rate := bulkRate(5.0, -0.1, 0.0, 0.0)
	chk.Scalar(tst, "rate", 1e-12, rate, -0.1)
}

func Test_pipereact01(tst *testing.T) {
	chk.PrintTitle("pipereact01. zero reaction coefficients leave concentration unchanged")

	l := &net.Link{Diameter: 1.0, Length: 1000, Kb: 0, Kw: 0}
	opt := net.DefaultOptions()

	cnew, reacted := pipeReact(1.0, l, 0, &opt, 3600)
	chk.Scalar(tst, "cnew", 1e-12, cnew, 1.0)
	chk.Scalar(tst, "reacted", 1e-12, reacted, 0.0)
}
