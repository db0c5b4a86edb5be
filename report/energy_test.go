package report

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/waternet/net"
)

func Test_pumpenergy01(tst *testing.T) {
	chk.PrintTitle("pumpenergy01. running kWh and peak kW accumulate across steps")

	var pe PumpEnergy
	pe.Update(5.0, 100.0, 0.65, 1.0, 0.10, 3600)

	hp := 5.0 * 100.0 * specificWeight / (550.0 * 0.65)
	kw := hp * hpToKw

	chk.Scalar(tst, "kWh after one hour", 1e-9, pe.KwhUsed, kw)
	chk.Scalar(tst, "peak kW", 1e-9, pe.PeakKw, kw)
	chk.Scalar(tst, "average kW", 1e-9, pe.AverageKw(), kw)
	chk.Scalar(tst, "cost", 1e-9, pe.Cost, kw*0.10)
}

func Test_pumpenergy02(tst *testing.T) {
	chk.PrintTitle("pumpenergy02. idle or zero-flow steps leave totals unchanged")

	var pe PumpEnergy
	pe.Update(0, 100.0, 0.65, 1.0, 0.10, 3600)

	chk.Scalar(tst, "kWh", 1e-12, pe.KwhUsed, 0)
	chk.Scalar(tst, "average kW", 1e-12, pe.AverageKw(), 0)
}

func Test_headgain01(tst *testing.T) {
	chk.PrintTitle("headgain01. pump head gain follows the single-point curve")

	p := &net.Pump{H0: 150, R: 0.0005, N: 2}
	l := &net.Link{Flow: 10}

	want := 150 - 0.0005*100
	chk.Scalar(tst, "head", 1e-9, headGain(l, p), want)
}

func Test_headgain02(tst *testing.T) {
	chk.PrintTitle("headgain02. head gain clamps to zero past shutoff flow")

	p := &net.Pump{H0: 10, R: 1.0, N: 2}
	l := &net.Link{Flow: 10}

	chk.Scalar(tst, "head", 1e-12, headGain(l, p), 0)
}

func Test_pumpefficiency01(tst *testing.T) {
	chk.PrintTitle("pumpefficiency01. constant efficiency used when no curve assigned")

	p := &net.Pump{ConstEff: 70}
	eff := pumpEfficiency(p, 5.0, nil)
	chk.Scalar(tst, "efficiency", 1e-12, eff, 0.70)
}

func Test_pumpefficiency02(tst *testing.T) {
	chk.PrintTitle("pumpefficiency02. falls back to a default efficiency with no curve or constant")

	p := &net.Pump{}
	eff := pumpEfficiency(p, 5.0, nil)
	chk.Scalar(tst, "efficiency", 1e-12, eff, 0.65)
}
