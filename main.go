// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/waternet"
	"github.com/cpmech/waternet/net"
	"github.com/cpmech/waternet/wntest"
)

// scenarios maps a name to a fixture builder; input-file parsing is an
// external collaborator's job, not the core's, so this driver runs one of
// the built-in literal networks rather than reading a project file.
var scenarios = map[string]func() (*net.Network, *net.Options){
	"singlepipe": wntest.SinglePipe,
	"tankfill":   wntest.TankFill,
	"prv":        wntest.PRVRegulation,
	"checkvalve": wntest.CheckValveClosure,
	"pumplevel":  wntest.PumpLevelControl,
	"chlorine":   wntest.ChlorineMassBalance,
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nwaternet -- hydraulic and water-quality core\n\n")

	flag.Parse()
	name := "singlepipe"
	if len(flag.Args()) > 0 {
		name = flag.Arg(0)
	}

	build, ok := scenarios[name]
	if !ok {
		chk.Panic("unknown scenario %q; choose one of singlepipe, tankfill, prv, checkvalve, pumplevel, chlorine", name)
		return
	}

	n, opt := build()
	if opt.Duration == 0 {
		opt.HydraulicStep = 1
		opt.ReportStep = 1
		opt.Duration = 1
	}

	p := waternet.New(nil)
	if err := p.Open(n, opt); err != nil {
		chk.Panic("%v", err)
	}
	if err := p.OpenH(); err != nil {
		chk.Panic("%v", err)
	}

	rpt, err := p.Run()
	if err != nil {
		chk.Panic("%v", err)
	}

	io.Pf("scenario %q ran %d node-steps, %d link-steps\n", name, len(rpt.Nodes[0]), len(rpt.Links[0]))
	ratio := rpt.Flow.Finalize()
	io.PfGreen("inflow/outflow ratio: %.6f\n", ratio)
}
