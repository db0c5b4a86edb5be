// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package waternet is the top-level entry point into the hydraulic and
// water-quality core: it owns a Project, the reentrant value that every
// other package's state hangs off of. Loading a network (from whatever
// format an embedding host parses), running extended-period hydraulics,
// and running water quality are all driven through the lifecycle methods
// on Project, mirroring the open/openH/openQ staged lifecycle of the
// original toolkit.
package waternet

import (
	"io"
	"log/slog"

	"github.com/cpmech/waternet/errs"
	"github.com/cpmech/waternet/hydraulics"
	"github.com/cpmech/waternet/net"
	"github.com/cpmech/waternet/quality"
	"github.com/cpmech/waternet/report"
	"github.com/cpmech/waternet/scratch"
	"github.com/cpmech/waternet/sparse"
	"github.com/cpmech/waternet/timestep"
	"github.com/cpmech/waternet/wgraph"
	"github.com/cpmech/waternet/wlog"
	"github.com/cpmech/waternet/wmetrics"
)

// Project is the reentrant holder of everything one simulation run needs.
// A Project is "loaded" once a Network is attached, "hydraulics-open" once
// OpenH has built the solver and driver, and may additionally be
// "quality-open" once the driver's Quality engine exists. No package-level
// mutable state backs any of this; two Projects run concurrently without
// interference.
type Project struct {
	Net *net.Network
	Opt *net.Options

	Graph  *wgraph.Graph
	Driver *timestep.Driver

	Metrics *wmetrics.Registry
	Log     *slog.Logger

	loaded bool
	openH  bool
}

// New returns an empty, unloaded Project. Pass a non-nil metrics registry
// to have the solver and time stepper record Newton-iteration counts,
// status-change cycles, and WQ mass-balance ratios; a nil registry is a
// valid, fully inert choice.
func New(metrics *wmetrics.Registry) *Project {
	return &Project{Metrics: metrics, Log: wlog.Discard()}
}

// SetLogger replaces the project's logger (the zero value discards
// everything).
func (p *Project) SetLogger(l *slog.Logger) {
	if l == nil {
		l = wlog.Discard()
	}
	p.Log = l
}

// Open attaches a fully populated network and its options to the project.
// It does not build a solver; call OpenH for that. Calling Open on an
// already-loaded project replaces the network wholesale.
func (p *Project) Open(n *net.Network, opt *net.Options) error {
	if n == nil {
		return errs.New(errs.InvalidArgument, "project.Open: network is nil")
	}
	if opt == nil {
		o := net.DefaultOptions()
		opt = &o
	}
	p.Net = n
	p.Opt = opt
	p.Graph = wgraph.Build(n)
	p.loaded = true
	p.openH = false
	p.Driver = nil
	return nil
}

// Close detaches the project's network, invalidating any open hydraulic or
// quality solver along with it.
func (p *Project) Close() {
	p.Net = nil
	p.Opt = nil
	p.Graph = nil
	p.Driver = nil
	p.loaded = false
	p.openH = false
}

// OpenH builds the sparse solver over the current junction-junction
// topology and the time-stepping driver that will run it. Options.QualityMode
// other than net.QualityNone additionally brings up the water-quality
// engine inside the driver (the staged "openQ" the original toolkit
// exposes separately collapses into this one call here, since the driver
// owns both).
func (p *Project) OpenH() error {
	if !p.loaded {
		return errs.New(errs.NotOpen, "project.OpenH: no network loaded")
	}
	hydraulics.PrecomputeThresholds(p.Net, p.Opt)
	solver := sparse.NewSolver(p.Net.Njuncs, sparse.JunctionLinks(p.Net))
	state := hydraulics.NewState(p.Net, p.Opt, solver, p.Metrics)
	p.Driver = timestep.NewDriver(p.Net, p.Opt, state, hydraulics.DefaultTolerances())
	p.Driver.Log = p.Log
	p.openH = true
	return nil
}

// CloseH tears down the hydraulic (and, if present, quality) solver state
// without discarding the loaded network. Calling it twice is a no-op.
func (p *Project) CloseH() {
	p.Driver = nil
	p.openH = false
}

// InitH resets the driver's clock and tank volumes to their initial
// values without rebuilding the solver, so a run can be repeated from time
// zero on the same topology.
func (p *Project) InitH() error {
	if !p.openH {
		return errs.New(errs.NotOpen, "project.InitH: hydraulics not open")
	}
	state := p.Driver.State
	p.Driver = timestep.NewDriver(p.Net, p.Opt, state, p.Driver.Tol)
	p.Driver.Log = p.Log
	return nil
}

// Step advances the simulation by one extended-period step, returning the
// step length actually taken (0 signals the run has reached its duration).
func (p *Project) Step() (float64, error) {
	if !p.openH {
		return 0, errs.New(errs.NotOpen, "project.Step: hydraulics not open")
	}
	return p.Driver.Step()
}

// Run steps the project to completion, returning the accumulated report
// collector. It stops at the first error Step returns (a hydraulic-unbalanced
// step stops it only when Options.Unbalanced is Stop; under Continue,
// Driver.Step logs it as a warning and goes on).
func (p *Project) Run() (*report.Collector, error) {
	if !p.openH {
		return nil, errs.New(errs.NotOpen, "project.Run: hydraulics not open")
	}
	for !p.Driver.Done() {
		tstep, err := p.Driver.Step()
		if err != nil {
			return p.Driver.Report, err
		}
		if tstep == 0 {
			break
		}
	}
	return p.Driver.Report, nil
}

// SaveHydraulics writes every hydraulic step recorded so far to w in the
// scratch binary format, so a later run can drive water quality from saved
// hydraulics without re-solving them. Call it only after Run (or a
// sufficient sequence of Step calls) has populated the report collector.
func (p *Project) SaveHydraulics(w io.Writer) error {
	if !p.openH {
		return errs.New(errs.NotOpen, "project.SaveHydraulics: hydraulics not open")
	}
	pro := scratch.Prologue{
		Nnodes: int32(len(p.Net.Nodes)),
		Nlinks: int32(len(p.Net.Links)),
		Ntanks: int32(len(p.Net.Tanks)),
	}
	sw, err := scratch.NewWriter(w, pro)
	if err != nil {
		return err
	}
	nn, nl := len(p.Net.Nodes), len(p.Net.Links)
	for i := range p.Driver.Report.Nodes[0] {
		rec := scratch.StepRecord{
			Head:     make([]float64, nn),
			Flow:     make([]float64, nl),
			Status:   make([]int32, nl),
			TankVol:  make([]float64, len(p.Net.Tanks)),
		}
		for j := 0; j < nn; j++ {
			rec.Head[j] = p.Driver.Report.Nodes[j][i].Head
		}
		for j := 0; j < nl; j++ {
			rec.Flow[j] = p.Driver.Report.Links[j][i].Flow
			rec.Status[j] = int32(p.Driver.Report.Links[j][i].Status)
		}
		for j, t := range p.Net.Tanks {
			rec.TankVol[j] = t.VolumeFromHead(p.Driver.Report.Nodes[t.NodeIndex-1][i].Head, p.Net.Curves)
		}
		rec.Time = p.Driver.Report.Nodes[0][i].Time
		if err := sw.WriteStep(rec); err != nil {
			return err
		}
	}
	return nil
}

// ReplayHydraulics drains every step from r and feeds it to fn, without
// re-solving the Newton iteration; this is the path a quality-only rerun
// takes: read saved heads/flows/statuses, run the quality engine's
// sub-stepping against them.
func (p *Project) ReplayHydraulics(r io.Reader, qstep float64, fn func(scratch.StepRecord, *quality.Engine)) error {
	if !p.openH || p.Driver.Quality == nil {
		return errs.New(errs.NotOpen, "project.ReplayHydraulics: quality engine not open")
	}
	sr, err := scratch.NewReader(r)
	if err != nil {
		return err
	}
	prevTime := 0.0
	for {
		rec, err := sr.ReadStep()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		for i, l := range p.Net.Links {
			l.Flow = rec.Flow[i]
			l.Status = net.Status(rec.Status[i])
		}
		p.Driver.Quality.UpdateHydraulics()
		remaining := rec.Time - prevTime
		t := prevTime
		for remaining > 0 {
			dt := qstep
			if dt > remaining {
				dt = remaining
			}
			p.Driver.Quality.Step(dt, t)
			t += dt
			remaining -= dt
		}
		prevTime = rec.Time
		fn(rec, p.Driver.Quality)
	}
}
