// SPDX-License-Identifier: MIT
// File: pipeline.go
// Role: end-to-end run: load cases concurrently, aggregate, build the graph.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yosukefk/chemnetrowk-vis/builder"
	"github.com/yosukefk/chemnetrowk-vis/casedata"
	"github.com/yosukefk/chemnetrowk-vis/config"
	"github.com/yosukefk/chemnetrowk-vis/converters"
	"github.com/yosukefk/chemnetrowk-vis/core"
	"github.com/yosukefk/chemnetrowk-vis/metrics"
	"github.com/yosukefk/chemnetrowk-vis/series"
)

// DefaultWorkers bounds concurrent case loading when Request.Workers is 0.
const DefaultWorkers = 4

var (
	// ErrNoSources is returned when a Request names no case.
	ErrNoSources = errors.New("pipeline: no sources")
	// ErrBadSource is returned for a Source with neither a path nor a document.
	ErrBadSource = errors.New("pipeline: source needs a path or a document")
)

// Source is one scenario input. Document takes precedence over Path.
type Source struct {
	Label       string
	Description string
	Path        string
	Document    *casedata.Document
}

// Request describes one run.
type Request struct {
	Title       string
	Sources     []Source
	CaseOptions []casedata.Option
	Orient      bool
	Workers     int
	Rank        bool
	RunID       string

	Logger  *slog.Logger
	Metrics *metrics.Collectors
}

// Result is the outcome of Run.
type Result struct {
	Graph  *core.Graph
	Series *series.Result
	Cases  []*casedata.Case
}

// Run loads every source with at most Workers goroutines, forces all
// derived tables, aggregates the scenarios and builds the graph. The first
// failure cancels the remaining loads.
func Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.Sources) == 0 {
		return nil, ErrNoSources
	}
	log := req.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	workers := req.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	cases := make([]*casedata.Case, len(req.Sources))
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)
	for i, src := range req.Sources {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := loadCase(src, req.CaseOptions, log, req.Metrics)
			if err != nil {
				return fmt.Errorf("case %q: %w", src.Label, err)
			}
			cases[i] = c
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		req.Metrics.Fail("load")
		return nil, err
	}

	scenarios := make([]series.Scenario, len(cases))
	for i, c := range cases {
		scenarios[i] = series.Scenario{
			Label:       req.Sources[i].Label,
			Description: req.Sources[i].Description,
			Case:        c,
		}
	}
	res, err := series.Aggregate(scenarios, series.Options{Orient: req.Orient})
	if err != nil {
		req.Metrics.Fail("aggregate")
		return nil, err
	}

	bopts := []builder.BuilderOption{
		builder.WithTitle(req.Title),
		builder.WithMaterialDefs(cases[0].MaterialDefs()),
		builder.WithProcessDefs(cases[0].ProcessDefs()),
	}
	if req.RunID != "" {
		bopts = append(bopts, builder.WithRunID(req.RunID))
	}
	g, err := builder.FromResult(res, bopts...)
	if err != nil {
		req.Metrics.Fail("build")
		return nil, err
	}
	if req.Rank {
		if err := converters.AnnotateRank(g, converters.DefaultDamping, converters.DefaultRankTol); err != nil {
			req.Metrics.Fail("rank")
			return nil, err
		}
	}
	req.Metrics.ObserveGraph(g.VertexCount(), g.EdgeCount())
	log.Info("graph built",
		slog.String("title", req.Title),
		slog.Int("scenarios", len(scenarios)),
		slog.Int("nodes", g.VertexCount()),
		slog.Int("links", g.EdgeCount()))

	return &Result{Graph: g, Series: res, Cases: cases}, nil
}

func loadCase(src Source, opts []casedata.Option, log *slog.Logger, m *metrics.Collectors) (*casedata.Case, error) {
	doc := src.Document
	if doc == nil {
		if src.Path == "" {
			return nil, ErrBadSource
		}
		var err error
		if doc, err = casedata.LoadFile(src.Path); err != nil {
			return nil, err
		}
	}

	caseLog := log.With(slog.String("case", src.Label))
	all := append(append([]casedata.Option(nil), opts...), casedata.WithLogger(caseLog))
	c, err := casedata.New(doc, all...)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := c.Force(); err != nil {
		return nil, err
	}
	d, err := c.Decomposition()
	if err != nil {
		return nil, err
	}
	m.ObserveScenario(time.Since(start), len(d.Warnings))
	caseLog.Debug("case loaded", slog.Int("records", len(c.Throughput())), slog.Int("warnings", len(d.Warnings)))

	return c, nil
}

// CaseOptions translates the table-shaping part of cfg into casedata options.
func CaseOptions(cfg *config.Config) []casedata.Option {
	opts := []casedata.Option{
		casedata.WithUnitConversion(cfg.UnitConversion),
		casedata.WithTolerance(cfg.Tolerance),
	}
	if len(cfg.Ignored) > 0 {
		opts = append(opts, casedata.WithIgnored(cfg.Ignored...))
	}
	if groups := cfg.CondenseMap(); groups != nil {
		opts = append(opts, casedata.WithCondensation(groups))
	}
	if cfg.CondensePgrp {
		opts = append(opts, casedata.WithProductGroupCondensation())
	}

	return opts
}

// FromConfig builds a Request running the cases listed in cfg.
func FromConfig(cfg *config.Config, log *slog.Logger, m *metrics.Collectors) Request {
	srcs := make([]Source, len(cfg.Cases))
	for i, c := range cfg.Cases {
		srcs[i] = Source{Label: c.ID, Description: c.Desc, Path: c.Path}
	}

	return Request{
		Title:       cfg.Title,
		Sources:     srcs,
		CaseOptions: CaseOptions(cfg),
		Orient:      cfg.Orient,
		Workers:     cfg.Workers,
		Rank:        cfg.Rank,
		Logger:      log,
		Metrics:     m,
	}
}
