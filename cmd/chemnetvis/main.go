// SPDX-License-Identifier: MIT

// Command chemnetvis turns chemical-sector model results into a flow graph
// for visualization, or serves the same conversion over HTTP.
//
// Usage:
//
//	chemnetvis [flags] [label=]case.json ...
//	chemnetvis -serve [-addr :8080]
//	chemnetvis -dump-config > chemnet.toml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/yosukefk/chemnetrowk-vis/config"
	"github.com/yosukefk/chemnetrowk-vis/converters"
	"github.com/yosukefk/chemnetrowk-vis/logger"
	"github.com/yosukefk/chemnetrowk-vis/metrics"
	"github.com/yosukefk/chemnetrowk-vis/pipeline"
	"github.com/yosukefk/chemnetrowk-vis/server"
)

var (
	configPath  = flag.String("config", "", "TOML configuration file")
	outPath     = flag.String("out", "", "output file, - for stdout (overrides output.path)")
	format      = flag.String("format", "", "output format: json, msgpack or xlsx (overrides output.format)")
	compression = flag.String("compression", "", "none, gzip or zstd (overrides output.compression)")
	title       = flag.String("title", "", "graph title (overrides title)")
	orient      = flag.Bool("orient", false, "orient links consistently across scenarios")
	rank        = flag.Bool("rank", false, "annotate nodes with PageRank")
	serve       = flag.Bool("serve", false, "run the HTTP API instead of a batch conversion")
	addr        = flag.String("addr", "", "listen address (overrides http.addr)")
	dumpConfig  = flag.Bool("dump-config", false, "print the effective configuration as TOML and exit")
)

func main() {
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chemnetvis:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, flag.Args()); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if *dumpConfig {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.NewCollectors(reg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		return server.New(cfg, log, m, reg).Run(ctx, cfg.HTTP.Addr)
	}

	if err := convert(ctx, cfg, log, m); err != nil {
		return err
	}
	if cfg.Metrics.Textfile != "" {
		return metrics.WriteTextfile(cfg.Metrics.Textfile, reg)
	}

	return nil
}

func convert(ctx context.Context, cfg *config.Config, log *slog.Logger, m *metrics.Collectors) error {
	if len(cfg.Cases) == 0 {
		return errors.New("no cases: list them in the config file or as arguments")
	}
	res, err := pipeline.Run(ctx, pipeline.FromConfig(cfg, log, m))
	if err != nil {
		return err
	}

	if cfg.Output.Path == "-" {
		return converters.Export(os.Stdout, res.Graph, cfg.Output.Format, converters.Compression(cfg.Output.Compression), cfg.Output.Pretty)
	}
	f, err := os.Create(cfg.Output.Path)
	if err != nil {
		return err
	}
	if err := converters.Export(f, res.Graph, cfg.Output.Format, converters.Compression(cfg.Output.Compression), cfg.Output.Pretty); err != nil {
		f.Close()
		return err
	}
	log.Info("graph written", slog.String("path", cfg.Output.Path), slog.String("format", cfg.Output.Format))

	return f.Close()
}

// applyFlags layers explicit flags and positional case arguments over cfg.
func applyFlags(cfg *config.Config, args []string) error {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *outPath != "" {
		cfg.Output.Path = *outPath
	}
	if *format != "" {
		cfg.Output.Format = *format
		if !set["out"] && cfg.Output.Path == config.Default().Output.Path {
			cfg.Output.Path = "chemnetwork." + *format
		}
	}
	if *compression != "" {
		cfg.Output.Compression = *compression
	}
	if *title != "" {
		cfg.Title = *title
	}
	if set["orient"] {
		cfg.Orient = *orient
	}
	if set["rank"] {
		cfg.Rank = *rank
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	cases, err := parseCases(args)
	if err != nil {
		return err
	}
	if len(cases) > 0 {
		cfg.Cases = cases
	}

	return nil
}

// parseCases accepts "label=path" or a bare path labelled by its base name.
func parseCases(args []string) ([]config.Case, error) {
	var out []config.Case
	for _, arg := range args {
		label, path, ok := strings.Cut(arg, "=")
		if !ok {
			path = arg
			label = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if label == "" || path == "" {
			return nil, fmt.Errorf("bad case argument %q", arg)
		}
		out = append(out, config.Case{ID: label, Path: path})
	}

	return out, nil
}
