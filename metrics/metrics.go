// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors of a chemnetvis process.
// The server exposes them on /metrics; batch runs can dump them to a
// node_exporter textfile with WriteTextfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chemnet"

// Collectors groups the metrics updated by the pipeline. A nil *Collectors
// is valid and records nothing.
type Collectors struct {
	Scenarios prometheus.Counter
	Warnings  prometheus.Counter
	Failures  *prometheus.CounterVec
	Decompose prometheus.Histogram
	Nodes     prometheus.Gauge
	Links     prometheus.Gauge
}

// NewCollectors creates the collectors and registers them on reg.
func NewCollectors(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		Scenarios: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenarios_total",
			Help:      "Scenarios loaded and decomposed.",
		}),
		Warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mass_balance_warnings_total",
			Help:      "Processes whose consumption and production disagree beyond tolerance.",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_failures_total",
			Help:      "Failed pipeline runs by stage.",
		}, []string{"stage"}),
		Decompose: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decompose_seconds",
			Help:      "Time spent building all tables of one scenario.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		Nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Nodes in the last built graph.",
		}),
		Links: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_links",
			Help:      "Links in the last built graph.",
		}),
	}

	for _, col := range []prometheus.Collector{c.Scenarios, c.Warnings, c.Failures, c.Decompose, c.Nodes, c.Links} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	return c, nil
}

// ObserveScenario records one decomposed scenario.
func (c *Collectors) ObserveScenario(elapsed time.Duration, warnings int) {
	if c == nil {
		return
	}
	c.Scenarios.Inc()
	c.Warnings.Add(float64(warnings))
	c.Decompose.Observe(elapsed.Seconds())
}

// ObserveGraph records the size of a built graph.
func (c *Collectors) ObserveGraph(nodes, links int) {
	if c == nil {
		return
	}
	c.Nodes.Set(float64(nodes))
	c.Links.Set(float64(links))
}

// Fail counts a failure in stage.
func (c *Collectors) Fail(stage string) {
	if c == nil {
		return
	}
	c.Failures.WithLabelValues(stage).Inc()
}

// WriteTextfile dumps everything g gathers to path in the text exposition
// format, atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}
