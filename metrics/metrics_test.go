// SPDX-License-Identifier: MIT

package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yosukefk/chemnetrowk-vis/metrics"
)

func TestCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.NewCollectors(reg)
	require.NoError(t, err)

	c.ObserveScenario(5*time.Millisecond, 2)
	c.ObserveScenario(time.Millisecond, 0)
	c.ObserveGraph(7, 9)
	c.Fail("load")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Scenarios))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Warnings))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.Nodes))
	assert.Equal(t, 9.0, testutil.ToFloat64(c.Links))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Failures.WithLabelValues("load")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.Decompose))

	_, err = metrics.NewCollectors(reg)
	require.Error(t, err, "duplicate registration")
}

func TestNilCollectors(t *testing.T) {
	var c *metrics.Collectors
	assert.NotPanics(t, func() {
		c.ObserveScenario(time.Second, 1)
		c.ObserveGraph(1, 1)
		c.Fail("x")
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.NewCollectors(reg)
	require.NoError(t, err)
	c.ObserveGraph(3, 4)

	path := filepath.Join(t.TempDir(), "chemnet.prom")
	require.NoError(t, metrics.WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "chemnet_graph_nodes 3")
	assert.Contains(t, string(data), "chemnet_graph_links 4")
}
