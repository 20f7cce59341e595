// SPDX-License-Identifier: MIT

package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/yosukefk/chemnetrowk-vis/config"
	"github.com/yosukefk/chemnetrowk-vis/converters"
	"github.com/yosukefk/chemnetrowk-vis/metrics"
	"github.com/yosukefk/chemnetrowk-vis/server"
)

type ServerSuite struct {
	suite.Suite
	handler http.Handler
	doc     json.RawMessage
}

func (s *ServerSuite) SetupTest() {
	cfg := config.Default()
	cfg.HTTP.Mode = "test"

	reg := prometheus.NewRegistry()
	m, err := metrics.NewCollectors(reg)
	s.Require().NoError(err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.handler = server.New(cfg, log, m, reg).Handler()

	data, err := os.ReadFile("../casedata/testdata/olefins.json")
	s.Require().NoError(err)
	s.doc = data
}

func (s *ServerSuite) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	return w
}

func (s *ServerSuite) body(cases ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"title":   "olefins",
		"ignored": []string{"STEAM"},
		"cases":   cases,
	}
}

func (s *ServerSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (s *ServerSuite) TestGraph_JSON() {
	w := s.do(http.MethodPost, "/api/graph?pretty=true", s.body(
		map[string]interface{}{"id": "base", "document": s.doc},
		map[string]interface{}{"id": "copy", "desc": "same data", "document": s.doc},
	))
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	s.Equal("application/json", w.Header().Get("Content-Type"))

	var nl converters.NodeLink
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &nl))
	s.True(nl.Directed)
	s.Len(nl.Nodes, 5)
	s.Len(nl.Links, 4)
	s.Equal([]interface{}{"base", "copy"}, nl.Graph["series_labels"])

	metricsBody := s.do(http.MethodGet, "/metrics", nil).Body.String()
	s.Contains(metricsBody, "chemnet_scenarios_total 2")
	s.Contains(metricsBody, "chemnet_graph_nodes 5")
}

func (s *ServerSuite) TestGraph_MsgPackZstd() {
	w := s.do(http.MethodPost, "/api/graph?format=msgpack&compression=zstd", s.body(
		map[string]interface{}{"id": "base", "document": s.doc},
	))
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	s.Equal("application/zstd", w.Header().Get("Content-Type"))

	ser, err := converters.NewSerializer(converters.SnapshotConfig{Codec: converters.MsgPackCodec{}, Compression: converters.CompressionZstd})
	s.Require().NoError(err)
	g, err := ser.DecodeGraph(w.Body.Bytes())
	s.Require().NoError(err)
	s.True(g.HasVertex("ETHYLENE"))
}

func (s *ServerSuite) TestGraph_BadRequests() {
	w := s.do(http.MethodPost, "/api/graph", map[string]interface{}{"title": "empty"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/graph", map[string]interface{}{
		"unit_conversion": 0,
		"cases":           []interface{}{map[string]interface{}{"id": "a", "document": s.doc}},
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/graph?format=csv", s.body(map[string]interface{}{"id": "a", "document": s.doc}))
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerSuite) TestGraph_FormatCheckedBeforeRun() {
	bad := map[string]interface{}{"i": []string{"A"}, "throughput": map[string]interface{}{"B": map[string]float64{"P1": 1}}}
	for _, target := range []string{
		"/api/graph?format=csv",
		"/api/graph?compression=brotli",
		"/api/graph?format=xlsx&compression=zstd",
	} {
		w := s.do(http.MethodPost, target, s.body(map[string]interface{}{"id": "a", "document": bad}))
		s.Equal(http.StatusBadRequest, w.Code, target)
	}

	metricsBody := s.do(http.MethodGet, "/metrics", nil).Body.String()
	s.Contains(metricsBody, "chemnet_scenarios_total 0")
	s.NotContains(metricsBody, "chemnet_pipeline_failures_total")
}

func (s *ServerSuite) TestGraph_Unprocessable() {
	bad := map[string]interface{}{
		"i":          []string{"A"},
		"j":          []string{"P1"},
		"throughput": map[string]interface{}{"B": map[string]float64{"P1": 1}},
	}
	w := s.do(http.MethodPost, "/api/graph", s.body(map[string]interface{}{"id": "a", "document": bad}))
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(w.Body.String(), "undeclared material")

	w = s.do(http.MethodPost, "/api/graph", s.body(
		map[string]interface{}{"id": "a", "document": s.doc},
		map[string]interface{}{"id": "a", "document": s.doc},
	))
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *ServerSuite) TestPreflight() {
	w := s.do(http.MethodOptions, "/api/graph", nil)
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestNew_NilMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.HTTP.Mode = "test"
	assert.NotPanics(t, func() { server.New(cfg, slog.Default(), nil, prometheus.NewRegistry()) })
}
