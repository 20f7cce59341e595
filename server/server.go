// SPDX-License-Identifier: MIT

// Package server exposes the pipeline over HTTP with gin.
//
// Routes:
//
//	POST /api/graph   build a graph from inline case documents
//	GET  /health      liveness
//	GET  /metrics     Prometheus exposition
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yosukefk/chemnetrowk-vis/casedata"
	"github.com/yosukefk/chemnetrowk-vis/condense"
	"github.com/yosukefk/chemnetrowk-vis/config"
	"github.com/yosukefk/chemnetrowk-vis/converters"
	"github.com/yosukefk/chemnetrowk-vis/flow"
	"github.com/yosukefk/chemnetrowk-vis/metrics"
	"github.com/yosukefk/chemnetrowk-vis/network"
	"github.com/yosukefk/chemnetrowk-vis/pipeline"
	"github.com/yosukefk/chemnetrowk-vis/series"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end.
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Collectors
}

// New builds the router. cfg supplies defaults (workers, tolerance, http
// mode); gatherer backs /metrics.
func New(cfg *config.Config, log *slog.Logger, m *metrics.Collectors, gatherer prometheus.Gatherer) *Server {
	gin.SetMode(cfg.HTTP.Mode)

	s := &Server{router: gin.New(), cfg: cfg, log: log, metrics: m}
	s.router.Use(gin.Recovery(), s.accessLog(), cors())

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := s.router.Group("/api")
	{
		api.POST("/graph", s.buildGraph)
	}

	return s
}

// Handler returns the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", slog.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

type caseRequest struct {
	ID       string             `json:"id" binding:"required"`
	Desc     string             `json:"desc"`
	Document *casedata.Document `json:"document" binding:"required"`
}

type graphRequest struct {
	Title          string              `json:"title"`
	Orient         bool                `json:"orient"`
	UnitConversion *float64            `json:"unit_conversion" binding:"omitempty,ne=0"`
	Ignored        []string            `json:"ignored"`
	Condense       map[string][]string `json:"condense"`
	CondensePgrp   bool                `json:"condense_pgrp"`
	Rank           bool                `json:"rank"`
	Cases          []caseRequest       `json:"cases" binding:"required,min=1,dive"`
}

// options overlays the request onto the configured defaults.
func (r *graphRequest) options(defaults *config.Config) *config.Config {
	cfg := *defaults
	cfg.Title = r.Title
	cfg.Orient = r.Orient
	cfg.Ignored = r.Ignored
	cfg.Condense = nil
	ids := make([]string, 0, len(r.Condense))
	for id := range r.Condense {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		cfg.Condense = append(cfg.Condense, config.CondenseGroup{ID: id, Members: r.Condense[id]})
	}
	cfg.CondensePgrp = r.CondensePgrp
	cfg.Rank = r.Rank
	if r.UnitConversion != nil {
		cfg.UnitConversion = *r.UnitConversion
	}
	cfg.Cases = nil

	return &cfg
}

// buildGraph handles POST /api/graph. Query parameters: format
// (json|msgpack|xlsx, default json), compression (none|gzip|zstd) and
// pretty (json only).
func (s *Server) buildGraph(c *gin.Context) {
	var req graphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format := c.DefaultQuery("format", converters.FormatJSON)
	comp := converters.Compression(c.DefaultQuery("compression", string(converters.CompressionNone)))
	if err := converters.CheckFormat(format, comp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := req.options(s.cfg)
	preq := pipeline.FromConfig(cfg, s.log, s.metrics)
	for _, cr := range req.Cases {
		preq.Sources = append(preq.Sources, pipeline.Source{Label: cr.ID, Description: cr.Desc, Document: cr.Document})
	}

	res, err := pipeline.Run(c.Request.Context(), preq)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := converters.Export(&buf, res.Graph, format, comp, c.Query("pretty") == "true"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, converters.ContentType(format, comp), buf.Bytes())
}

// statusOf maps pipeline errors on input problems to 422.
func statusOf(err error) int {
	var invalid validator.ValidationErrors
	switch {
	case errors.As(err, &invalid),
		errors.Is(err, network.ErrDataConsistency),
		errors.Is(err, flow.ErrNonFinite),
		errors.Is(err, condense.ErrConflict),
		errors.Is(err, condense.ErrEmptyID),
		errors.Is(err, casedata.ErrConfiguration),
		errors.Is(err, series.ErrDuplicateLabel),
		errors.Is(err, series.ErrEmptyLabel),
		errors.Is(err, series.ErrMixedCondensation),
		errors.Is(err, series.ErrEmptyGroup):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)))
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
