// SPDX-License-Identifier: MIT
// File: workbook.go
// Role: spreadsheet export for analysts (nodes, links, per-process links).

package converters

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/yosukefk/chemnetrowk-vis/builder"
	"github.com/yosukefk/chemnetrowk-vis/core"
)

// Sheet names written by WriteWorkbook.
const (
	SheetNodes          = "nodes"
	SheetLinks          = "links"
	SheetLinksByProcess = "links_by_process"
)

var nodeColumns = []string{
	builder.AttrFlux, builder.AttrGrossProd, builder.AttrGrossCons, builder.AttrNetProd,
	builder.AttrDemand, builder.AttrSupply, builder.AttrUnconstrainedRaw, builder.AttrRank,
}

// WriteWorkbook writes g as an xlsx workbook. Multi-scenario graphs get one
// extra "flux[label]" column per scenario.
func WriteWorkbook(w io.Writer, g *core.Graph) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetNodes); err != nil {
		return fmt.Errorf("converters: workbook: %w", err)
	}
	for _, name := range []string{SheetLinks, SheetLinksByProcess} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("converters: workbook: %w", err)
		}
	}

	attrs := g.Attrs()
	labels := stringsOf(attrs[builder.GraphSeriesLabels])
	seriesHeader := func(prefix string) []interface{} {
		out := make([]interface{}, len(labels))
		for i, l := range labels {
			out[i] = fmt.Sprintf("%s[%s]", prefix, l)
		}
		return out
	}

	// nodes
	header := []interface{}{"id", builder.AttrName, builder.AttrCategory}
	for _, c := range nodeColumns {
		header = append(header, c)
	}
	header = append(header, seriesHeader(builder.AttrFlux)...)
	rows := [][]interface{}{header}
	for _, id := range g.Vertices() {
		v, err := g.Vertex(id)
		if err != nil {
			return fmt.Errorf("converters: workbook: %w", err)
		}
		row := []interface{}{id, v.Metadata[builder.AttrName], v.Metadata[builder.AttrCategory]}
		for _, c := range nodeColumns {
			row = append(row, v.Metadata[c])
		}
		for _, x := range padded(floatsOf(v.Metadata[builder.AttrSeriesFlux]), len(labels)) {
			row = append(row, x)
		}
		rows = append(rows, row)
	}
	if err := writeRows(f, SheetNodes, rows); err != nil {
		return err
	}

	// links and per-process links
	header = append([]interface{}{"source", "target", builder.AttrFlux}, seriesHeader(builder.AttrFlux)...)
	rows = [][]interface{}{header}
	header = append([]interface{}{"source", "target", "process", builder.AttrFlux}, seriesHeader(builder.AttrFlux)...)
	procRows := [][]interface{}{header}
	for _, e := range g.Edges() {
		row := []interface{}{e.From, e.To, e.Weight}
		for _, x := range padded(floatsOf(e.Metadata[builder.AttrSeriesFlux]), len(labels)) {
			row = append(row, x)
		}
		rows = append(rows, row)

		summary := mapOf(e.Metadata[builder.AttrFluxByProc])
		perScenario := mapsOf(e.Metadata[builder.AttrSeriesFluxByProc])
		procs := make([]string, 0, len(summary))
		for p := range summary {
			procs = append(procs, p)
		}
		sort.Strings(procs)
		for _, p := range procs {
			prow := []interface{}{e.From, e.To, p, summary[p]}
			for i := range labels {
				var x float64
				if i < len(perScenario) {
					x = perScenario[i][p]
				}
				prow = append(prow, x)
			}
			procRows = append(procRows, prow)
		}
	}
	if err := writeRows(f, SheetLinks, rows); err != nil {
		return err
	}
	if err := writeRows(f, SheetLinksByProcess, procRows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("converters: workbook: %w", err)
	}

	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("converters: workbook: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("converters: workbook %s row %d: %w", sheet, i+1, err)
		}
	}

	return nil
}

func padded(xs []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, xs)

	return out
}

// The helpers below accept both in-memory attribute types and the generic
// shapes produced by decoding a snapshot.

func stringsOf(v interface{}) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []interface{}:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}

	return nil
}

func floatsOf(v interface{}) []float64 {
	switch x := v.(type) {
	case []float64:
		return x
	case []interface{}:
		out := make([]float64, len(x))
		for i, e := range x {
			out[i], _ = toFloat(e)
		}
		return out
	}

	return nil
}

func mapOf(v interface{}) map[string]float64 {
	switch x := v.(type) {
	case map[string]float64:
		return x
	case map[string]interface{}:
		out := make(map[string]float64, len(x))
		for k, e := range x {
			out[k], _ = toFloat(e)
		}
		return out
	}

	return nil
}

func mapsOf(v interface{}) []map[string]float64 {
	switch x := v.(type) {
	case []map[string]float64:
		return x
	case []interface{}:
		out := make([]map[string]float64, len(x))
		for i, e := range x {
			out[i] = mapOf(e)
		}
		return out
	}

	return nil
}
