package series_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/yosukefk/chemnetrowk-vis/casedata"
	"github.com/yosukefk/chemnetrowk-vis/network"
	"github.com/yosukefk/chemnetrowk-vis/series"
)

const eps = 1e-9

func rec(mat, proc string, v float64) network.Record {
	return network.Record{Material: mat, Process: proc, Value: v}
}

// document declares every material and process referenced by rows.
func document(rows ...network.Record) *casedata.Document {
	d := &casedata.Document{Throughput: map[string]map[string]float64{}}
	seenM, seenP := map[string]bool{}, map[string]bool{}
	for _, r := range rows {
		if !seenM[r.Material] {
			seenM[r.Material] = true
			d.Materials = append(d.Materials, r.Material)
			d.Throughput[r.Material] = map[string]float64{}
		}
		if !seenP[r.Process] {
			seenP[r.Process] = true
			d.Processes = append(d.Processes, r.Process)
		}
		d.Throughput[r.Material][r.Process] = r.Value
	}

	return d
}

func chain() *casedata.Document {
	return document(rec("A", "P1", -10), rec("B", "P1", 10), rec("B", "P2", -4), rec("C", "P2", 4))
}

// AggregateSuite exercises Aggregate on small hand-made scenarios.
type AggregateSuite struct {
	suite.Suite
}

func (s *AggregateSuite) newCase(doc *casedata.Document, opts ...casedata.Option) *casedata.Case {
	c, err := casedata.New(doc, opts...)
	s.Require().NoError(err)
	return c
}

func (s *AggregateSuite) scenario(label string, doc *casedata.Document, opts ...casedata.Option) series.Scenario {
	return series.Scenario{Label: label, Description: label + " desc", Case: s.newCase(doc, opts...)}
}

// TestSingleScenario checks the concrete chain without series.
func (s *AggregateSuite) TestSingleScenario() {
	res, err := series.Aggregate([]series.Scenario{s.scenario("base", chain())}, series.DefaultOptions())
	require.NoError(s.T(), err)
	require.False(s.T(), res.Multi())

	ids := []string{}
	for _, n := range res.Nodes {
		ids = append(ids, n.ID)
		require.Nil(s.T(), n.Series)
	}
	require.ElementsMatch(s.T(), []string{"A", "B", "C"}, ids)

	b, ok := res.Node("B")
	require.True(s.T(), ok)
	require.Equal(s.T(), 10.0, b.Flux)
	require.Equal(s.T(), 6.0, b.NetProd)
	require.Equal(s.T(), map[string]float64{"P1": 10, "P2": 4}, b.FluxByProc)

	require.Len(s.T(), res.Links, 2)
	ab, ok := res.Link("A", "B")
	require.True(s.T(), ok)
	require.InDelta(s.T(), 10.0, ab.Flux, eps)
	require.Nil(s.T(), ab.Series)
	bc, _ := res.Link("B", "C")
	require.InDelta(s.T(), 4.0, bc.Flux, eps)
	require.InDelta(s.T(), 4.0, bc.FluxByProc["P2"], eps)
	require.Equal(s.T(), []string{"base"}, res.Labels)
	require.False(s.T(), res.Oriented)
}

// TestIdempotentUnion checks that K=2 identical scenarios keep the summaries.
func (s *AggregateSuite) TestIdempotentUnion() {
	single, err := series.Aggregate([]series.Scenario{s.scenario("x", chain())}, series.DefaultOptions())
	require.NoError(s.T(), err)
	double, err := series.Aggregate([]series.Scenario{
		s.scenario("x", chain()), s.scenario("y", chain()),
	}, series.DefaultOptions())
	require.NoError(s.T(), err)
	require.True(s.T(), double.Multi())

	require.Len(s.T(), double.Nodes, len(single.Nodes))
	for _, n := range single.Nodes {
		d, ok := double.Node(n.ID)
		require.True(s.T(), ok)
		require.Equal(s.T(), n.Flux, d.Flux)
		require.Equal(s.T(), n.GrossProd, d.GrossProd)
		require.Equal(s.T(), n.GrossCons, d.GrossCons)
		require.Equal(s.T(), n.NetProd, d.NetProd)
		require.Equal(s.T(), n.FluxByProc, d.FluxByProc)
		require.Len(s.T(), d.Series.Flux, 2)
		require.Equal(s.T(), d.Series.Flux[0], d.Series.Flux[1])
		require.Equal(s.T(), d.Series.FluxByProc[0], d.Series.FluxByProc[1])
	}
	for _, l := range single.Links {
		d, ok := double.Link(l.Consumer, l.Producer)
		require.True(s.T(), ok)
		require.Equal(s.T(), l.Flux, d.Flux)
		require.Equal(s.T(), []float64{l.Flux, l.Flux}, d.Series.Flux)
	}
}

// TestUnionZeroFill checks union order, zero fill and summaries.
func (s *AggregateSuite) TestUnionZeroFill() {
	second := document(rec("A", "P1", -3), rec("B", "P1", 3), rec("B", "P3", -5), rec("D", "P3", 5))
	res, err := series.Aggregate([]series.Scenario{
		s.scenario("low", chain()), s.scenario("high", second),
	}, series.DefaultOptions())
	require.NoError(s.T(), err)

	require.Equal(s.T(), "D", res.Nodes[len(res.Nodes)-1].ID)
	d, _ := res.Node("D")
	require.Equal(s.T(), []float64{0, 5}, d.Series.Flux)
	require.Equal(s.T(), 5.0, d.Flux)

	a, _ := res.Node("A")
	require.Equal(s.T(), []float64{-10, -3}, a.Series.NetProd)
	require.Equal(s.T(), -10.0, a.NetProd, "signed extreme keeps the sign")
	require.Equal(s.T(), 10.0, a.GrossCons)

	b, _ := res.Node("B")
	require.Equal(s.T(), []map[string]float64{
		{"P1": 10, "P2": 4, "P3": 0},
		{"P1": 3, "P2": 0, "P3": 5},
	}, b.Series.FluxByProc)
	require.Equal(s.T(), map[string]float64{"P1": 10, "P2": 4, "P3": 5}, b.FluxByProc)

	keys := []network.EdgeKey{}
	for _, l := range res.Links {
		keys = append(keys, l.Key())
	}
	require.Equal(s.T(), []network.EdgeKey{
		{Consumer: "A", Producer: "B"}, {Consumer: "B", Producer: "C"}, {Consumer: "B", Producer: "D"},
	}, keys)
	bd, _ := res.Link("B", "D")
	require.Equal(s.T(), []float64{0, 5}, bd.Series.Flux)
	bc, _ := res.Link("B", "C")
	require.Equal(s.T(), []float64{4, 0}, bc.Series.Flux)
	require.Equal(s.T(), []string{"low desc", "high desc"}, res.Descs)
}

// TestOrientation checks that a reversed pair is relabeled to the
// first-seen orientation with its magnitude kept.
func (s *AggregateSuite) TestOrientation() {
	reversed := document(rec("B", "P9", -5), rec("A", "P9", 5))
	scen := func() []series.Scenario {
		return []series.Scenario{s.scenario("s1", chain()), s.scenario("s2", reversed)}
	}

	plain, err := series.Aggregate(scen(), series.DefaultOptions())
	require.NoError(s.T(), err)
	_, ok := plain.Link("B", "A")
	require.True(s.T(), ok, "without orientation both directions survive")

	in := scen()
	res, err := series.Aggregate(in, series.Options{Orient: true})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Oriented)
	_, ok = res.Link("B", "A")
	require.False(s.T(), ok)
	ab, ok := res.Link("A", "B")
	require.True(s.T(), ok)
	require.InDeltaSlice(s.T(), []float64{10, 5}, ab.Series.Flux, eps)
	require.InDelta(s.T(), 5.0, ab.Series.FluxByProc[1]["P9"], eps)

	// scenario tables are not rewritten
	d, err := in[1].Case.Decomposition()
	require.NoError(s.T(), err)
	require.True(s.T(), d.Edges.Has(network.EdgeKey{Consumer: "B", Producer: "A"}))
}

// TestDualFolding checks netting of (A,B) and (B,A) inside one scenario.
func (s *AggregateSuite) TestDualFolding() {
	doc := document(rec("A", "P1", -10), rec("B", "P1", 10), rec("B", "P2", -4), rec("A", "P2", 4))
	res, err := series.Aggregate([]series.Scenario{s.scenario("s", doc)}, series.Options{Orient: true})
	require.NoError(s.T(), err)

	require.Len(s.T(), res.Links, 1)
	ab, ok := res.Link("A", "B")
	require.True(s.T(), ok)
	require.InDelta(s.T(), 6.0, ab.Flux, eps)
	require.InDelta(s.T(), 10.0, ab.FluxByProc["P1"], eps)
	require.InDelta(s.T(), -4.0, ab.FluxByProc["P2"], eps)
}

// TestGroupDemandRedistributed checks flux-share splitting of group demand.
func (s *AggregateSuite) TestGroupDemandRedistributed() {
	doc := document(rec("F", "P", -30), rec("GA", "P", 10), rec("GB", "P", 20))
	doc.Demand = map[string]float64{"GA": 1}
	doc.ProductGroups = map[string][]string{"G": {"GA", "GB"}}
	doc.GroupDemand = map[string]float64{"G": 30}

	res, err := series.Aggregate([]series.Scenario{s.scenario("s", doc)}, series.DefaultOptions())
	require.NoError(s.T(), err)

	ga, _ := res.Node("GA")
	gb, _ := res.Node("GB")
	f, _ := res.Node("F")
	require.NotNil(s.T(), ga.Demand)
	require.InDelta(s.T(), 11.0, *ga.Demand, eps, "existing demand plus share")
	require.InDelta(s.T(), 20.0, *gb.Demand, eps)
	require.Nil(s.T(), f.Demand)
}

// TestGroupDemandExplicitMember checks that a group member remapped by an
// explicit grouping keeps its flux share under the remapped id.
func (s *AggregateSuite) TestGroupDemandExplicitMember() {
	doc := document(rec("F", "P", -30), rec("GA", "P", 10), rec("GB", "P", 20))
	doc.ProductGroups = map[string][]string{"G": {"GA", "GB"}}
	doc.GroupDemand = map[string]float64{"G": 30}

	sc := s.scenario("s", doc, casedata.WithCondensation(map[string][]string{"X": {"GA"}}))
	res, err := series.Aggregate([]series.Scenario{sc}, series.DefaultOptions())
	require.NoError(s.T(), err)

	x, ok := res.Node("X")
	require.True(s.T(), ok)
	require.InDelta(s.T(), 10.0, x.Flux, eps)
	require.NotNil(s.T(), x.Demand)
	require.InDelta(s.T(), 10.0, *x.Demand, eps)

	gb, _ := res.Node("GB")
	require.NotNil(s.T(), gb.Demand)
	require.InDelta(s.T(), 20.0, *gb.Demand, eps)

	_, ok = res.Node("GA")
	require.False(s.T(), ok)
}

// TestGroupDemandCondensed checks that condensed groups get their demand
// added to the group id.
func (s *AggregateSuite) TestGroupDemandCondensed() {
	mk := func() *casedata.Document {
		doc := document(rec("F", "P", -30), rec("GA", "P", 10), rec("GB", "P", 20))
		doc.Demand = map[string]float64{"GA": 2}
		doc.Supply = map[string]float64{"F": 30}
		doc.UnconstrainedRaw = []string{"F"}
		doc.ProductGroups = map[string][]string{"G": {"GA", "GB"}}
		doc.GroupDemand = map[string]float64{"G": 30}
		return doc
	}
	opt := casedata.WithProductGroupCondensation()
	res, err := series.Aggregate([]series.Scenario{
		s.scenario("a", mk(), opt), s.scenario("b", mk(), opt),
	}, series.DefaultOptions())
	require.NoError(s.T(), err)

	g, ok := res.Node("G")
	require.True(s.T(), ok)
	require.InDelta(s.T(), 32.0, *g.Demand, eps)
	f, _ := res.Node("F")
	require.True(s.T(), f.UnconstrainedRaw)
	require.Equal(s.T(), 30.0, *f.Supply)

	_, err = series.Aggregate([]series.Scenario{
		s.scenario("a", mk(), opt), s.scenario("b", mk()),
	}, series.DefaultOptions())
	require.True(s.T(), errors.Is(err, series.ErrMixedCondensation))
}

// TestErrors checks input validation.
func (s *AggregateSuite) TestErrors() {
	_, err := series.Aggregate(nil, series.DefaultOptions())
	require.True(s.T(), errors.Is(err, series.ErrNoScenarios))

	_, err = series.Aggregate([]series.Scenario{s.scenario("a", chain()), s.scenario("a", chain())}, series.DefaultOptions())
	require.True(s.T(), errors.Is(err, series.ErrDuplicateLabel))

	_, err = series.Aggregate([]series.Scenario{{Case: s.newCase(chain())}}, series.DefaultOptions())
	require.True(s.T(), errors.Is(err, series.ErrEmptyLabel))

	doc := chain()
	doc.ProductGroups = map[string][]string{"G": {"C"}}
	doc.GroupDemand = map[string]float64{"G": 1}
	doc.Throughput["C"]["P2"] = 0
	_, err = series.Aggregate([]series.Scenario{s.scenario("a", doc)}, series.DefaultOptions())
	require.True(s.T(), errors.Is(err, series.ErrEmptyGroup))
}

func TestAggregateSuite(t *testing.T) {
	suite.Run(t, new(AggregateSuite))
}

func TestRedistribute(t *testing.T) {
	flux := network.NewQuantities()
	flux.Set("A", 10)
	flux.Set("B", 20)

	out, err := series.Redistribute([]network.ProductGroup{
		{ID: "G", Members: []string{"A", "B"}, Demand: 30},
		{ID: "IDLE", Members: []string{"Z"}, Demand: 0},
	}, flux)
	require.NoError(t, err)
	require.InDelta(t, 10.0, out.Value("A"), eps)
	require.InDelta(t, 20.0, out.Value("B"), eps)
	require.False(t, out.Has("Z"))

	_, err = series.Redistribute([]network.ProductGroup{{ID: "E", Members: []string{"Z"}, Demand: 5}}, flux)
	var ge *series.EmptyGroupError
	require.True(t, errors.As(err, &ge))
	require.Equal(t, "E", ge.Group)
	require.True(t, errors.Is(err, series.ErrEmptyGroup))
}
