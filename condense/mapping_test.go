package condense_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yosukefk/chemnetrowk-vis/condense"
	"github.com/yosukefk/chemnetrowk-vis/network"
)

func TestNew_ResolveAndMembers(t *testing.T) {
	m, err := condense.New(map[string][]string{
		"XYLENES": {"PX", "OX", "MX"},
		"C4":      {"BUTANE", "ISOBUTANE"},
	})
	require.NoError(t, err)

	assert.Equal(t, "XYLENES", m.Resolve("OX"))
	assert.Equal(t, "C4", m.Resolve("BUTANE"))
	assert.Equal(t, "BENZENE", m.Resolve("BENZENE"))
	assert.True(t, m.Mapped("PX"))
	assert.False(t, m.Mapped("XYLENES"))
	assert.Equal(t, []string{"C4", "XYLENES"}, m.Groups())
	assert.Equal(t, []string{"PX", "OX", "MX"}, m.Members("XYLENES"))
	assert.Equal(t, 5, m.Len())
}

func TestNew_Errors(t *testing.T) {
	_, err := condense.New(map[string][]string{"G": {"A", ""}})
	assert.True(t, errors.Is(err, condense.ErrEmptyID))

	_, err = condense.New(map[string][]string{"": {"A"}})
	assert.True(t, errors.Is(err, condense.ErrEmptyID))

	_, err = condense.New(map[string][]string{"G1": {"A"}, "G2": {"A"}})
	assert.True(t, errors.Is(err, condense.ErrConflict))

	// repeating a member inside its own group is harmless
	m, err := condense.New(map[string][]string{"G": {"A", "A"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, m.Members("G"))
}

func TestMerge_ExplicitWins(t *testing.T) {
	m, err := condense.Merge(
		map[string][]string{"XYL": {"PX", "OX"}},
		map[string][]string{
			"XYL":  {"MX"},       // same group id: ignored
			"AROM": {"PX", "BZ"}, // PX already claimed explicitly
		},
	)
	require.NoError(t, err)

	assert.Equal(t, "XYL", m.Resolve("PX"))
	assert.Equal(t, "MX", m.Resolve("MX"))
	assert.Equal(t, "AROM", m.Resolve("BZ"))
	assert.Equal(t, []string{"BZ"}, m.Members("AROM"))
}

func TestNilMappingIsIdentity(t *testing.T) {
	var m *condense.Mapping
	assert.Equal(t, "A", m.Resolve("A"))
	assert.False(t, m.Mapped("A"))
	assert.Nil(t, m.Groups())
	assert.Equal(t, 0, m.Len())

	tp := network.Throughput{{Material: "A", Process: "P", Value: -1}}
	assert.Equal(t, tp, m.Throughput(tp))
}

func TestApply_Throughput(t *testing.T) {
	m, err := condense.New(map[string][]string{"G": {"A", "B"}})
	require.NoError(t, err)

	tp := network.Throughput{
		{Material: "A", Process: "P1", Value: -3},
		{Material: "C", Process: "P1", Value: 5},
		{Material: "B", Process: "P1", Value: -2},
		{Material: "A", Process: "P2", Value: -4},
		{Material: "B", Process: "P2", Value: 4}, // nets to zero
		{Material: "C", Process: "P2", Value: 1},
	}
	got := m.Throughput(tp)

	assert.Equal(t, network.Throughput{
		{Material: "G", Process: "P1", Value: -5},
		{Material: "C", Process: "P1", Value: 5},
		{Material: "C", Process: "P2", Value: 1},
	}, got)
	// input untouched
	assert.Equal(t, "A", tp[0].Material)
}

func TestApply_QuantitiesAndIDs(t *testing.T) {
	m, err := condense.New(map[string][]string{"G": {"A", "B"}})
	require.NoError(t, err)

	q := network.NewQuantities()
	q.Set("A", 1)
	q.Set("C", 2)
	q.Set("B", 3)
	out := m.Quantities(q)
	assert.Equal(t, []string{"G", "C"}, out.Keys())
	assert.Equal(t, 4.0, out.Value("G"))

	assert.Equal(t, []string{"G", "C"}, m.IDs([]string{"A", "C", "B", "G"}))
}
