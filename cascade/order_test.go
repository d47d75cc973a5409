package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxdb"
)

func names(types []Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Name()
	}
	return out
}

func TestOrder(t *testing.T) {
	a := &testType{name: "A"}
	b := &testType{name: "B"}
	c := &testType{name: "C"}
	d := &testType{name: "D"}

	tests := []struct {
		name  string
		types []Type
		edges []Edge
		want  []string
	}{
		{
			name:  "no edges keeps discovery order",
			types: []Type{a, b, c},
			want:  []string{"A", "B", "C"},
		},
		{
			name:  "child before parent",
			types: []Type{a, b},
			edges: []Edge{{From: b, To: a, Kind: Regular}},
			want:  []string{"B", "A"},
		},
		{
			name:  "chain is fully ordered",
			types: []Type{a, b, c},
			edges: []Edge{{From: b, To: a, Kind: Regular}, {From: c, To: b, Kind: Regular}},
			want:  []string{"C", "B", "A"},
		},
		{
			name:  "unrelated types keep their place",
			types: []Type{a, d, b},
			edges: []Edge{{From: b, To: a, Kind: Regular}},
			want:  []string{"D", "B", "A"},
		},
		{
			name:  "mutual soft edges are unordered",
			types: []Type{a, b},
			edges: []Edge{{From: a, To: b, Kind: Soft}, {From: b, To: a, Kind: Soft}},
			want:  []string{"A", "B"},
		},
		{
			name:  "regular side goes first when a to b is soft",
			types: []Type{a, b},
			edges: []Edge{{From: a, To: b, Kind: Soft}, {From: b, To: a, Kind: Regular}},
			want:  []string{"B", "A"},
		},
		{
			name:  "regular side goes first when b to a is soft",
			types: []Type{a, b},
			edges: []Edge{{From: a, To: b, Kind: Regular}, {From: b, To: a, Kind: Soft}},
			want:  []string{"A", "B"},
		},
		{
			name:  "single soft edge still orders",
			types: []Type{a, b},
			edges: []Edge{{From: b, To: a, Kind: Soft}},
			want:  []string{"B", "A"},
		},
		{
			name:  "self edge is ignored",
			types: []Type{a, b},
			edges: []Edge{{From: a, To: a, Kind: Regular}},
			want:  []string{"A", "B"},
		},
		{
			name:  "edges to types outside the set are ignored",
			types: []Type{a, b},
			edges: []Edge{{From: a, To: c, Kind: Regular}, {From: c, To: b, Kind: Regular}},
			want:  []string{"A", "B"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTracker()
			for _, e := range tt.edges {
				deps.record(e.From, e.To, e.Kind)
			}
			got, err := order(tt.types, deps)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))

			again, err := order(tt.types, deps)
			require.NoError(t, err)
			assert.Equal(t, got, again, "ordering is deterministic")
		})
	}
}

func TestOrderCycle(t *testing.T) {
	a := &testType{name: "A"}
	b := &testType{name: "B"}
	c := &testType{name: "C"}

	t.Run("mutual regular", func(t *testing.T) {
		deps := newTracker()
		deps.record(a, b, Regular)
		deps.record(b, a, Regular)
		_, err := order([]Type{a, b}, deps)
		require.Error(t, err)
		assert.True(t, veloxdb.IsCycleError(err))
		assert.ErrorIs(t, err, veloxdb.ErrCycle)
		assert.Contains(t, err.Error(), "A")
		assert.Contains(t, err.Error(), "B")
	})

	t.Run("three types", func(t *testing.T) {
		deps := newTracker()
		deps.record(a, b, Regular)
		deps.record(b, c, Regular)
		deps.record(c, a, Regular)
		_, err := order([]Type{a, b, c}, deps)
		var cerr *veloxdb.CycleError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, []string{"A", "B", "C"}, cerr.Types)
	})
}

func TestTrackerLatestKindWins(t *testing.T) {
	a := &testType{name: "A"}
	b := &testType{name: "B"}
	c := &testType{name: "C"}
	deps := newTracker()
	deps.record(a, b, Soft)
	deps.record(c, b, Regular)
	deps.record(a, b, Regular)
	deps.record(a, b, Soft)
	k, ok := deps.kind(a, b)
	require.True(t, ok)
	assert.Equal(t, Soft, k)
	assert.Equal(t, []Edge{
		{From: a, To: b, Kind: Soft},
		{From: c, To: b, Kind: Regular},
	}, deps.edges())
	_, ok = deps.kind(b, a)
	assert.False(t, ok)
}
