package cascade

// edge says rows of From were reached from rows of To through an inverse
// relation, so From must be deleted before To.
type edge struct {
	from, to Type
}

// tracker records ordering edges between types in discovery order.
type tracker struct {
	kinds map[edge]DeleteKind
	order []edge
}

func newTracker() *tracker {
	return &tracker{kinds: make(map[edge]DeleteKind)}
}

// record sets the kind of the edge from -> to. A pair recorded again
// keeps its discovery position and takes the latest kind.
func (t *tracker) record(from, to Type, kind DeleteKind) {
	e := edge{from: from, to: to}
	if _, ok := t.kinds[e]; !ok {
		t.order = append(t.order, e)
	}
	t.kinds[e] = kind
}

func (t *tracker) kind(from, to Type) (DeleteKind, bool) {
	k, ok := t.kinds[edge{from: from, to: to}]
	return k, ok
}

// Edge is a recorded ordering constraint between two types.
type Edge struct {
	From Type
	To   Type
	Kind DeleteKind
}

func (t *tracker) edges() []Edge {
	out := make([]Edge, 0, len(t.order))
	for _, e := range t.order {
		out = append(out, Edge{From: e.from, To: e.to, Kind: t.kinds[e]})
	}
	return out
}
