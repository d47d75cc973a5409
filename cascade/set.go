package cascade

// idSet is an insertion-ordered set of IDs.
type idSet struct {
	ids   []any
	index map[any]struct{}
}

func (s *idSet) add(id any) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[any]struct{})
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

func (s *idSet) has(id any) bool {
	_, ok := s.index[id]
	return ok
}

// list returns a copy of the IDs in insertion order.
func (s *idSet) list() []any {
	return append([]any(nil), s.ids...)
}

// typeSet maps entity types to ID sets, keeping the order in which types
// were first seen.
type typeSet struct {
	order []Type
	sets  map[Type]*idSet
}

func newTypeSet() *typeSet {
	return &typeSet{sets: make(map[Type]*idSet)}
}

func (m *typeSet) add(t Type, id any) bool {
	s, ok := m.sets[t]
	if !ok {
		s = &idSet{}
		m.sets[t] = s
		m.order = append(m.order, t)
	}
	return s.add(id)
}

func (m *typeSet) has(t Type, id any) bool {
	s, ok := m.sets[t]
	return ok && s.has(id)
}

func (m *typeSet) ids(t Type) []any {
	if s, ok := m.sets[t]; ok {
		return s.list()
	}
	return nil
}

func (m *typeSet) types() []Type {
	return append([]Type(nil), m.order...)
}

func (m *typeSet) empty() bool {
	return len(m.order) == 0
}
