package cascade

import "github.com/syssam/veloxdb"

// precedes decides the relative order of a and b from the edges recorded
// between them. It returns (true, false) when a goes first, (false, true)
// when b goes first and (false, false) when either order is safe.
func precedes(deps *tracker, a, b Type) (aFirst, bFirst bool, err error) {
	ab, hasAB := deps.kind(a, b)
	ba, hasBA := deps.kind(b, a)
	switch {
	case hasAB && hasBA:
		switch {
		case ab == Soft && ba == Soft:
			return false, false, nil
		case ab == Soft:
			return false, true, nil
		case ba == Soft:
			return true, false, nil
		}
		return false, false, veloxdb.NewCycleError(a.Name(), b.Name())
	case hasAB:
		return true, false, nil
	case hasBA:
		return false, true, nil
	}
	return false, false, nil
}

// order sorts types so that every type comes before the types its rows
// reference. Ties keep discovery order. Nothing is executed here, so a
// cycle error leaves the database untouched.
func order(types []Type, deps *tracker) ([]Type, error) {
	n := len(types)
	after := make([][]int, n)
	indegree := make([]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			iFirst, jFirst, err := precedes(deps, types[i], types[j])
			if err != nil {
				return nil, err
			}
			switch {
			case iFirst:
				after[i] = append(after[i], j)
				indegree[j]++
			case jFirst:
				after[j] = append(after[j], i)
				indegree[i]++
			}
		}
	}
	var (
		sorted = make([]Type, 0, n)
		done   = make([]bool, n)
	)
	for len(sorted) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			var names []string
			for i := 0; i < n; i++ {
				if !done[i] {
					names = append(names, types[i].Name())
				}
			}
			return nil, veloxdb.NewCycleError(names...)
		}
		done[next] = true
		sorted = append(sorted, types[next])
		for _, j := range after[next] {
			indegree[j]--
		}
	}
	return sorted, nil
}
