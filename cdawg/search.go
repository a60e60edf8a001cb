package cdawg

// Contains reports whether pattern occurs as a substring of the indexed
// text. It walks the automaton from source, consuming pattern one byte at
// a time: each step either advances along the current edge's remaining
// label or, once that label is exhausted, selects the next edge by the
// following byte. The pattern matches iff every byte is consumed without
// the walk falling off the graph.
//
// Contains returns a non-nil *Error only for a zero-length pattern; every
// other input, including patterns never found in the text, is a plain
// (false, nil).
func (c *Cdawg) Contains(pattern []byte) (bool, error) {
	if len(pattern) == 0 {
		return false, errEmptyPattern
	}

	s := c.source
	i := 0
	for i < len(pattern) {
		e, ok := c.arena.get(s).to[pattern[i]]
		if !ok {
			return false, nil
		}

		labelLen := c.edgeUpperBound(e) - e.k + 1
		remaining := len(pattern) - i
		n := labelLen
		if remaining < n {
			n = remaining
		}

		for j := 0; j < n; j++ {
			if c.charAt(e.k+j) != pattern[i+j] {
				return false, nil
			}
		}

		i += n
		if n < labelLen {
			// The pattern ended partway along this edge.
			return true, nil
		}
		s = e.target
	}
	return true, nil
}
