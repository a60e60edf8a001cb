package grammar

import "sort"

// positionIndex is the ordered mapping from a text position that lands on a
// boundary between two start-rule symbols to the offset of that symbol
// within the start rule. It supports the floor query "the largest key <= q"
// that CharAt and IterFrom need to locate their starting symbol.
//
// keys[0] is always 0, keys is strictly increasing, and
// keys[len(keys)-1] + (expansion size of startBody[offsets[len(keys)-1]])
// equals the text length.
type positionIndex struct {
	keys    []int
	offsets []int
}

// buildPositionIndex derives the position index from the start rule's body
// and the already-computed per-rule expansion sizes.
func buildPositionIndex(startBody []Symbol, ruleSizes []int) positionIndex {
	keys := make([]int, len(startBody))
	offsets := make([]int, len(startBody))
	pos := 0
	for i, sym := range startBody {
		keys[i] = pos
		offsets[i] = i
		if sym.IsTerminal() {
			pos++
		} else {
			pos += ruleSizes[int(sym)-int(firstNonTerminal)]
		}
	}
	return positionIndex{keys: keys, offsets: offsets}
}

// floor returns (pos, offset) for the largest indexed key <= q. q must
// already be known to be in [0, textLength).
func (idx positionIndex) floor(q int) (pos int, offset int) {
	// sort.Search finds the first key strictly greater than q; the entry
	// just before it is the floor.
	i := sort.Search(len(idx.keys), func(i int) bool {
		return idx.keys[i] > q
	})
	i--
	return idx.keys[i], idx.offsets[i]
}
