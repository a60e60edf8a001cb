package cdawg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/cdawgindex/internal/conv"
)

// NodeCount returns the number of nodes reachable from bottom, i.e. the
// number of live states in the automaton (including the three special
// nodes: source, bottom, and sink).
func (c *Cdawg) NodeCount() int {
	count := 0
	c.walk(func(nodeID) { count++ })
	return count
}

// DebugString renders the automaton as a human-readable edge list, one line
// per transition, ordered by source node id then by edge label byte for
// determinism. It is meant for tests and manual inspection, not for
// machine parsing.
func (c *Cdawg) DebugString() string {
	var ids []nodeID
	c.walk(func(id nodeID) { ids = append(ids, id) })
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	for _, id := range ids {
		n := c.arena.get(id)
		labels := make([]byte, 0, len(n.to))
		for ch := range n.to {
			labels = append(labels, ch)
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

		name := c.nodeName(id)
		for _, ch := range labels {
			e := n.to[ch]
			fmt.Fprintf(&b, "%s --[%d:%d]--> %s\n", name, e.k, c.edgeUpperBound(e), c.nodeName(e.target))
		}
	}
	return b.String()
}

// nodeName labels the three special nodes by name and every other node by
// its arena id.
func (c *Cdawg) nodeName(id nodeID) string {
	switch id {
	case c.source:
		return "source"
	case c.bottom:
		return "bottom"
	case c.sink:
		return "sink"
	default:
		return fmt.Sprintf("n%d", id)
	}
}

// walk visits every node reachable from bottom exactly once, in a
// depth-first order, invoking visit for each.
func (c *Cdawg) walk(visit func(nodeID)) {
	visited := newVisitedSet(conv.IntToUint32(c.arena.count()))
	var dfs func(id nodeID)
	dfs = func(id nodeID) {
		if !visited.insert(uint32(id)) {
			return
		}
		visit(id)
		n := c.arena.get(id)
		for _, e := range n.to {
			dfs(e.target)
		}
	}
	dfs(c.bottom)
}
