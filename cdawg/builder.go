package cdawg

import (
	"github.com/coregx/cdawgindex/grammar"
)

// Cdawg is a Compact Directed Acyclic Word Graph recognising exactly the
// substrings of a text that is itself stored only as a straight-line
// grammar. It implements the Inenaga-Hoshino-Shinohara-Takeda-Takeda-Arikawa
// online construction: the node graph is built by streaming the grammar's
// decoded characters one at a time through update, maintaining the active
// point invariant and suffix links as it goes.
//
// A Cdawg is mutable only while Build/BuildWithConfig run; once they return
// it is immutable and safe for concurrent read-only use by any number of
// Contains callers.
type Cdawg struct {
	g      *grammar.Grammar
	arena  *arena
	source nodeID
	bottom nodeID
	sink   nodeID
}

// Build constructs a Cdawg over the text named by g, using DefaultConfig.
func Build(g *grammar.Grammar) *Cdawg {
	return BuildWithConfig(g, DefaultConfig())
}

// BuildWithConfig constructs a Cdawg over the text named by g with explicit
// construction options.
func BuildWithConfig(g *grammar.Grammar, config Config) *Cdawg {
	c := &Cdawg{g: g, arena: newArena(config.InitialNodeCapacity)}

	c.bottom = c.arena.add(-1)
	c.source = c.arena.add(0)
	c.sink = c.arena.add(0)
	c.arena.get(c.source).suf = c.bottom

	if g.TextLength() > 0 {
		c.buildIndex()
	}
	if config.FreezeOpenEdges {
		c.freeze()
	}
	return c
}

// buildIndex streams every character of the text out of the grammar and
// folds it into the automaton via update, following the main loop in the
// specification: one bottom edge is installed per distinct first-seen
// terminal, so the base case of check_end_point/extension never has to
// special-case an empty "to" map on bottom.
func (c *Cdawg) buildIndex() {
	it, err := c.g.IterFrom(0)
	if err != nil {
		// g.TextLength() > 0 guarantees position 0 is in range.
		panic(err)
	}

	s, k := c.source, 0
	i := 0
	for it.Next() {
		ch := it.Char()
		if _, ok := c.arena.get(c.bottom).to[ch]; !ok {
			c.arena.setEdge(c.bottom, ch, edge{k: i, p: i, target: c.source})
		}
		s, k = c.update(s, k, i, ch)
		i++
	}
}

// update is the main online-construction step: it folds character ch,
// read at text position i, into the automaton given the active point
// (s, k), and returns the new active point.
//
// Throughout a single call (s, (k, i-1)) is the canonical reference pair
// naming the active point before ch is absorbed.
func (c *Cdawg) update(s nodeID, k, i int, ch byte) (nodeID, int) {
	p := i - 1

	oldr := noNode
	s1 := noNode
	r := noNode

	for !c.checkEndPoint(s, k, p, ch) {
		if k <= p {
			// Implicit case: the active point sits inside an edge.
			ext := c.extension(s, k, p)
			if s1 != noNode && ext == s1 {
				c.redirectEdge(s, k, p, r)
				s, k = c.canonize(c.arena.get(s).suf, k, p)
				continue
			}
			s1 = ext
			r = c.splitEdge(s, k, p)
		} else {
			// Explicit case: the active point is a node.
			r = s
		}

		c.arena.setEdge(r, ch, edge{k: i, p: openEnd, target: c.sink})
		if oldr != noNode {
			c.arena.get(oldr).suf = r
		}
		oldr = r
		s, k = c.canonize(c.arena.get(s).suf, k, p)
	}
	if oldr != noNode {
		c.arena.get(oldr).suf = s
	}
	return c.separateNode(s, k, i)
}

// checkEndPoint reports whether the reference pair (s, (k, p)) can be
// extended by ch without creating a new edge or splitting an existing one.
func (c *Cdawg) checkEndPoint(s nodeID, k, p int, ch byte) bool {
	if k <= p {
		firstByte := c.charAt(k)
		e := c.arena.get(s).to[firstByte]
		return ch == c.charAt(e.k+p-k+1)
	}
	_, ok := c.arena.get(s).to[ch]
	return ok
}

// extension returns the node that (s, (k, p)) names: s itself if the pair
// is explicit (k > p), otherwise the target of the text[k]-edge from s.
func (c *Cdawg) extension(s nodeID, k, p int) nodeID {
	if k > p {
		return s
	}
	return c.arena.get(s).to[c.charAt(k)].target
}

// redirectEdge overwrites the text[k]-edge from s so that it ends at p and
// leads to r, shortening (or otherwise altering the target of) the edge
// without touching its start.
func (c *Cdawg) redirectEdge(s nodeID, k, p int, r nodeID) {
	firstByte := c.charAt(k)
	e := c.arena.get(s).to[firstByte]
	c.arena.setEdge(s, firstByte, edge{k: e.k, p: e.k + p - k, target: r})
}

// splitEdge splits the text[k]-edge from s at (k, p), inserting a fresh
// node r between s and the edge's former target.
func (c *Cdawg) splitEdge(s nodeID, k, p int) nodeID {
	firstByte := c.charAt(k)
	e := c.arena.get(s).to[firstByte]

	r := c.arena.add(c.arena.get(s).len + (p - k + 1))
	c.arena.setEdge(s, firstByte, edge{k: e.k, p: e.k + p - k, target: r})

	tailStart := e.k + p - k + 1
	c.arena.setEdge(r, c.charAt(tailStart), edge{k: tailStart, p: e.p, target: e.target})
	return r
}

// separateNode resolves (s, (k, p)) to its canonical node, splitting off a
// fresh "non-solid" copy when the canonical target's len overshoots what
// this particular suffix requires, per the specification's solid/non-solid
// case analysis.
func (c *Cdawg) separateNode(s nodeID, k, p int) (nodeID, int) {
	s1, k1 := c.canonize(s, k, p)
	if k1 <= p {
		return s1, k1
	}

	// Explicit case.
	if c.arena.get(s1).len == c.arena.get(s).len+p-k+1 {
		// Solid case: s1 already represents exactly this suffix.
		return s1, k1
	}

	// Non-solid case: duplicate s1 as r1, splicing r1 in as the new
	// target for every suffix-link-chain position that canonizes to s1.
	r1 := c.arena.addFrom(s1, c.arena.get(s).len+p-k+1)
	c.arena.get(s1).suf = r1

	targetS, targetK := s1, k1
	for {
		c.arena.setEdge(s, c.charAt(k), edge{k: k, p: p, target: r1})
		s, k = c.canonize(c.arena.get(s).suf, k, p-1)
		cs, ck := c.canonize(s, k, p)
		if cs != targetS || ck != targetK {
			break
		}
	}
	return r1, p + 1
}

// canonize follows whole edges out of s until the reference pair (s, (k, p))
// can no longer be shortened: it terminates either with k > p (s alone
// names the position) or with a short edge remaining.
func (c *Cdawg) canonize(s nodeID, k, p int) (nodeID, int) {
	if k > p {
		return s, k
	}
	e := c.arena.get(s).to[c.charAt(k)]
	p1 := c.resolveP(e, p)
	for p1-e.k <= p-k {
		k = k + p1 - e.k + 1
		s = e.target
		if k <= p {
			e = c.arena.get(s).to[c.charAt(k)]
			p1 = c.resolveP(e, p)
		}
	}
	return s, k
}

// resolveP returns an edge's effective upper text-position bound: its own
// p if fixed, or the caller's own reference-pair bound if the edge is still
// open. That bound is i-1 in update's loop; separateNode passes i for its
// first canonize and i-1 for its suffix-chain steps. An open edge is thus
// taken to extend exactly through the position the caller is asking about.
func (c *Cdawg) resolveP(e edge, p int) int {
	if e.isOpen() {
		return p
	}
	return e.p
}

// charAt reads a single text byte via the grammar's point decoder. Every
// position queried during construction is already known to be valid
// (< TextLength()), so a decode failure here indicates a bug rather than
// bad input.
func (c *Cdawg) charAt(pos int) byte {
	b, err := c.g.CharAt(pos)
	if err != nil {
		panic(err)
	}
	return b
}

// edgeUpperBound returns an edge's upper text-position bound for read-only
// callers (Contains, DebugString) that run after construction has
// finished: an open edge always extends through the last character of the
// text, so this is equivalent to what freeze would have written, without
// requiring FreezeOpenEdges to have run.
func (c *Cdawg) edgeUpperBound(e edge) int {
	if e.isOpen() {
		return c.g.TextLength() - 1
	}
	return e.p
}

// freeze resolves every remaining open edge's upper bound to
// TextLength()-1 in a single traversal, per the design notes: done once,
// before any search call, rather than resolving "open" on every traversal
// afterwards.
func (c *Cdawg) freeze() {
	last := c.g.TextLength() - 1
	c.walk(func(id nodeID) {
		n := c.arena.get(id)
		for ch, e := range n.to {
			if e.isOpen() {
				n.to[ch] = edge{k: e.k, p: last, target: e.target}
			}
		}
	})
}
