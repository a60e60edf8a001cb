package cdawg

import (
	"math"

	"github.com/coregx/cdawgindex/internal/conv"
)

// nodeID indexes a node in the arena that owns the entire CDAWG node graph.
// Using a compact index rather than a pointer breaks the otherwise-cyclic
// ownership graph among source, bottom, and sink, and makes the graph's
// destruction (and, short of that, its debug traversal) a simple linear
// pass keyed by a monotonically increasing counter.
type nodeID uint32

// noNode marks the absence of a node reference, used for bottom's
// undefined suffix link.
const noNode nodeID = math.MaxUint32

// openEnd marks an edge whose upper text-position bound has not been fixed
// yet: during construction it means "current cursor - 1"; freeze resolves
// every remaining openEnd to textLength - 1.
const openEnd = -1

// edge names a labelled transition out of a node: the edge's label is
// text[k:p+1] (or text[k:] while open), and it leads to target.
type edge struct {
	k, p   int
	target nodeID
}

// isOpen reports whether the edge's upper bound is still unresolved.
func (e edge) isOpen() bool {
	return e.p == openEnd
}

// node is one state of the CDAWG.
//
//   - id is a debug label only; it carries no algorithmic meaning.
//   - len is the length of the longest path from source to this node, in
//     original characters. The source has len 0; bottom has the sentinel
//     len -1.
//   - suf is the suffix link: a back reference to the node representing the
//     string that results from stripping this node's leftmost character.
//   - to maps the first byte of an outgoing edge's label to that edge;
//     canonicity guarantees at most one outgoing edge per first byte.
type node struct {
	id  uint32
	len int
	suf nodeID
	to  map[byte]edge
}

// arena owns every node created during construction, addressed by a
// monotonically increasing nodeID. Nodes are never freed individually; the
// whole arena is released at once when the Cdawg is dropped.
type arena struct {
	nodes []node
}

// newArena creates an arena pre-sized for capacity nodes.
func newArena(capacity int) *arena {
	return &arena{nodes: make([]node, 0, capacity)}
}

// add creates a new node with the given len and returns its id.
func (a *arena) add(length int) nodeID {
	id := nodeID(conv.IntToUint32(len(a.nodes)))
	a.nodes = append(a.nodes, node{
		id:  uint32(id),
		len: length,
		suf: noNode,
		to:  make(map[byte]edge),
	})
	return id
}

// addFrom creates a new node that duplicates src's outgoing edges (used by
// separate_node's non-solid case, which must clone a node's edge set
// without aliasing the original's map).
func (a *arena) addFrom(src nodeID, length int) nodeID {
	id := nodeID(conv.IntToUint32(len(a.nodes)))
	srcNode := &a.nodes[src]
	to := make(map[byte]edge, len(srcNode.to))
	for c, e := range srcNode.to {
		to[c] = e
	}
	a.nodes = append(a.nodes, node{
		id:  uint32(id),
		len: length,
		suf: srcNode.suf,
		to:  to,
	})
	return id
}

func (a *arena) get(id nodeID) *node {
	return &a.nodes[id]
}

// setEdge overwrites (or adds) the to[c] edge of node s.
func (a *arena) setEdge(s nodeID, c byte, e edge) {
	a.nodes[s].to[c] = e
}

// count returns the number of nodes currently in the arena.
func (a *arena) count() int {
	return len(a.nodes)
}
