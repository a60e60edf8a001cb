package cdawg

// Config controls Cdawg construction behavior.
//
// Example:
//
//	config := cdawg.DefaultConfig()
//	config.FreezeOpenEdges = false // leave edges open, e.g. for inspection
//	idx := cdawg.BuildWithConfig(g, config)
type Config struct {
	// InitialNodeCapacity sizes the node arena's backing slice up front.
	// A text of length n produces at most 2n+1 nodes, counting source,
	// bottom and sink, so the default covers texts of a few dozen
	// characters; for longer texts the arena grows as construction runs.
	// Default: 64.
	InitialNodeCapacity int

	// FreezeOpenEdges resolves every remaining open edge's upper bound to
	// TextLength-1 once construction finishes, per the design notes: a
	// single linear pass performed once, before any search call, rather
	// than resolving "open" lazily on every traversal.
	// Default: true.
	FreezeOpenEdges bool
}

// DefaultConfig returns a configuration with sensible defaults for
// small-to-medium texts.
func DefaultConfig() Config {
	return Config{
		InitialNodeCapacity: 64,
		FreezeOpenEdges:     true,
	}
}
