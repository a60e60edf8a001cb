// Package grammar provides random-access and streaming decoding of a string
// that exists only as a RePair-style straight-line context-free grammar.
//
// A grammar is a rule table in which every non-terminal expands
// deterministically to exactly one sequence of symbols, terminated by a
// distinguished start rule whose expansion is the original text. Because the
// text can be exponentially larger than the grammar, Grammar never expands
// the full text eagerly: Grammar.CharAt answers a single-character point
// query in time proportional to grammar depth, and Grammar.IterFrom produces
// a lazy forward stream of the decoded text starting at an arbitrary
// position.
//
// Grammar is immutable after it is loaded (see LoadMRRepair and
// LoadNavarro) and is safe for concurrent use by any number of readers, as
// long as each reader uses its own *Iterator.
package grammar

// Symbol is a single grammar symbol: a terminal byte value in [0, 256), or a
// non-terminal rule identifier >= 256.
type Symbol int32

// firstNonTerminal is the smallest symbol value that names a rule rather
// than a literal byte, matching the MR-RePair and Navarro conventions where
// terminal codes occupy the full byte range.
const firstNonTerminal Symbol = 256

// IsTerminal reports whether s names a literal byte rather than a rule.
func (s Symbol) IsTerminal() bool {
	return s < firstNonTerminal
}

// Byte returns the literal byte named by a terminal symbol. The result is
// unspecified if s is not a terminal.
func (s Symbol) Byte() byte {
	return byte(s)
}

// Grammar is an immutable in-memory straight-line grammar plus the
// start-rule position index needed to decode it without full expansion.
type Grammar struct {
	textLength int

	// rules holds the body of every ordinary rule, indexed by (id - 256).
	// A rule's body never contains the rule's own id or any id that would
	// make the grammar cyclic; reachability from startRuleID always
	// terminates.
	rules [][]Symbol

	// expansion holds the fully-expanded terminal-string length of every
	// ordinary rule, indexed the same way as rules. Computed once at load.
	expansion []int

	// startBody is the body of the distinguished start rule, whose
	// expansion is the entire text.
	startBody []Symbol

	// startRuleID is the synthetic id assigned to the start rule; it is
	// one greater than the highest ordinary rule id, following the
	// convention start_rule = 256 + num_rules.
	startRuleID Symbol

	index positionIndex
}

// TextLength returns the length of the text the grammar expands to.
func (g *Grammar) TextLength() int {
	return g.textLength
}

// NumRules returns the number of ordinary (non-start) rules in the grammar.
func (g *Grammar) NumRules() int {
	return len(g.rules)
}

// bodyOf returns the symbol sequence a rule id expands to in one step.
func (g *Grammar) bodyOf(id Symbol) []Symbol {
	if id == g.startRuleID {
		return g.startBody
	}
	return g.rules[int(id)-int(firstNonTerminal)]
}

// expansionSizeOf returns the length of the terminal string produced by
// fully expanding sym; 1 for terminals.
func (g *Grammar) expansionSizeOf(sym Symbol) int {
	if sym.IsTerminal() {
		return 1
	}
	return g.expansion[int(sym)-int(firstNonTerminal)]
}

// frame is one level of the explicit expansion stack used by both CharAt
// and Iterator: the rule being expanded, and the position to resume at once
// its current symbol's sub-expansion is exhausted.
type frame struct {
	id  Symbol
	pos int
}

// expansionSizeOfBody sums the expansion size of every symbol in body,
// using the already-computed rule sizes.
func expansionSizeOfBody(body []Symbol, ruleSizes []int) int {
	total := 0
	for _, sym := range body {
		if sym.IsTerminal() {
			total++
		} else {
			total += ruleSizes[int(sym)-int(firstNonTerminal)]
		}
	}
	return total
}
