package grammar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// mrRepairDummyCode is the MR-RePair rule terminator, written as the literal
// value -1 in the grammar file (UINT_MAX in the original MR-RePair C tool).
const mrRepairDummyCode = -1

// LoadMRRepair loads a grammar from an MR-RePair `.out` grammar file: line 1
// is text_length, line 2 is num_rules, line 3 is start_size, followed by
// num_rules rule bodies (one integer symbol code per line, each body
// terminated by a mrRepairDummyCode sentinel line), followed by startSize
// integers naming the start rule's symbols, one per line.
func LoadMRRepair(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newIOError("opening MR-RePair grammar file", err)
	}
	defer f.Close()

	sc := &lineScanner{s: bufio.NewScanner(f)}

	textLength, err := sc.nextInt()
	if err != nil {
		return nil, err
	}
	numRules, err := sc.nextInt()
	if err != nil {
		return nil, err
	}
	startSize, err := sc.nextInt()
	if err != nil {
		return nil, err
	}
	if numRules < 0 || startSize < 0 || textLength < 0 {
		return nil, newMalformedError("negative value in MR-RePair header")
	}

	startRuleID := firstNonTerminal + Symbol(numRules)

	rules := make([][]Symbol, numRules)
	sizes := make([]int, numRules)
	for i := 0; i < numRules; i++ {
		body, err := sc.nextRuleBody(firstNonTerminal + Symbol(i))
		if err != nil {
			return nil, err
		}
		rules[i] = body
		sizes[i] = expansionSizeOfBody(body, sizes)
	}

	startBody := make([]Symbol, startSize)
	for i := 0; i < startSize; i++ {
		c, err := sc.nextInt()
		if err != nil {
			return nil, err
		}
		sym, err := symbolFromCode(c, startRuleID)
		if err != nil {
			return nil, err
		}
		startBody[i] = sym
	}

	computed := expansionSizeOfBody(startBody, sizes)
	if computed != textLength {
		return nil, newMalformedError(fmt.Sprintf("start rule expands to %d characters, header declares text_length %d", computed, textLength))
	}

	g := &Grammar{
		textLength:  textLength,
		rules:       rules,
		expansion:   sizes,
		startBody:   startBody,
		startRuleID: startRuleID,
	}
	g.index = buildPositionIndex(startBody, sizes)
	return g, nil
}

// symbolFromCode validates and converts a raw integer symbol code read from
// a grammar file into a Symbol, rejecting codes that would reference a rule
// that cannot exist (negative, or at/beyond the start rule).
func symbolFromCode(code int, startRuleID Symbol) (Symbol, error) {
	if code < 0 {
		return 0, newMalformedError(fmt.Sprintf("negative symbol code %d", code))
	}
	sym := Symbol(code)
	if !sym.IsTerminal() && sym >= startRuleID {
		return 0, newMalformedError(fmt.Sprintf("symbol code %d references an undefined rule", code))
	}
	return sym, nil
}

// lineScanner reads one base-10 integer per line, the textual encoding used
// by MR-RePair grammar files. The Navarro loader reads its binary files
// directly and does not use it.
type lineScanner struct {
	s *bufio.Scanner
}

func (ls *lineScanner) nextInt() (int, error) {
	if !ls.s.Scan() {
		if err := ls.s.Err(); err != nil {
			return 0, newIOError("reading grammar file", err)
		}
		return 0, newIOError("reading grammar file", io.ErrUnexpectedEOF)
	}
	n, err := strconv.Atoi(ls.s.Text())
	if err != nil {
		return 0, newMalformedError(fmt.Sprintf("expected integer, got %q", ls.s.Text()))
	}
	return n, nil
}

// nextRuleBody reads symbol codes until the mrRepairDummyCode sentinel,
// converting and validating each one against ruleID (the id of the rule
// whose body is being read, used to reject forward references).
func (ls *lineScanner) nextRuleBody(ruleID Symbol) ([]Symbol, error) {
	var body []Symbol
	for {
		c, err := ls.nextInt()
		if err != nil {
			return nil, err
		}
		if c == mrRepairDummyCode {
			return body, nil
		}
		sym, err := symbolFromCode(c, ruleID)
		if err != nil {
			return nil, err
		}
		body = append(body, sym)
	}
}
