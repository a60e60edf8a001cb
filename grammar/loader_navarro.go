package grammar

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/coregx/cdawgindex/internal/conv"
)

// LoadNavarro loads a grammar from a Navarro-format `.C`/`.R` file pair.
//
// The `.R` file holds a 4-byte little-endian alphabet_size, followed by
// alphabet_size bytes mapping compact terminal indices to real byte values,
// followed by one rule per pair of 4-byte little-endian ints: every RePair
// rule replaces exactly one symbol pair, so each rule body always has
// exactly two symbols. A symbol value < alphabet_size names a terminal
// through the alphabet map; otherwise it names non-terminal
// value - alphabet_size + 256.
//
// The `.C` file holds the start rule as a flat sequence of 4-byte
// little-endian ints, decoded identically. text_length is not stored on
// disk; it is derived by summing the expansion sizes of the start rule's
// symbols.
//
// This follows the integer-decoding reading of the Navarro format; the
// original tool's alternative byte-by-byte transcription path is not
// reproduced (DESIGN.md's "Open Question: Navarro rule arity" records why).
func LoadNavarro(pathC, pathR string) (*Grammar, error) {
	rf, err := os.Open(pathR)
	if err != nil {
		return nil, newIOError("opening Navarro .R file", err)
	}
	defer rf.Close()

	alphabet, err := readNavarroAlphabet(rf)
	if err != nil {
		return nil, err
	}

	var rules [][]Symbol
	var sizes []int
	for {
		first, ok, err := readInt32LE(rf)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		second, ok, err := readInt32LE(rf)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newMalformedError("Navarro .R file ends mid-rule")
		}

		ruleID := firstNonTerminal + Symbol(len(rules))
		sym1, err := navarroSymbol(first, alphabet, ruleID)
		if err != nil {
			return nil, err
		}
		sym2, err := navarroSymbol(second, alphabet, ruleID)
		if err != nil {
			return nil, err
		}
		body := []Symbol{sym1, sym2}
		rules = append(rules, body)
		sizes = append(sizes, expansionSizeOfBody(body, sizes))
	}

	cf, err := os.Open(pathC)
	if err != nil {
		return nil, newIOError("opening Navarro .C file", err)
	}
	defer cf.Close()

	startRuleID := firstNonTerminal + Symbol(len(rules))
	var startBody []Symbol
	for {
		v, ok, err := readInt32LE(cf)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		sym, err := navarroSymbol(v, alphabet, startRuleID)
		if err != nil {
			return nil, err
		}
		startBody = append(startBody, sym)
	}
	if len(startBody) == 0 {
		return nil, newMalformedError("Navarro .C file is empty")
	}

	textLength := expansionSizeOfBody(startBody, sizes)
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

// readNavarroAlphabet reads the 4-byte little-endian alphabet size followed
// by that many raw terminal bytes from the head of a .R file.
func readNavarroAlphabet(r io.Reader) ([]byte, error) {
	size, ok, err := readInt32LE(r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newMalformedError("Navarro .R file is empty")
	}
	if size < 0 {
		return nil, newMalformedError(fmt.Sprintf("negative alphabet size %d", size))
	}
	alphabet := make([]byte, size)
	if _, err := io.ReadFull(r, alphabet); err != nil {
		return nil, newIOError("reading Navarro alphabet table", err)
	}
	return alphabet, nil
}

// readInt32LE reads one 4-byte little-endian signed int. ok is false (with
// a nil error) only when the stream is exhausted exactly at a record
// boundary; any other short read is reported as an IoError.
func readInt32LE(r io.Reader) (value int32, ok bool, err error) {
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	if err == io.EOF && n == 0 {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, newIOError("reading Navarro grammar file", err)
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), true, nil
}

// navarroSymbol converts a raw Navarro symbol code into a Symbol, rejecting
// codes that would reference a rule at or beyond startRuleID.
func navarroSymbol(code int32, alphabet []byte, startRuleID Symbol) (Symbol, error) {
	if code < 0 {
		return 0, newMalformedError(fmt.Sprintf("negative symbol code %d", code))
	}
	ic := conv.Int32ToInt(code)
	if ic < len(alphabet) {
		return Symbol(alphabet[ic]), nil
	}
	id := Symbol(ic-len(alphabet)) + firstNonTerminal
	if id >= startRuleID {
		return 0, newMalformedError(fmt.Sprintf("symbol code %d references an undefined rule", code))
	}
	return id, nil
}
