package grammar

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func putInt32LE(buf []byte, v int32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	return append(buf, b[:]...)
}

// buildNavarroFixture writes a Navarro .C/.R pair for text "abcabc" using a
// single rule 256 = (a, b), mirroring the MR-RePair fixture.
func buildNavarroFixture(t *testing.T) (pathC, pathR string) {
	t.Helper()
	dir := t.TempDir()

	// Alphabet: index 0 -> 'a', index 1 -> 'b', index 2 -> 'c'.
	var r []byte
	r = putInt32LE(r, 3) // alphabet size
	r = append(r, 'a', 'b', 'c')
	// Rule 256: (alphabet[0]='a', alphabet[1]='b')
	r = putInt32LE(r, 0)
	r = putInt32LE(r, 1)

	pathR = filepath.Join(dir, "abcabc.R")
	if err := os.WriteFile(pathR, r, 0o644); err != nil {
		t.Fatalf("writing .R fixture: %v", err)
	}

	// Start rule: rule256, 'c', rule256, 'c'
	// Non-terminal code = id - 256 + alphabet_size = 0 + 3 = 3.
	var c []byte
	c = putInt32LE(c, 3) // rule 256
	c = putInt32LE(c, 2) // 'c'
	c = putInt32LE(c, 3) // rule 256
	c = putInt32LE(c, 2) // 'c'

	pathC = filepath.Join(dir, "abcabc.C")
	if err := os.WriteFile(pathC, c, 0o644); err != nil {
		t.Fatalf("writing .C fixture: %v", err)
	}
	return pathC, pathR
}

func TestLoadNavarroRoundTrip(t *testing.T) {
	pathC, pathR := buildNavarroFixture(t)
	g, err := LoadNavarro(pathC, pathR)
	if err != nil {
		t.Fatalf("LoadNavarro: %v", err)
	}
	want := "abcabc"
	if g.TextLength() != len(want) {
		t.Fatalf("TextLength() = %d, want %d", g.TextLength(), len(want))
	}
	it, err := g.IterFrom(0)
	if err != nil {
		t.Fatalf("IterFrom: %v", err)
	}
	if got := string(it.Collect()); got != want {
		t.Fatalf("decoded = %q, want %q", got, want)
	}
}

func TestLoadNavarroMissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadNavarro(filepath.Join(dir, "missing.C"), filepath.Join(dir, "missing.R"))
	if err == nil {
		t.Fatal("want error for missing .R file, got nil")
	}
	var ge *Error
	if !asGrammarError(err, &ge) || ge.Kind != IoError {
		t.Fatalf("want IoError, got %v", err)
	}
}
