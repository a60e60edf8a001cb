package cdawg

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/coregx/cdawgindex/grammar"
)

// writeMRRepairFlat writes an MR-RePair grammar file with a single rule per
// flat text (no non-terminal reuse), which is all these tests need: a
// start rule listing the text's own bytes as terminal codes.
func writeMRRepairFlat(t *testing.T, text string) *grammar.Grammar {
	t.Helper()
	return writeMRRepairFlatTB(t, text)
}

// writeMRRepairFlatBench is writeMRRepairFlat for benchmark callers, which
// receive a *testing.B instead of a *testing.T.
func writeMRRepairFlatBench(b *testing.B, text string) *grammar.Grammar {
	b.Helper()
	return writeMRRepairFlatTB(b, text)
}

func writeMRRepairFlatTB(tb testing.TB, text string) *grammar.Grammar {
	tb.Helper()
	lines := []string{
		strconv.Itoa(len(text)), // text_length
		"0",                     // num_rules
		strconv.Itoa(len(text)), // start_size
	}
	for i := 0; i < len(text); i++ {
		lines = append(lines, strconv.Itoa(int(text[i])))
	}
	path := filepath.Join(tb.TempDir(), "fixture.out")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		tb.Fatalf("writing fixture: %v", err)
	}
	g, err := grammar.LoadMRRepair(path)
	if err != nil {
		tb.Fatalf("LoadMRRepair: %v", err)
	}
	return g
}

func TestContainsScenarios(t *testing.T) {
	cases := []struct {
		text, pattern string
		want          bool
	}{
		{"abcabc", "abc", true},
		{"abcabc", "cab", true},
		{"abcabc", "cba", false},
		{"aaaaa", "aaa", true},
		{"aaaaa", "aab", false},
		{"mississippi", "issi", true},
		{"mississippi", "ssippi", true},
		{"mississippi", "ssa", false},
	}
	for _, c := range cases {
		g := writeMRRepairFlat(t, c.text)
		idx := Build(g)
		got, err := idx.Contains([]byte(c.pattern))
		if err != nil {
			t.Fatalf("Contains(%q in %q): unexpected error %v", c.pattern, c.text, err)
		}
		if got != c.want {
			t.Errorf("Contains(%q in %q) = %v, want %v", c.pattern, c.text, got, c.want)
		}
	}
}

func TestContainsEveryTrueSubstring(t *testing.T) {
	text := "mississippi"
	g := writeMRRepairFlat(t, text)
	idx := Build(g)
	for i := 0; i < len(text); i++ {
		for j := i + 1; j <= len(text); j++ {
			sub := text[i:j]
			got, err := idx.Contains([]byte(sub))
			if err != nil {
				t.Fatalf("Contains(%q): %v", sub, err)
			}
			if !got {
				t.Errorf("Contains(%q) = false, want true (substring of %q)", sub, text)
			}
		}
	}
}

func TestContainsRejectsNonSubstrings(t *testing.T) {
	text := "banana"
	g := writeMRRepairFlat(t, text)
	idx := Build(g)
	for _, pattern := range []string{"x", "ab", "nn", "bananax", "anaan"} {
		got, err := idx.Contains([]byte(pattern))
		if err != nil {
			t.Fatalf("Contains(%q): %v", pattern, err)
		}
		if got {
			t.Errorf("Contains(%q) = true, want false (not a substring of %q)", pattern, text)
		}
	}
}

func TestContainsEmptyPattern(t *testing.T) {
	g := writeMRRepairFlat(t, "abc")
	idx := Build(g)
	_, err := idx.Contains(nil)
	if err == nil {
		t.Fatal("Contains(nil): want error, got nil")
	}
	e, ok := err.(*Error)
	if !ok || e.Kind != EmptyPattern {
		t.Fatalf("Contains(nil): want EmptyPattern error, got %v", err)
	}
}

func TestBuildWithoutFreezeStillSearches(t *testing.T) {
	g := writeMRRepairFlat(t, "abcabc")
	config := DefaultConfig()
	config.FreezeOpenEdges = false
	idx := BuildWithConfig(g, config)

	got, err := idx.Contains([]byte("cabc"))
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !got {
		t.Error("Contains(\"cabc\") = false, want true even with open edges unresolved")
	}
}

func TestNodeCountIsBoundedBySuffixAutomatonSize(t *testing.T) {
	text := "mississippi"
	g := writeMRRepairFlat(t, text)
	idx := Build(g)

	n := idx.NodeCount()
	// Every node-count bound in the literature is stated for an n >= 2 text;
	// the three special nodes are always present regardless.
	if n < 3 {
		t.Fatalf("NodeCount() = %d, want at least 3 (source, bottom, sink)", n)
	}
	if n > 2*len(text)+1 {
		t.Errorf("NodeCount() = %d, want <= 2n+1 = %d", n, 2*len(text)+1)
	}
}

func TestDebugStringIsDeterministic(t *testing.T) {
	g := writeMRRepairFlat(t, "abcabc")
	idx := Build(g)
	a := idx.DebugString()
	b := idx.DebugString()
	if a != b {
		t.Fatalf("DebugString() is not deterministic across calls:\n%s\n---\n%s", a, b)
	}
	if !strings.Contains(a, "source") {
		t.Errorf("DebugString() output missing source node: %s", a)
	}
}

func TestSingleCharacterText(t *testing.T) {
	g := writeMRRepairFlat(t, "a")
	idx := Build(g)
	got, err := idx.Contains([]byte("a"))
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !got {
		t.Error("Contains(\"a\") on text \"a\" = false, want true")
	}
	got, err = idx.Contains([]byte("b"))
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if got {
		t.Error("Contains(\"b\") on text \"a\" = true, want false")
	}
}
