// Command cdawgidx builds and queries a CDAWG substring index over a
// grammar-compressed text, without ever materialising the text in full.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/coregx/cdawgindex/cdawg"
	"github.com/coregx/cdawgindex/grammar"
)

const usage = `usage:
  cdawgidx index <mrrepair|navarro> <filename>
  cdawgidx search <mrrepair|navarro> <filename> <pattern>
  cdawgidx benchmark <mrrepair|navarro> <filename>

filename is the .out path for mrrepair, or the path without extension for
navarro (both <filename>.C and <filename>.R must exist).`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}

	switch args[0] {
	case "index":
		return cmdIndex(args[1:])
	case "search":
		return cmdSearch(args[1:])
	case "benchmark":
		return cmdBenchmark(args[1:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}
}

func cmdIndex(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}
	g, err := loadGrammar(args[0], args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	idx := cdawg.Build(g)
	fmt.Printf("indexed %d-byte text into %d nodes\n", g.TextLength(), idx.NodeCount())
	return 0
}

func cmdSearch(args []string) int {
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}
	g, err := loadGrammar(args[0], args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	idx := cdawg.Build(g)

	found, err := idx.Contains([]byte(args[2]))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if found {
		fmt.Println("found")
	} else {
		fmt.Println("not found")
	}
	return 0
}

// sampleQueryLen is the fixed substring length the benchmark command
// samples, per the specification's "fixed length" requirement.
const sampleQueryLen = 8

// sampleQueries is how many random substrings are timed per run.
const sampleQueries = 200

func cmdBenchmark(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}
	g, err := loadGrammar(args[0], args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	buildStart := time.Now()
	idx := cdawg.Build(g)
	buildElapsed := time.Since(buildStart)

	n := g.TextLength()
	if n < sampleQueryLen {
		fmt.Fprintln(os.Stderr, "benchmark: text is shorter than the fixed sample length")
		return 1
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var total time.Duration
	for i := 0; i < sampleQueries; i++ {
		pos := rng.Intn(n - sampleQueryLen + 1)
		pattern, err := g.DecodeRange(pos, sampleQueryLen)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		start := time.Now()
		_, _ = idx.Contains(pattern)
		total += time.Since(start)
	}

	fmt.Printf("build: %v for %d bytes (%d nodes)\n", buildElapsed, n, idx.NodeCount())
	fmt.Printf("search: %v average over %d queries of length %d\n",
		total/time.Duration(sampleQueries), sampleQueries, sampleQueryLen)
	return 0
}

func loadGrammar(kind, filename string) (*grammar.Grammar, error) {
	switch kind {
	case "mrrepair":
		return grammar.LoadMRRepair(filename)
	case "navarro":
		return grammar.LoadNavarro(filename+".C", filename+".R")
	default:
		return nil, fmt.Errorf("unknown grammar type %q (want mrrepair or navarro)", kind)
	}
}
