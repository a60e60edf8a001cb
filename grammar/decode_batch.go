package grammar

import "golang.org/x/sys/cpu"

// hasAVX2 indicates whether the CPU supports AVX2, used only to pick a
// larger initial output-buffer capacity in DecodeRange; no vector instructions are issued
// directly; hasAVX2 name matches the convention used for dispatch flags
// elsewhere in this module's ancestry.
var hasAVX2 = cpu.X86.HasAVX2

// avx2BatchSize and scalarBatchSize cap the initial capacity of the output
// buffer DecodeRange allocates (min(n, batch) bytes), the larger cap being
// taken on AVX2-capable hardware. A request longer than the cap grows the
// buffer through append's ordinary growth.
const (
	avx2BatchSize   = 4096
	scalarBatchSize = 512
)

// DecodeRange decodes text[pos : pos+n] in one call: it drives an Iterator
// from pos byte by byte internally, so the caller receives a contiguous
// slice instead of stepping Next/Char itself. It is the bulk counterpart to CharAt
// and IterFrom, meant for benchmark and export tooling that needs a
// contiguous slice of decoded text rather than a one-at-a-time stream.
func (g *Grammar) DecodeRange(pos, n int) ([]byte, error) {
	if n < 0 {
		return nil, newOutOfRangeError(pos, g.textLength)
	}
	if pos < 0 || pos+n > g.textLength {
		return nil, newOutOfRangeError(pos, g.textLength)
	}
	if n == 0 {
		return nil, nil
	}

	it, err := g.IterFrom(pos)
	if err != nil {
		return nil, err
	}

	batch := scalarBatchSize
	if hasAVX2 {
		batch = avx2BatchSize
	}

	out := make([]byte, 0, min(n, batch))
	for len(out) < n {
		if !it.Next() {
			return nil, newMalformedError("grammar exhausted before reaching requested range end")
		}
		out = append(out, it.Char())
	}
	return out, nil
}
