package netmih

import (
	"fmt"
	"math/bits"

	"gonum.org/v1/gonum/stat/combin"
)

// GetHamming computes the Hamming distance between two equal-length packed
// bit arrays, counting bytewise with math/bits.OnesCount8 over the XOR of
// the operands — the same XOR-then-popcount shape used by Hamming
// providers across the retrieval pack (e.g. a byte-at-a-time XOR-and-count
// loop), just driven by the stdlib popcount primitive instead of a
// bit-by-bit loop.
//
// maxDistance is optional; a single maxDistance >= 0 bounds the search: as
// soon as the running count exceeds it, GetHamming short-circuits and
// returns -1. Omitting maxDistance (or passing a negative value) computes
// the exact, unbounded distance.
//
// Returns ErrLengthMismatch if a and b have different lengths.
func GetHamming(a, b []byte, maxDistance ...int) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d bytes", ErrLengthMismatch, len(a), len(b))
	}

	limit := -1
	if len(maxDistance) > 0 {
		limit = maxDistance[0]
	}

	count := 0
	for i := range a {
		count += bits.OnesCount8(a[i] ^ b[i])
		if limit >= 0 && count > limit {
			return -1, nil
		}
	}
	return count, nil
}

// GetWindow returns every distinct word within Hamming distance <= d of
// word (a value of the given bit width), as lowercased hex strings of
// length width/4. The count of returned strings equals Σ_{k=0..d} C(width,k).
//
// Enumeration is iterative: for each radius k from 0 to d, GetWindow asks
// gonum's combin.Combinations for every k-subset of bit positions and
// flips exactly those bits, avoiding the recursive mutate-and-restore
// construction of older Hamming-window implementations.
func GetWindow(word uint64, width, d int) []string {
	if d < 0 {
		d = 0
	}
	if d > width {
		d = width
	}

	out := []string{wordToHex(word, width)}
	for k := 1; k <= d; k++ {
		for _, combo := range combin.Combinations(width, k) {
			flipped := word
			for _, bitPos := range combo {
				flipped ^= uint64(1) << uint(bitPos)
			}
			out = append(out, wordToHex(flipped, width))
		}
	}
	return out
}
