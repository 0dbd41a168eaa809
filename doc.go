/*
Package netmih implements an in-memory Multi-Index Hashing (MIH) similarity
index for fixed-length binary fingerprints such as PDQ perceptual hashes.

# Overview

netmih stores hex-encoded fingerprints together with arbitrary category
labels and answers "everything within Hamming distance d of this hash"
queries without a full linear scan over the corpus, by partitioning each
fingerprint into equal-width words and building one inverted index per word
position (the technique of Norouzi, Punjani and Fleet). Distances at or
below the index's configured match threshold are served from the inverted
indexes; distances above it fall back to a bounded linear scan.

# Quick Start

	idx, err := netmih.NewPresetIndex(netmih.PDQ)
	if err != nil {
	    log.Fatal(err)
	}

	if err := idx.Update([]string{hash1, hash2}, "known-bad"); err != nil {
	    log.Fatal(err)
	}
	if _, err := idx.Train(); err != nil {
	    log.Fatal(err)
	}

	results, err := idx.Query(queryHash, 16)
	if err != nil {
	    log.Fatal(err)
	}
	for result := range results {
	    fmt.Printf("%s at distance %d: %v\n", result.Hash, result.Distance, result.Categories)
	}

# Lifecycle

An Index is strictly two-phased: it accepts any number of Update calls while
open, a single Train call freezes it, and only a frozen Index answers
Query. ListCategories answers in either phase, and Count returns 0 until
Train. Update after Train, or Query before Train, fail with
ErrStateViolation.

# Thread Safety

Update and Train require exclusive access to a given Index and must not be
called concurrently with each other or with themselves. Query,
ListCategories, Count and the package-level primitives (ToHex, FromHex,
GetHamming, GetWindow) are safe for unbounded concurrent use once the index
is frozen.

# License

MIT License.
*/
package netmih
