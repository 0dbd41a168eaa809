package netmih

import (
	"fmt"
	"iter"
	"strings"
)

// Result is one hit returned by Query: a frozen record within the
// requested distance of the query hash.
type Result struct {
	Hash       string
	Distance   int
	Categories []string
}

// Query returns every frozen record within maxDistance of hash, as a lazy
// sequence. Range over the returned iter.Seq; break out of the range early
// to stop computing distances for the remaining candidates. Order is
// unspecified but every qualifying record appears exactly once.
//
// Distances at or below the index's MatchThreshold are served from the MIH
// slot index (sublinear in corpus size); distances above it fall back to a
// bounded linear scan over every frozen record. At the boundary
// MatchThreshold == HashSize, the MIH pigeon-hole guarantee (which needs
// maxDistance < HashSize, since Slots*WordLength == HashSize) no longer
// holds, so Query also falls back to the linear scan there.
//
// Returns ErrStateViolation if the index has not been trained, or
// ErrInvalidHash if hash fails the input acceptor.
func (idx *Index) Query(hash string, maxDistance int) (iter.Seq[Result], error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.trained {
		return nil, fmt.Errorf("%w: Query called before Train", ErrStateViolation)
	}
	if !idx.acceptor.MatchString(hash) {
		return nil, fmt.Errorf("%w: %q must be exactly %d characters from [0-9a-fA-F]", ErrInvalidHash, hash, idx.cfg.HexLength())
	}

	query, err := FromHex(strings.ToLower(hash))
	if err != nil {
		return nil, err
	}

	if maxDistance > idx.cfg.MatchThreshold || maxDistance >= idx.cfg.HashSize {
		return idx.linearScan(query, maxDistance), nil
	}
	return idx.mihScan(query, maxDistance), nil
}

// linearScan iterates every frozen record and yields those within
// maxDistance. Used when maxDistance exceeds MatchThreshold, since the
// pigeon-hole guarantee behind the MIH path no longer holds.
func (idx *Index) linearScan(query []byte, maxDistance int) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for _, r := range idx.records {
			d, _ := GetHamming(query, r.bits, maxDistance)
			if d < 0 {
				continue
			}
			if !yield(idx.toResult(r, d)) {
				return
			}
		}
	}
}

// mihScan builds the MIH candidate set (the union, across every slot, of
// the bucket matching query's word at that slot) and yields the candidates
// whose true distance does not exceed maxDistance. Query only calls this
// when maxDistance < Slots * WordLength (== HashSize), the pigeon-hole
// condition under which two hashes within that distance are guaranteed to
// agree on at least one word.
func (idx *Index) mihScan(query []byte, maxDistance int) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for _, recID := range idx.slots.candidateIDs(query, idx.cfg.WordLength) {
			r := idx.records[recID]
			d, _ := GetHamming(query, r.bits, maxDistance)
			if d < 0 {
				continue
			}
			if !yield(idx.toResult(r, d)) {
				return
			}
		}
	}
}

func (idx *Index) toResult(r record, distance int) Result {
	return Result{
		Hash:       r.hash,
		Distance:   distance,
		Categories: idx.categories.list(r.categoryIDs),
	}
}
