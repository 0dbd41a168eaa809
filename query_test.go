package netmih

import (
	"sort"
	"testing"
)

func TestQueryExactMatch(t *testing.T) {
	idx := newPDQIndex(t)
	if err := idx.Update([]string{pdqSample}, "ignorable"); err != nil {
		t.Fatalf("Update unexpected error: %v", err)
	}
	if _, err := idx.Train(); err != nil {
		t.Fatalf("Train unexpected error: %v", err)
	}

	results, err := idx.Query(pdqSample, 0)
	if err != nil {
		t.Fatalf("Query unexpected error: %v", err)
	}

	var got []Result
	for r := range results {
		got = append(got, r)
	}
	if len(got) != 1 {
		t.Fatalf("Query(exact, 0) returned %d results, want 1", len(got))
	}
	if got[0].Hash != pdqSample {
		t.Errorf("Hash = %q, want %q", got[0].Hash, pdqSample)
	}
	if got[0].Distance != 0 {
		t.Errorf("Distance = %d, want 0", got[0].Distance)
	}
	if len(got[0].Categories) != 1 || got[0].Categories[0] != "ignorable" {
		t.Errorf("Categories = %v, want [ignorable]", got[0].Categories)
	}
}

func TestQueryNearDuplicatesDistanceZeroAndTen(t *testing.T) {
	base := pdqSample
	h2 := base[:len(base)-1] + "8" // last hex char 7 -> 8
	h3 := base[:len(base)-2] + "36" // last two hex chars 27 -> 36

	idx := newPDQIndex(t)
	for _, h := range []string{base, h2, h3} {
		if err := idx.Update([]string{h}, "ignorable"); err != nil {
			t.Fatalf("Update(%q) unexpected error: %v", h, err)
		}
	}
	if _, err := idx.Train(); err != nil {
		t.Fatalf("Train unexpected error: %v", err)
	}

	exact, err := idx.Query(base, 0)
	if err != nil {
		t.Fatalf("Query unexpected error: %v", err)
	}
	var exactHashes []string
	for r := range exact {
		exactHashes = append(exactHashes, r.Hash)
	}
	if len(exactHashes) != 1 || exactHashes[0] != base {
		t.Errorf("Query(base, 0) = %v, want [%s]", exactHashes, base)
	}

	near, err := idx.Query(base, 10)
	if err != nil {
		t.Fatalf("Query unexpected error: %v", err)
	}
	var nearHashes []string
	for r := range near {
		nearHashes = append(nearHashes, r.Hash)
	}
	sort.Strings(nearHashes)
	want := []string{base, h2, h3}
	sort.Strings(want)
	if len(nearHashes) != len(want) {
		t.Fatalf("Query(base, 10) = %v, want all of %v", nearHashes, want)
	}
	for i := range want {
		if nearHashes[i] != want[i] {
			t.Errorf("Query(base, 10)[%d] = %q, want %q", i, nearHashes[i], want[i])
		}
	}
}

func TestQueryLinearPathBeyondThreshold(t *testing.T) {
	base := pdqSample
	unrelated := "0000000000000000000000000000000000000000000000000000000000000000"[:64]

	idx := newPDQIndex(t)
	if err := idx.Update([]string{base}, "ignorable"); err != nil {
		t.Fatalf("Update unexpected error: %v", err)
	}
	if _, err := idx.Train(); err != nil {
		t.Fatalf("Train unexpected error: %v", err)
	}

	baseBits, err := FromHex(base)
	if err != nil {
		t.Fatalf("FromHex unexpected error: %v", err)
	}
	unrelatedBits, err := FromHex(unrelated)
	if err != nil {
		t.Fatalf("FromHex unexpected error: %v", err)
	}
	trueDistance, err := GetHamming(unrelatedBits, baseBits)
	if err != nil {
		t.Fatalf("GetHamming unexpected error: %v", err)
	}

	// idx.MatchThreshold() is 32 for PDQ; use a distance above it so Query
	// must take the linear path.
	results, err := idx.Query(unrelated, idx.MatchThreshold()+2)
	if err != nil {
		t.Fatalf("Query unexpected error: %v", err)
	}

	var got []Result
	for r := range results {
		got = append(got, r)
	}
	wantMatch := trueDistance <= idx.MatchThreshold()+2
	if wantMatch && len(got) != 1 {
		t.Fatalf("linear-path Query found %d results, want 1 (true distance %d <= %d)", len(got), trueDistance, idx.MatchThreshold()+2)
	}
	if !wantMatch && len(got) != 0 {
		t.Fatalf("linear-path Query found %d results, want 0 (true distance %d > %d)", len(got), trueDistance, idx.MatchThreshold()+2)
	}
	if wantMatch && got[0].Distance != trueDistance {
		t.Errorf("Distance = %d, want %d", got[0].Distance, trueDistance)
	}
}

func TestQueryMIHMatchesBruteForce(t *testing.T) {
	idx := newPDQIndex(t)
	hashes := []string{
		pdqSample,
		pdqSample[:len(pdqSample)-1] + "8",
		pdqSample[:len(pdqSample)-2] + "36",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		"0000000000000000000000000000000000000000000000000000000000000000"[:64],
	}
	for _, h := range hashes {
		if err := idx.Update([]string{h}, "c"); err != nil {
			t.Fatalf("Update(%q) unexpected error: %v", h, err)
		}
	}
	if _, err := idx.Train(); err != nil {
		t.Fatalf("Train unexpected error: %v", err)
	}

	queryBits, err := FromHex(pdqSample)
	if err != nil {
		t.Fatalf("FromHex unexpected error: %v", err)
	}

	for maxDistance := 0; maxDistance <= idx.MatchThreshold(); maxDistance += 8 {
		mihResults, err := idx.Query(pdqSample, maxDistance)
		if err != nil {
			t.Fatalf("Query unexpected error: %v", err)
		}
		var mihHashes []string
		for r := range mihResults {
			mihHashes = append(mihHashes, r.Hash)
		}
		sort.Strings(mihHashes)

		var bruteForce []string
		for _, h := range hashes {
			bits, err := FromHex(h)
			if err != nil {
				t.Fatalf("FromHex unexpected error: %v", err)
			}
			d, err := GetHamming(queryBits, bits, maxDistance)
			if err != nil {
				t.Fatalf("GetHamming unexpected error: %v", err)
			}
			if d >= 0 {
				bruteForce = append(bruteForce, h)
			}
		}
		sort.Strings(bruteForce)

		if len(mihHashes) != len(bruteForce) {
			t.Fatalf("maxDistance=%d: MIH found %v, brute force found %v", maxDistance, mihHashes, bruteForce)
		}
		for i := range bruteForce {
			if mihHashes[i] != bruteForce[i] {
				t.Errorf("maxDistance=%d: MIH found %v, brute force found %v", maxDistance, mihHashes, bruteForce)
				break
			}
		}
	}
}

func TestQueryEarlyTermination(t *testing.T) {
	idx := newPDQIndex(t)
	hashes := []string{
		pdqSample,
		pdqSample[:len(pdqSample)-1] + "8",
		pdqSample[:len(pdqSample)-2] + "36",
	}
	for _, h := range hashes {
		if err := idx.Update([]string{h}, "c"); err != nil {
			t.Fatalf("Update(%q) unexpected error: %v", h, err)
		}
	}
	if _, err := idx.Train(); err != nil {
		t.Fatalf("Train unexpected error: %v", err)
	}

	results, err := idx.Query(pdqSample, 10)
	if err != nil {
		t.Fatalf("Query unexpected error: %v", err)
	}

	count := 0
	for range results {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("breaking out of the range should stop after one result, got %d", count)
	}
}

// TestQueryFallsBackToLinearScanWhenThresholdEqualsHashSize covers the
// pigeon-hole boundary: with H=8, W=4, T=8 (S=2 slots), a record and query
// that are bitwise complements of each other ("f0" vs "0f") differ in every
// slot's word, so the MIH candidate set would never surface the record even
// though its true distance equals T. Query must still find it by falling
// back to a linear scan at this boundary.
func TestQueryFallsBackToLinearScanWhenThresholdEqualsHashSize(t *testing.T) {
	idx, err := NewIndex(8, 4, 8)
	if err != nil {
		t.Fatalf("NewIndex(8, 4, 8) unexpected error: %v", err)
	}
	if err := idx.Update([]string{"f0"}, "c"); err != nil {
		t.Fatalf("Update unexpected error: %v", err)
	}
	if _, err := idx.Train(); err != nil {
		t.Fatalf("Train unexpected error: %v", err)
	}

	results, err := idx.Query("0f", 8)
	if err != nil {
		t.Fatalf("Query unexpected error: %v", err)
	}

	var got []Result
	for r := range results {
		got = append(got, r)
	}
	if len(got) != 1 {
		t.Fatalf("Query(\"0f\", 8) returned %d results, want 1 (the record at exactly distance 8)", len(got))
	}
	if got[0].Distance != 8 {
		t.Errorf("Distance = %d, want 8", got[0].Distance)
	}
}
