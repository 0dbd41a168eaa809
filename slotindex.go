package netmih

import (
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// slotIndex is one inverted index per MIH slot. slotIndex[i][word] holds
// the ids of every frozen record whose i-th W-bit word equals word. Record
// ids are indexes into the owning Index's record table.
type slotIndex []map[uint64]*roaring.Bitmap

// buildSlotIndex fills one inverted index per slot. Each slot's map depends
// only on the (already-frozen) record table, so the S slots build on S
// independent goroutines with no shared mutable state and no locking.
func buildSlotIndex(records []record, cfg Config) slotIndex {
	slots := cfg.Slots()
	idx := make(slotIndex, slots)

	var wg sync.WaitGroup
	wg.Add(slots)
	for slot := 0; slot < slots; slot++ {
		go func(slot int) {
			defer wg.Done()
			idx[slot] = buildSlot(records, slot, cfg.WordLength)
		}(slot)
	}
	wg.Wait()

	return idx
}

func buildSlot(records []record, slot, wordLength int) map[uint64]*roaring.Bitmap {
	m := make(map[uint64]*roaring.Bitmap)
	start := slot * wordLength
	for recID, r := range records {
		word := wordAt(r.bits, start, wordLength)
		bm, ok := m[word]
		if !ok {
			bm = roaring.New()
			m[word] = bm
		}
		bm.Add(uint32(recID))
	}
	return m
}

// candidateIDs returns the record ids found in the union, across every
// slot, of the bitmap keyed by query's word at that slot. A slot with no
// entry for its word contributes nothing; the union itself collapses any
// record found via more than one slot.
func (idx slotIndex) candidateIDs(query []byte, wordLength int) []uint32 {
	union := roaring.New()
	for slot, m := range idx {
		start := slot * wordLength
		word := wordAt(query, start, wordLength)
		if bm, ok := m[word]; ok {
			union.Or(bm)
		}
	}
	return union.ToArray()
}
