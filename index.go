package netmih

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// Index is an in-memory Multi-Index Hashing similarity index. See the
// package doc comment for the lifecycle contract: any number of Update
// calls while open, then a single Train call that freezes the index for
// Query/ListCategories/Count.
//
// Thread-safety: Update and Train require exclusive access. Query,
// ListCategories, and Count are safe for concurrent use once the index is
// frozen.
type Index struct {
	cfg      Config
	acceptor acceptor

	mu      sync.RWMutex
	trained bool

	categories *categoryTable
	staging    map[string]*bitset.BitSet

	records []record
	slots   slotIndex
}

// NewIndex constructs an Index from an explicit (H, W, T) triple. See
// Config for the validation rules.
func NewIndex(hashSize, wordLength, matchThreshold int) (*Index, error) {
	cfg, err := NewConfig(hashSize, wordLength, matchThreshold)
	if err != nil {
		return nil, err
	}
	return newIndex(cfg), nil
}

// NewPresetIndex constructs an Index from a named preset, currently only
// PDQ (H=256, W=16, T=32).
func NewPresetIndex(preset Preset) (*Index, error) {
	cfg, err := NewPresetConfig(preset)
	if err != nil {
		return nil, err
	}
	return newIndex(cfg), nil
}

func newIndex(cfg Config) *Index {
	return &Index{
		cfg:        cfg,
		acceptor:   newAcceptor(cfg.HexLength()),
		categories: newCategoryTable(),
		staging:    make(map[string]*bitset.BitSet),
	}
}

// HashSize returns H, the hash size in bits.
func (idx *Index) HashSize() int { return idx.cfg.HashSize }

// WordLength returns W, the MIH word length in bits.
func (idx *Index) WordLength() int { return idx.cfg.WordLength }

// MatchThreshold returns T, the distance at or below which Query uses the
// MIH-accelerated path.
func (idx *Index) MatchThreshold() int { return idx.cfg.MatchThreshold }

// WindowSize returns T/W.
func (idx *Index) WindowSize() int { return idx.cfg.WindowSize() }

// Accepts reports whether hash matches this index's input syntax
// (^[0-9a-fA-F]{H/4}$), without attempting to stage or query it.
func (idx *Index) Accepts(hash string) bool {
	return idx.acceptor.MatchString(hash)
}

// Trained reports whether Train has been called on this index.
func (idx *Index) Trained() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.trained
}

// Update stages hashes under category, creating the category if it has not
// been seen before. Fails with ErrStateViolation if the index is already
// trained, or ErrInvalidHash on the first hash that fails the input
// acceptor — hashes staged earlier in the same call remain staged.
func (idx *Index) Update(hashes []string, category string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.trained {
		return fmt.Errorf("%w: Update called on a trained index", ErrStateViolation)
	}

	catID := idx.categories.idFor(category)
	for _, h := range hashes {
		if !idx.acceptor.MatchString(h) {
			return fmt.Errorf("%w: %q must be exactly %d characters from [0-9a-fA-F]", ErrInvalidHash, h, idx.cfg.HexLength())
		}
		normalized := strings.ToLower(h)
		set, ok := idx.staging[normalized]
		if !ok {
			set = bitset.New(0)
			idx.staging[normalized] = set
		}
		set.Set(uint(catID))
	}
	return nil
}

// Train materializes the staged hashes into frozen records and builds the
// per-slot MIH inverted index. Returns the number of frozen records, which
// equals the number of distinct normalized hashes ever ingested. Calling
// Train on an already-trained index is a no-op that returns 0.
func (idx *Index) Train() (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.trained {
		return 0, nil
	}

	records := make([]record, 0, len(idx.staging))
	for hash, set := range idx.staging {
		bits, err := FromHex(hash)
		if err != nil {
			return 0, fmt.Errorf("netmih: staged hash %q failed to decode: %w", hash, err)
		}

		ids := make([]int, 0, set.Count())
		for i, e := set.NextSet(0); e; i, e = set.NextSet(i + 1) {
			ids = append(ids, int(i))
		}

		records = append(records, record{hash: hash, bits: bits, categoryIDs: ids})
	}

	idx.records = records
	idx.slots = buildSlotIndex(records, idx.cfg)
	idx.staging = make(map[string]*bitset.BitSet)
	idx.trained = true

	return len(idx.records), nil
}

// ListCategories returns category labels. A nil filter returns every known
// label in insertion order; otherwise it returns the labels for the given
// ids, in the order given, skipping any id outside the known range.
func (idx *Index) ListCategories(filter []int) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.categories.list(filter)
}

// Count returns the number of frozen records, or 0 before Train.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.records)
}
