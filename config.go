package netmih

import "fmt"

// Preset names a well-known (H, W, T) triple.
type Preset string

// PDQ is the 256-bit PDQ perceptual hash preset: H=256, W=16, T=32.
const PDQ Preset = "pdq"

// Config holds the immutable parameters of an Index.
//
//   - HashSize (H) is the hash size in bits. Must be a multiple of 8.
//   - WordLength (W) is the word length in bits. H must be divisible by W.
//   - MatchThreshold (T) is the distance, in bits, at or below which Query
//     is eligible for the MIH-accelerated path. Must be even and at most H.
//
// Slots and WindowSize are derived: Slots = H/W, WindowSize = T/W. Query
// itself falls back to a linear scan whenever the pigeon-hole guarantee
// behind the MIH path would not hold for the requested distance, which can
// happen at the boundary MatchThreshold == HashSize; see query.go.
type Config struct {
	HashSize       int
	WordLength     int
	MatchThreshold int
}

// presetConfigs maps the known presets to their (H, W, T) triples.
var presetConfigs = map[Preset]Config{
	PDQ: {HashSize: 256, WordLength: 16, MatchThreshold: 32},
}

// NewConfig validates and returns a Config for the given (H, W, T) triple.
//
// Returns ErrInvalidConfig if H is not a multiple of 8, H is not divisible
// by W, T is odd, or T exceeds H.
func NewConfig(hashSize, wordLength, matchThreshold int) (Config, error) {
	cfg := Config{
		HashSize:       hashSize,
		WordLength:     wordLength,
		MatchThreshold: matchThreshold,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewPresetConfig returns the Config for a named preset.
func NewPresetConfig(preset Preset) (Config, error) {
	cfg, ok := presetConfigs[preset]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, preset)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.HashSize <= 0 || c.HashSize%8 != 0 {
		return fmt.Errorf("%w: hash size %d must be a positive multiple of 8", ErrInvalidConfig, c.HashSize)
	}
	if c.WordLength <= 0 {
		return fmt.Errorf("%w: word length %d must be positive", ErrInvalidConfig, c.WordLength)
	}
	if c.HashSize%c.WordLength != 0 {
		return fmt.Errorf("%w: hash size %d must be divisible by word length %d", ErrInvalidConfig, c.HashSize, c.WordLength)
	}
	if c.MatchThreshold%2 != 0 {
		return fmt.Errorf("%w: match threshold %d must be even", ErrInvalidConfig, c.MatchThreshold)
	}
	if c.MatchThreshold < 0 || c.MatchThreshold > c.HashSize {
		return fmt.Errorf("%w: match threshold %d must be within [0, %d]", ErrInvalidConfig, c.MatchThreshold, c.HashSize)
	}
	return nil
}

// Slots returns S = H/W, the number of MIH slots.
func (c Config) Slots() int {
	return c.HashSize / c.WordLength
}

// WindowSize returns T/W, the number of slots spanned by the match threshold.
func (c Config) WindowSize() int {
	return c.MatchThreshold / c.WordLength
}

// HexLength returns H/4, the number of hex characters in a valid hash string.
func (c Config) HexLength() int {
	return c.HashSize / 4
}
