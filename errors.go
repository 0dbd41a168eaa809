package netmih

import "errors"

// ErrStateViolation is returned when an operation is attempted in a phase
// of the Index lifecycle that forbids it: Update after Train, or Query
// before Train.
var ErrStateViolation = errors.New("netmih: invalid state transition")

// ErrInvalidHash is returned when a hash string fails the configured input
// acceptor: wrong length, or a character outside [0-9a-fA-F].
var ErrInvalidHash = errors.New("netmih: invalid hash")

// ErrInvalidConfig is returned when an (H, W, T) triple violates one of the
// configuration invariants: H must be a positive multiple of 8, W must
// divide H evenly, and T must be even and within [0, H].
var ErrInvalidConfig = errors.New("netmih: invalid configuration")

// ErrLengthMismatch is returned by GetHamming when its two operands do not
// have the same length.
var ErrLengthMismatch = errors.New("netmih: operand length mismatch")
