package scrypt

import (
	"fmt"
	"math/bits"
)

// Default parameters for the "interactive" work factor.
const (
	DefaultN      = 1 << 14
	DefaultR      = 8
	DefaultP      = 1
	DefaultKeyLen = 64
)

// MaxMemory bounds the scratch memory (V plus X/Y/B) a single Key call is
// willing to allocate, in bytes. Callers deriving keys from parameters they
// do not fully control (e.g. parsed from an MCF record written by another
// party) should leave this at its default or lower it; Key rejects any
// (N, r, p) whose peak footprint — 128*r*N + 128*r*p + 128*r bytes —
// exceeds it, returning ErrInvalidParams instead of attempting the
// allocation.
var MaxMemory uint64 = 1 << 30 // 1 GiB

const maxRP = 1 << 30 // r*p must stay strictly below this

// isPowerOfTwo reports whether n is a power of two strictly greater than 1.
func isPowerOfTwo(n int) bool {
	return n > 1 && n&(n-1) == 0
}

// log2 returns log2(n) for n a power of two. Callers must check
// isPowerOfTwo(n) first.
func log2(n int) int {
	return bits.TrailingZeros64(uint64(n))
}

// checkParams validates N, r, p, and the requested output length, in the
// same order scrypt's definition lists the constraints.
func checkParams(N, r, p, keyLen int) error {
	if N < 2 || !isPowerOfTwo(N) {
		return fmt.Errorf("scrypt: N=%d must be a power of two greater than 1: %w", N, ErrInvalidParams)
	}
	if r <= 0 {
		return fmt.Errorf("scrypt: r=%d must be positive: %w", r, ErrInvalidParams)
	}
	if p <= 0 {
		return fmt.Errorf("scrypt: p=%d must be positive: %w", p, ErrInvalidParams)
	}
	if uint64(r)*uint64(p) >= maxRP {
		return fmt.Errorf("scrypt: r*p=%d must be below 2^30: %w", uint64(r)*uint64(p), ErrInvalidParams)
	}
	if keyLen <= 0 {
		return fmt.Errorf("scrypt: olen=%d must be positive: %w", keyLen, ErrInvalidParams)
	}
	const maxOlen = (uint64(1)<<32 - 1) * 32
	if uint64(keyLen) > maxOlen {
		return fmt.Errorf("scrypt: olen=%d exceeds (2^32-1)*32: %w", keyLen, ErrInvalidParams)
	}
	if mem, ok := peakMemory(N, r, p); !ok || mem > MaxMemory {
		return fmt.Errorf("scrypt: parameters require more than MaxMemory=%d bytes: %w", MaxMemory, ErrInvalidParams)
	}
	return nil
}

// peakMemory returns 128*r*N + 128*r*p + 128*r bytes — the V table, the B
// buffer, and one scratch block — reporting ok=false on overflow.
func peakMemory(N, r, p int) (uint64, bool) {
	rr, nn, pp := uint64(r), uint64(N), uint64(p)
	const wordBytes = 128 // 32 words * 4 bytes per word, per sub-block pair

	v, ov1 := mulOverflows(wordBytes*rr, nn)
	b, ov2 := mulOverflows(wordBytes*rr, pp)
	if ov1 || ov2 {
		return 0, false
	}
	sum := v + b
	if sum < v {
		return 0, false
	}
	total := sum + wordBytes*rr
	if total < sum {
		return 0, false
	}
	return total, true
}

func mulOverflows(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	product := a * b
	if product/a != b {
		return 0, true
	}
	return product, false
}
