package scrypt

import (
	"crypto/sha256"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

// Key derives a key from password and salt using the scrypt memory-hard
// key derivation function, returning keyLen fresh bytes.
//
// N is the CPU/memory cost parameter and must be a power of two greater
// than 1. r is the block size factor and p is the parallelization factor;
// both must be positive and satisfy r*p < 2^30. Raising N raises both the
// time and the memory an attacker needs per guess; raising p lets that work
// be split across independent cores without weakening it.
//
// The package defaults (DefaultN, DefaultR, DefaultP) are the 2009
// "interactive" work factor:
//
//	key, err := scrypt.Key(password, salt, scrypt.DefaultN, scrypt.DefaultR, scrypt.DefaultP, 32)
//
// Key returns ErrInvalidParams if N, r, p, or keyLen fall outside scrypt's
// valid domain, including when the implied scratch memory exceeds
// MaxMemory.
func Key(password, salt []byte, N, r, p, keyLen int) ([]byte, error) {
	if err := checkParams(N, r, p, keyLen); err != nil {
		return nil, err
	}

	blockWords := 32 * r
	bBytes := pbkdf2.Key(password, salt, 1, 128*p*r, sha256.New)
	lockScratch(bBytes)
	defer func() {
		zeroBytes(bBytes)
		unlockScratch(bBytes)
	}()

	b := bytesToWords(bBytes)

	runSMix(b, r, N, p, blockWords)

	derived := wordsToBytes(b)
	zeroWords(b)
	defer zeroBytes(derived)

	return pbkdf2.Key(password, derived, 1, keyLen, sha256.New), nil
}

// runSMix runs SMix over each of the p independent blocks of b.
//
// The p invocations are commutative and share no state, but each needs its
// own N*32r-word V table: worker goroutines must not share V. Replicating
// V across p goroutines costs p times the single-V memory
// checkParams already approved against MaxMemory, so parallelizing is only
// safe when that replicated footprint still fits the budget; otherwise
// SMix runs p times sequentially over one reused V, same as a single-core
// call.
func runSMix(b []uint32, r, N, p, blockWords int) {
	vWords := uint64(N) * uint64(blockWords)
	replicated, overflow := mulOverflows(vWords*4, uint64(p))
	if p == 1 || overflow || replicated > MaxMemory {
		v := make([]uint32, N*blockWords)
		x := make([]uint32, blockWords)
		y := make([]uint32, blockWords)
		for i := 0; i < p; i++ {
			smix(b[i*blockWords:(i+1)*blockWords], r, N, v, x, y)
		}
		zeroWords(v)
		zeroWords(x)
		zeroWords(y)
		return
	}

	var wg sync.WaitGroup
	wg.Add(p)
	for i := 0; i < p; i++ {
		i := i
		go func() {
			defer wg.Done()
			v := make([]uint32, N*blockWords)
			x := make([]uint32, blockWords)
			y := make([]uint32, blockWords)
			smix(b[i*blockWords:(i+1)*blockWords], r, N, v, x, y)
			zeroWords(v)
			zeroWords(x)
			zeroWords(y)
		}()
	}
	wg.Wait()
}
