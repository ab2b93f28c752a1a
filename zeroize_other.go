//go:build !unix

package scrypt

// lockScratch is a no-op on platforms without mlock; zeroization still
// happens, it just isn't backed by a guarantee against swap.
func lockScratch(b []byte) {}

func unlockScratch(b []byte) {}
