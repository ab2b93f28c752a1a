//go:build unix

package scrypt

import "golang.org/x/sys/unix"

// lockScratch best-effort pins b's backing pages so they are never written
// to swap while they hold password-derived material; Key calls it on the
// PBKDF2 intermediate B only. Failure is not fatal — not
// every environment permits mlock (container memlock limits, non-root), and
// the zeroization below still runs regardless of whether the lock
// succeeded.
func lockScratch(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Mlock(b)
}

func unlockScratch(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Munlock(b)
}
