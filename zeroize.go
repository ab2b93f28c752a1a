package scrypt

import "runtime"

// zeroBytes overwrites b with zeros. runtime.KeepAlive pins b past the loop
// so an optimizing compiler cannot prove the writes are dead and elide them
// — the one place in this package a "why" comment earns its keep.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// zeroWords overwrites w with zeros; see zeroBytes.
func zeroWords(w []uint32) {
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
}
