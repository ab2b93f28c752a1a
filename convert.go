package scrypt

import "encoding/binary"

// bytesToWords reinterprets a byte slice as little-endian 32-bit words.
// len(b) must be a multiple of 4.
func bytesToWords(b []byte) []uint32 {
	w := make([]uint32, len(b)/4)
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return w
}

// wordsToBytes is the inverse of bytesToWords.
func wordsToBytes(w []uint32) []byte {
	b := make([]byte, len(w)*4)
	for i, v := range w {
		binary.LittleEndian.PutUint32(b[i*4:], v)
	}
	return b
}
