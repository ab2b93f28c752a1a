package scrypt

// blockMix applies BlockMix to a chain of 2r Salsa20/8 sub-blocks.
//
// b holds 2r consecutive 16-word sub-blocks B_0 … B_{2r-1}; y is scratch of
// the same size. On return b holds the permuted output: Y_0, Y_2, …,
// Y_{2r-2}, Y_1, Y_3, …, Y_{2r-1}.
//
// The XOR into the running state and the Salsa20/8 call are fused: each
// iteration XORs B_i into the carried state before running salsa208, which
// avoids materializing the "X := B_i xor carry" step as a separate copy.
func blockMix(b, y []uint32, r int) {
	var x [16]uint32
	copy(x[:], b[(2*r-1)*16:(2*r)*16])

	for i := 0; i < 2*r; i++ {
		var src [16]uint32
		copy(src[:], b[i*16:(i+1)*16])
		xorBlock16(&x, &src)
		salsa208(&x)
		copy(y[i*16:(i+1)*16], x[:])
	}

	// Reorder: even-indexed Y blocks first, then odd-indexed.
	for i := 0; i < r; i++ {
		copy(b[i*16:(i+1)*16], y[(2*i)*16:(2*i+1)*16])
	}
	for i := 0; i < r; i++ {
		copy(b[(i+r)*16:(i+r+1)*16], y[(2*i+1)*16:(2*i+2)*16])
	}
}
