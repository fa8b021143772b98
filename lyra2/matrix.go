package lyra2

import "encoding/binary"

// matrix is the R x C grid of 12 word blocks, kept as a single flat buffer.
// Rows are addressed in place and never moved.
type matrix struct {
	words  []uint64
	rows   int
	cols   int
	rowLen int
}

func newMatrix(rows, cols int) *matrix {
	rowLen := cols * blockLenInt64
	return &matrix{
		words:  make([]uint64, rows*rowLen),
		rows:   rows,
		cols:   cols,
		rowLen: rowLen,
	}
}

// block returns the 12 words of (row, col). The slice aliases the matrix.
func (m *matrix) block(row, col int) []uint64 {
	off := row*m.rowLen + col*blockLenInt64
	return m.words[off : off+blockLenInt64 : off+blockLenInt64]
}

// inputBlocks is the number of 8 word blocks taken up by the padded
// password, salt and basil.
func inputBlocks(pwdLen, saltLen int) int {
	return (pwdLen+saltLen+basilLenInt64*8)/blockLenBlake2SafeBytes + 1
}

// loadInput writes password, salt, the basil and the pad10*1 padding at the
// start of the matrix and returns the number of 8 word blocks to absorb.
// Only whole 8 byte words of pwd and salt are copied.
func (m *matrix) loadInput(outLen int, pwd, salt []byte, p Params) int {
	w := m.words
	pos := 0
	for i := 0; i+8 <= len(pwd); i += 8 {
		w[pos] = binary.LittleEndian.Uint64(pwd[i:])
		pos++
	}
	for i := 0; i+8 <= len(salt); i += 8 {
		w[pos] = binary.LittleEndian.Uint64(salt[i:])
		pos++
	}

	basil := [basilLenInt64]uint64{
		uint64(outLen),
		uint64(len(pwd)),
		uint64(len(salt)),
		p.TimeCost,
		p.Rows,
		p.Cols,
	}
	pos += copy(w[pos:], basil[:])

	w[pos] = 0x80
	nBlocks := inputBlocks(len(pwd), len(salt))
	w[nBlocks*blockLenBlake2SafeInt64-1] ^= 0x0100000000000000
	return nBlocks
}

func (m *matrix) wipe() {
	for i := range m.words {
		m.words[i] = 0
	}
}
