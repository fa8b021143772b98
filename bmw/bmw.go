// Package bmw implements Blue Midnight Wish 256, the last stage of the
// Lyra2REv2 proof-of-work chain.
package bmw

import (
	"encoding/binary"
	"math/bits"
)

const (
	// Size of a digest in bytes.
	Size = 32
	// BlockSize is the compression function's input size in bytes.
	BlockSize = 64
)

var initVal = [16]uint32{
	0x40414243, 0x44454647, 0x48494A4B, 0x4C4D4E4F,
	0x50515253, 0x54555657, 0x58595A5B, 0x5C5D5E5F,
	0x60616263, 0x64656667, 0x68696A6B, 0x6C6D6E6F,
	0x70717273, 0x74757677, 0x78797A7B, 0x7C7D7E7F,
}

var finalVal = [16]uint32{
	0xaaaaaaa0, 0xaaaaaaa1, 0xaaaaaaa2, 0xaaaaaaa3,
	0xaaaaaaa4, 0xaaaaaaa5, 0xaaaaaaa6, 0xaaaaaaa7,
	0xaaaaaaa8, 0xaaaaaaa9, 0xaaaaaaaa, 0xaaaaaaab,
	0xaaaaaaac, 0xaaaaaaad, 0xaaaaaaae, 0xaaaaaaaf,
}

// wTerms lists, for each W_j of f0, the five (m^h) indices and whether each
// term is subtracted.
var wTerms = [16][5]struct {
	i   int
	neg bool
}{
	{{5, false}, {7, true}, {10, false}, {13, false}, {14, false}},
	{{6, false}, {8, true}, {11, false}, {14, false}, {15, true}},
	{{0, false}, {7, false}, {9, false}, {12, true}, {15, false}},
	{{0, false}, {1, true}, {8, false}, {10, true}, {13, false}},
	{{1, false}, {2, false}, {9, false}, {11, true}, {14, true}},
	{{3, false}, {2, true}, {10, false}, {12, true}, {15, false}},
	{{4, false}, {0, true}, {3, true}, {11, true}, {13, false}},
	{{1, false}, {4, true}, {5, true}, {12, true}, {14, true}},
	{{2, false}, {5, true}, {6, true}, {13, false}, {15, true}},
	{{0, false}, {3, true}, {6, false}, {7, true}, {14, false}},
	{{8, false}, {1, true}, {4, true}, {7, true}, {15, false}},
	{{8, false}, {0, true}, {2, true}, {5, true}, {9, false}},
	{{1, false}, {3, false}, {6, true}, {9, true}, {10, false}},
	{{2, false}, {4, false}, {7, false}, {10, false}, {11, false}},
	{{3, false}, {5, true}, {8, false}, {11, true}, {12, true}},
	{{12, false}, {4, true}, {6, true}, {9, true}, {13, false}},
}

func s0(x uint32) uint32 {
	return x>>1 ^ x<<3 ^ bits.RotateLeft32(x, 4) ^ bits.RotateLeft32(x, 19)
}

func s1(x uint32) uint32 {
	return x>>1 ^ x<<2 ^ bits.RotateLeft32(x, 8) ^ bits.RotateLeft32(x, 23)
}

func s2(x uint32) uint32 {
	return x>>2 ^ x<<1 ^ bits.RotateLeft32(x, 12) ^ bits.RotateLeft32(x, 25)
}

func s3(x uint32) uint32 {
	return x>>2 ^ x<<2 ^ bits.RotateLeft32(x, 15) ^ bits.RotateLeft32(x, 29)
}

func s4(x uint32) uint32 { return x>>1 ^ x }
func s5(x uint32) uint32 { return x>>2 ^ x }

var (
	sBox     = [5]func(uint32) uint32{s0, s1, s2, s3, s4}
	expand1S = [4]func(uint32) uint32{s1, s2, s3, s0}
	expand2R = [7]int{3, 7, 13, 16, 19, 23, 27}
)

// shift is a left shift for positive n and a right shift for negative n.
func shift(x uint32, n int) uint32 {
	if n < 0 {
		return x >> uint(-n)
	}
	return x << uint(n)
}

// folding shifts for h[0..7] (xh, q[16+j]) and h[8..15] (xl)
var (
	foldXH = [8]int{5, -7, -5, -1, -3, 6, -4, -11}
	foldQ  = [8]int{-5, 8, 5, 5, 0, -6, 6, 2}
	foldXL = [8]int{8, -6, 6, 4, -3, -4, -7, -2}
)

// compress runs f0, f1 and f2 on message block m, updating h in place.
func compress(h, m *[16]uint32) {
	var q [32]uint32

	for j := 0; j < 16; j++ {
		var w uint32
		for _, t := range wTerms[j] {
			if t.neg {
				w -= m[t.i] ^ h[t.i]
			} else {
				w += m[t.i] ^ h[t.i]
			}
		}
		q[j] = sBox[j%5](w) + h[(j+1)%16]
	}

	addElement := func(j int) uint32 {
		a, b, c := j%16, (j+3)%16, (j+10)%16
		return (bits.RotateLeft32(m[a], a+1) +
			bits.RotateLeft32(m[b], b+1) -
			bits.RotateLeft32(m[c], c+1) +
			uint32(j)*0x05555555) ^ h[(j+7)%16]
	}

	for j := 16; j < 18; j++ {
		var sum uint32
		for k := 0; k < 16; k++ {
			sum += expand1S[k%4](q[j-16+k])
		}
		q[j] = sum + addElement(j)
	}
	for j := 18; j < 32; j++ {
		var sum uint32
		for k := 0; k < 14; k++ {
			if k%2 == 0 {
				sum += q[j-16+k]
			} else {
				sum += bits.RotateLeft32(q[j-16+k], expand2R[k/2])
			}
		}
		sum += s4(q[j-2]) + s5(q[j-1])
		q[j] = sum + addElement(j)
	}

	var xl, xh uint32
	for j := 16; j < 24; j++ {
		xl ^= q[j]
	}
	xh = xl
	for j := 24; j < 32; j++ {
		xh ^= q[j]
	}

	for j := 0; j < 8; j++ {
		h[j] = (shift(xh, foldXH[j]) ^ shift(q[16+j], foldQ[j]) ^ m[j]) +
			(xl ^ q[24+j] ^ q[j])
	}
	for j := 8; j < 16; j++ {
		h[j] = bits.RotateLeft32(h[(j+4)%8], j+1) +
			(xh ^ q[16+j] ^ m[j]) +
			(shift(xl, foldXL[j-8]) ^ q[16+(j-1)%8] ^ q[j])
	}
}

func load(m *[16]uint32, b []byte) {
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
}

// Sum256 returns the BMW-256 digest of data.
func Sum256(data []byte) [Size]byte {
	h := initVal
	var m [16]uint32
	bitLen := uint64(len(data)) << 3

	for len(data) >= BlockSize {
		load(&m, data)
		compress(&h, &m)
		data = data[BlockSize:]
	}

	var buf [2 * BlockSize]byte
	n := copy(buf[:], data)
	buf[n] = 0x80
	tail := buf[:BlockSize]
	if n+1 > BlockSize-8 {
		tail = buf[:]
	}
	binary.LittleEndian.PutUint64(tail[len(tail)-8:], bitLen)
	for len(tail) > 0 {
		load(&m, tail)
		compress(&h, &m)
		tail = tail[BlockSize:]
	}

	cv := h
	h = finalVal
	compress(&h, &cv)

	var out [Size]byte
	for i := 0; i < Size/4; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], h[8+i])
	}
	return out
}
