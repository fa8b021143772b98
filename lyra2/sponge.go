package lyra2

import (
	"encoding/binary"
	"math/bits"
)

const (
	// blockLenInt64 is the number of words in one matrix block, and the
	// width of the sponge's duplexing rate.
	blockLenInt64 = 12
	blockLenBytes = blockLenInt64 * 8

	// Width of the rate used while absorbing the password and salt. Kept
	// compatible with Blake2b.
	blockLenBlake2SafeInt64 = 8
	blockLenBlake2SafeBytes = blockLenBlake2SafeInt64 * 8

	// K, len(pwd), len(salt), T, R, C
	basilLenInt64 = 6

	fullRounds = 12
)

var blake2bIV = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f,
	0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// sponge is the 16 word duplex state. Words 0-11 are the rate, 12-15 are
// never touched except by the permutation. Words 8-15 start as the Blake2b IV.
type sponge [16]uint64

func newSponge() *sponge {
	s := new(sponge)
	copy(s[8:], blake2bIV[:])
	return s
}

func (s *sponge) g(a, b, c, d int) {
	s[a] += s[b]
	s[d] = bits.RotateLeft64(s[d]^s[a], -32)
	s[c] += s[d]
	s[b] = bits.RotateLeft64(s[b]^s[c], -24)
	s[a] += s[b]
	s[d] = bits.RotateLeft64(s[d]^s[a], -16)
	s[c] += s[d]
	s[b] = bits.RotateLeft64(s[b]^s[c], -63)
}

func (s *sponge) round() {
	s.g(0, 4, 8, 12)
	s.g(1, 5, 9, 13)
	s.g(2, 6, 10, 14)
	s.g(3, 7, 11, 15)

	s.g(0, 5, 10, 15)
	s.g(1, 6, 11, 12)
	s.g(2, 7, 8, 13)
	s.g(3, 4, 9, 14)
}

// permute applies the full 12 round permutation.
func (s *sponge) permute() {
	for i := 0; i < fullRounds; i++ {
		s.round()
	}
}

// absorbBlock xors a full 12 word block into the rate and permutes.
func (s *sponge) absorbBlock(in []uint64) {
	_ = in[blockLenInt64-1]
	for i := 0; i < blockLenInt64; i++ {
		s[i] ^= in[i]
	}
	s.permute()
}

// absorbBlockBlake2Safe xors 8 words into the rate and permutes.
func (s *sponge) absorbBlockBlake2Safe(in []uint64) {
	_ = in[blockLenBlake2SafeInt64-1]
	for i := 0; i < blockLenBlake2SafeInt64; i++ {
		s[i] ^= in[i]
	}
	s.permute()
}

// squeezeBlock copies the rate into out and applies one round.
func (s *sponge) squeezeBlock(out []uint64) {
	copy(out, s[:blockLenInt64])
	s.round()
}

// duplexBlock absorbs in with one round and writes in^rand to out.
func (s *sponge) duplexBlock(in, out []uint64) {
	for i := 0; i < blockLenInt64; i++ {
		s[i] ^= in[i]
	}
	s.round()
	for i := 0; i < blockLenInt64; i++ {
		out[i] = in[i] ^ s[i]
	}
}

// duplexSetup absorbs in+inout with one round, overwrites out with in^rand
// and feeds rand back into inout rotated by one word. inout may alias in.
func (s *sponge) duplexSetup(in, inout, out []uint64) {
	for i := 0; i < blockLenInt64; i++ {
		s[i] ^= in[i] + inout[i]
	}
	s.round()
	for i := 0; i < blockLenInt64; i++ {
		out[i] = in[i] ^ s[i]
	}
	s.feedback(inout)
}

// duplex is duplexSetup for the wandering phase: out is xored with rand
// rather than overwritten. Any of the three blocks may alias.
func (s *sponge) duplex(in, inout, out []uint64) {
	for i := 0; i < blockLenInt64; i++ {
		s[i] ^= in[i] + inout[i]
	}
	s.round()
	for i := 0; i < blockLenInt64; i++ {
		out[i] ^= s[i]
	}
	s.feedback(inout)
}

// feedback xors rand rotated right by one word into b: b[i] ^= rand[i-1].
func (s *sponge) feedback(b []uint64) {
	b[0] ^= s[blockLenInt64-1]
	for i := 1; i < blockLenInt64; i++ {
		b[i] ^= s[i-1]
	}
}

// squeeze fills out with the rate, permuting after every 96 byte block.
func (s *sponge) squeeze(out []byte) {
	var buf [blockLenBytes]byte
	for len(out) > 0 {
		for i := 0; i < blockLenInt64; i++ {
			binary.LittleEndian.PutUint64(buf[i*8:], s[i])
		}
		n := copy(out, buf[:])
		out = out[n:]
		s.permute()
	}
	for i := range buf {
		buf[i] = 0
	}
}

func (s *sponge) wipe() {
	for i := range s {
		s[i] = 0
	}
}
