// Package cubehash implements CubeHash16/32-256, the variant used by the
// Lyra2REv2 proof-of-work chain.
package cubehash

import (
	"encoding/binary"
	"math/bits"
)

const (
	// Size of a digest in bytes.
	Size = 32
	// BlockSize is the number of input bytes consumed per 16 rounds.
	BlockSize = 32

	roundsPerBlock = 16
	finalBlocks    = 10
)

// state after the 10*16 initialisation rounds for h=256, b=32, r=16
var iv = [32]uint32{
	0xEA2BD4B4, 0xCCD6F29F, 0x63117E71, 0x35481EAE,
	0x22512D5B, 0xE5D94E63, 0x7E624131, 0xF4CC12BE,
	0xC2D0B696, 0x42AF2070, 0xD0720C35, 0x3361DA8C,
	0x28CCECA4, 0x8EF8AD83, 0x4680AC00, 0x40E5FBAB,
	0xD89041C3, 0x6107FBD5, 0x6C859D41, 0xF0B26679,
	0x09392549, 0x5FA25603, 0x65C892FD, 0x93CB6285,
	0x2AF2B5AE, 0x9E4B4E60, 0x774ABFDD, 0x85254725,
	0x15815AEB, 0x4AB6AAD6, 0x9CDAF8AF, 0xD6032C0A,
}

type state [32]uint32

func (x *state) inputBlock(b []byte) {
	for i := 0; i < BlockSize/4; i++ {
		x[i] ^= binary.LittleEndian.Uint32(b[i*4:])
	}
}

// round is one CubeHash round. The state is viewed as x[ijklm] with i the
// top bit: the low half feeds the high half through adds, rotations and
// swaps along one index bit at a time.
func (x *state) round() {
	for i := 0; i < 16; i++ {
		x[i+16] += x[i]
		x[i] = bits.RotateLeft32(x[i], 7)
	}
	for i := 0; i < 8; i++ {
		x[i], x[i+8] = x[i+8], x[i]
	}
	for i := 0; i < 16; i++ {
		x[i] ^= x[i+16]
	}
	for i := 16; i < 32; i += 4 {
		x[i], x[i+2] = x[i+2], x[i]
		x[i+1], x[i+3] = x[i+3], x[i+1]
	}
	for i := 0; i < 16; i++ {
		x[i+16] += x[i]
		x[i] = bits.RotateLeft32(x[i], 11)
	}
	for i := 0; i < 16; i += 8 {
		x[i], x[i+4] = x[i+4], x[i]
		x[i+1], x[i+5] = x[i+5], x[i+1]
		x[i+2], x[i+6] = x[i+6], x[i+2]
		x[i+3], x[i+7] = x[i+7], x[i+3]
	}
	for i := 0; i < 16; i++ {
		x[i] ^= x[i+16]
	}
	for i := 16; i < 32; i += 2 {
		x[i], x[i+1] = x[i+1], x[i]
	}
}

func (x *state) rounds() {
	for r := 0; r < roundsPerBlock; r++ {
		x.round()
	}
}

// Sum256 returns the CubeHash16/32-256 digest of data.
func Sum256(data []byte) [Size]byte {
	x := state(iv)

	for len(data) >= BlockSize {
		x.inputBlock(data)
		x.rounds()
		data = data[BlockSize:]
	}

	var last [BlockSize]byte
	copy(last[:], data)
	last[len(data)] = 0x80
	x.inputBlock(last[:])
	x.rounds()

	x[31] ^= 1
	for i := 0; i < finalBlocks; i++ {
		x.rounds()
	}

	var out [Size]byte
	for i := 0; i < Size/4; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], x[i])
	}
	return out
}
