package coinparam

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// vertcoinEras is Vertcoin's mainnet schedule: scrypt N=2^11 at launch,
// then Vertcoin's own Lyra2RE, Lyra2REv2 and Lyra2REv3 at each fork.
var vertcoinEras = []PoWEra{
	{Height: 1080000, Algorithm: "lyra2rev3"},
	{Height: 347000, Algorithm: "lyra2rev2"},
	{Height: 208301, Algorithm: "lyra2re-vtc"},
	{Height: 0, Algorithm: "scrypt-n11"},
}

var VertcoinTestNetParams = Params{
	Name:          "vtctest",
	NetMagicBytes: 0x74726576,
	DefaultPort:   "15889",

	// Chain parameters
	GenesisBlock:       &VertcoinTestnetGenesisBlock,
	GenesisHash:        &VertcoinTestnetGenesisHash,
	PoWEras:            []PoWEra{{Height: 0, Algorithm: "lyra2rev2"}},
	PowLimit:           scryptPowLimit,
	PowLimitBits:       0x1e0fffff,
	TargetTimePerBlock: time.Second * 150, // 150 seconds
	GenerateSupported:  false,
	TestCoin:           true,
}

var VertcoinRegTestParams = Params{
	Name:          "vtcreg",
	NetMagicBytes: 0xdab5bffa,
	DefaultPort:   "18444",

	// Chain parameters
	GenesisBlock:       &VertcoinRegTestnetGenesisBlock,
	GenesisHash:        &VertcoinRegTestnetGenesisHash,
	PoWEras:            vertcoinEras,
	PowLimit:           regressionPowLimit,
	PowLimitBits:       0x207fffff,
	TargetTimePerBlock: time.Second * 150, // 150 seconds
	GenerateSupported:  true,
	TestCoin:           true,
}

var VertcoinParams = Params{
	Name:          "vtc",
	NetMagicBytes: 0xdab5bffa,
	DefaultPort:   "5889",

	// Chain parameters
	GenesisBlock:       &VertcoinGenesisBlock,
	GenesisHash:        &VertcoinGenesisHash,
	PoWEras:            vertcoinEras,
	PowLimit:           scryptPowLimit,
	PowLimitBits:       0x1e0fffff,
	TargetTimePerBlock: time.Second * 150, // 150 seconds
	GenerateSupported:  false,
}

// ==================== VertcoinTestnet

// VertcoinTestnetGenesisHash
var VertcoinTestnetGenesisHash = chainhash.Hash([chainhash.HashSize]byte{
	0xc9, 0xd2, 0x7a, 0x49, 0x47, 0x27, 0x2e, 0xe3, 0xc2,
	0xe8, 0x1a, 0x74, 0xb6, 0x79, 0xac, 0xec, 0x5d, 0x85,
	0xa4, 0x6a, 0x97, 0x16, 0x79, 0xf0, 0xc8, 0x64, 0x7a,
	0xeb, 0x4f, 0xf2, 0xe8, 0xce,
})

// vertcoinMerkleRoot is shared by all three Vertcoin genesis blocks.
var vertcoinMerkleRoot = chainhash.Hash([chainhash.HashSize]byte{
	0xe7, 0x23, 0x01, 0xfc, 0x49, 0x32, 0x3e, 0xe1, 0x51,
	0xcf, 0x10, 0x48, 0x23, 0x0f, 0x03, 0x2c, 0xa5, 0x89,
	0x75, 0x3b, 0xa7, 0x08, 0x62, 0x22, 0xa5, 0xc0, 0x23,
	0xe3, 0xa0, 0x8c, 0xf3, 0x4a,
})

var VertcoinTestnetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{}, // empty
		MerkleRoot: vertcoinMerkleRoot,
		Timestamp:  time.Unix(1481291250, 0),
		Bits:       0x1e0ffff0,
		Nonce:      915027,
	},
}

// ==================== Vertcoin

// VertcoinGenesisHash
var VertcoinGenesisHash = chainhash.Hash([chainhash.HashSize]byte{
	0xc4, 0xf0, 0x89, 0x04, 0x11, 0x22, 0x2d, 0x49, 0x2c, 0xa1,
	0xce, 0x0c, 0x99, 0x3a, 0x01, 0x90, 0xcb, 0xdc, 0xe2, 0x1e,
	0x4d, 0x84, 0xc2, 0xe5, 0xb1, 0x40, 0x9d, 0xf4, 0x15, 0xa9,
	0x96, 0x4d,
})

var VertcoinGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{}, // empty
		MerkleRoot: vertcoinMerkleRoot,
		Timestamp:  time.Unix(1389311371, 0),
		Bits:       0x1e0ffff0,
		Nonce:      5749262,
	},
}

// ==================== VertcoinRegTestnet

// VertcoinRegTestnetGenesisHash
var VertcoinRegTestnetGenesisHash = chainhash.Hash([chainhash.HashSize]byte{
	0xce, 0x85, 0x4a, 0xdc, 0x33, 0xe8, 0x7c, 0xc1, 0x6f,
	0xbc, 0x32, 0x19, 0x1a, 0x7b, 0x02, 0x17, 0x73, 0xc9,
	0x06, 0x72, 0x86, 0x66, 0x0d, 0x65, 0xd1, 0xbb, 0xeb,
	0x47, 0xb0, 0xc0, 0x99, 0x23,
})

var VertcoinRegTestnetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{}, // empty
		MerkleRoot: vertcoinMerkleRoot,
		Timestamp:  time.Unix(1296688602, 0),
		Bits:       0x207fffff,
		Nonce:      2,
	},
}
