package coinparam

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

var scryptEras = []PoWEra{{Height: 0, Algorithm: "scrypt"}}

// LiteCoinTestNet4Params are the parameters for the litecoin test network 4.
var LiteCoinTestNet4Params = Params{
	Name:          "litetest4",
	NetMagicBytes: 0xf1c8d2fd,
	DefaultPort:   "19335",

	// Chain parameters
	GenesisBlock:       &liteCoinTestNet4GenesisBlock,
	GenesisHash:        &liteCoinTestNet4GenesisHash,
	PoWEras:            scryptEras,
	PowLimit:           scryptPowLimit,
	PowLimitBits:       0x1e0fffff,
	TargetTimePerBlock: time.Second * 150, // 150 seconds
	GenerateSupported:  false,
	TestCoin:           true,
}

// LiteRegNetParams are the parameters for litecoin regtest.
var LiteRegNetParams = Params{
	Name:          "litereg",
	NetMagicBytes: 0xdab5bffa,
	DefaultPort:   "19444",

	// Chain parameters
	GenesisBlock:       &liteCoinRegTestGenesisBlock,
	GenesisHash:        &liteCoinRegTestGenesisHash,
	PoWEras:            scryptEras,
	PowLimit:           regressionPowLimit,
	PowLimitBits:       0x207fffff,
	TargetTimePerBlock: time.Second * 150, // 150 seconds (2.5 min)
	GenerateSupported:  true,
	TestCoin:           true,
}

// liteCoinTestNet4GenesisHash is the first hash in litecoin testnet4
var liteCoinTestNet4GenesisHash = chainhash.Hash([chainhash.HashSize]byte{ // Make go vet happy.
	0xa0, 0x29, 0x3e, 0x4e, 0xeb, 0x3d, 0xa6, 0xe6, 0xf5, 0x6f, 0x81, 0xed,
	0x59, 0x5f, 0x57, 0x88, 0x0d, 0x1a, 0x21, 0x56, 0x9e, 0x13, 0xee, 0xfd,
	0xd9, 0x51, 0x28, 0x4b, 0x5a, 0x62, 0x66, 0x49,
})

// liteCoinMerkleRoot is the coinbase of both litecoin test genesis blocks.
var liteCoinMerkleRoot = chainhash.Hash([chainhash.HashSize]byte{ // Make go vet happy.
	0xd9, 0xce, 0xd4, 0xed, 0x11, 0x30, 0xf7, 0xb7, 0xfa, 0xad, 0x9b, 0xe2,
	0x53, 0x23, 0xff, 0xaf, 0xa3, 0x32, 0x32, 0xa1, 0x7c, 0x3e, 0xdf, 0x6c,
	0xfd, 0x97, 0xbe, 0xe6, 0xba, 0xfb, 0xdd, 0x97,
})

var liteCoinTestNet4GenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{}, // empty
		MerkleRoot: liteCoinMerkleRoot,
		Timestamp:  time.Unix(1486949366, 0),
		Bits:       0x1e0ffff0,
		Nonce:      293345,
	},
}

// ==================== LiteRegNet

// liteCoinRegTestGenesisHash is the first hash in litecoin regtest
var liteCoinRegTestGenesisHash = chainhash.Hash([chainhash.HashSize]byte{ // Make go vet happy.
	0xf9, 0x16, 0xc4, 0x56, 0xfc, 0x51, 0xdf, 0x62,
	0x78, 0x85, 0xd7, 0xd6, 0x74, 0xed, 0x02, 0xdc,
	0x88, 0xa2, 0x25, 0xad, 0xb3, 0xf0, 0x2a, 0xd1,
	0x3e, 0xb4, 0x93, 0x8f, 0xf3, 0x27, 0x08, 0x53,
})

var liteCoinRegTestGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{}, // empty
		MerkleRoot: liteCoinMerkleRoot,
		Timestamp:  time.Unix(1296688602, 0),
		Bits:       0x207fffff,
		Nonce:      0,
	},
}
