package coinparam

import "time"

// MonacoinParams hash with scrypt until the Lyra2REv2 fork. Only the proof
// of work schedule is kept.
var MonacoinParams = Params{
	Name: "mona",

	PoWEras: []PoWEra{
		{Height: 450000, Algorithm: "lyra2rev2"},
		{Height: 0, Algorithm: "scrypt"},
	},
	PowLimit:           scryptPowLimit,
	PowLimitBits:       0x1e0fffff,
	TargetTimePerBlock: time.Second * 90,
}

var MonacoinRegTestParams = Params{
	Name: "monareg",

	PoWEras:            []PoWEra{{Height: 0, Algorithm: "lyra2rev2"}},
	PowLimit:           regressionPowLimit,
	PowLimitBits:       0x207fffff,
	TargetTimePerBlock: time.Second * 90,
	GenerateSupported:  true,
	TestCoin:           true,
}
