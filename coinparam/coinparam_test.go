package coinparam

import (
	"testing"

	"github.com/mit-dci/litpow/powhash"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/vertcoin/lyra2re"
)

func TestGenesisProofOfWork(t *testing.T) {
	tests := []struct {
		p    *Params
		hash string // scrypt digest, big-endian
	}{
		{&VertcoinParams, "000005cc425e3c06dd1416866440a70dc9eb4710b2e9c71653c8e197493cbbb9"},
		{&VertcoinRegTestParams, "344811321881c2ad7031347f999837b875c4bab67c91fcb86c610585611a3f72"},
		{&LiteCoinTestNet4Params, "000006cc0225c4b4c387604dd670b1ff4b95af0f46f86bef805c0d085b60de64"},
		{&LiteRegNetParams, "5adbca3495032eb0f2344f78ad238a3abb56d335b1680f5c289276e0d25a3479"},
	}
	for _, tt := range tests {
		t.Run(tt.p.Name, func(t *testing.T) {
			header := tt.p.GenesisBlock.Header
			require.Equal(t, *tt.p.GenesisHash, header.BlockHash())

			got, err := tt.p.HeaderHash(&header, 0)
			require.NoError(t, err)
			require.Equal(t, tt.hash, got.String())

			require.NoError(t, CheckProofOfWork(&header, 0, tt.p))
		})
	}
}

func TestHighHash(t *testing.T) {
	header := VertcoinGenesisBlock.Header
	header.Nonce++
	err := CheckProofOfWork(&header, 0, &VertcoinParams)
	require.Equal(t, ErrHighHash, errors.Cause(err))

	header = liteCoinTestNet4GenesisBlock.Header
	header.Nonce++
	err = CheckProofOfWork(&header, 0, &LiteCoinTestNet4Params)
	require.Equal(t, ErrHighHash, errors.Cause(err))
}

func TestBadTargets(t *testing.T) {
	header := VertcoinGenesisBlock.Header

	// regtest difficulty is far below mainnet's limit
	header.Bits = 0x207fffff
	err := CheckProofOfWork(&header, 0, &VertcoinParams)
	require.Equal(t, ErrTargetAboveLimit, errors.Cause(err))

	for _, bits := range []uint32{0, 0x1d000000, 0x1d800001} {
		header.Bits = bits
		err = CheckProofOfWork(&header, 0, &VertcoinParams)
		require.Equal(t, ErrBadTarget, errors.Cause(err), "bits %08x", bits)
	}
}

func TestPoWAlgorithm(t *testing.T) {
	tests := []struct {
		p      *Params
		height int32
		want   string
	}{
		{&VertcoinParams, 0, "scrypt-n11"},
		{&VertcoinParams, 208300, "scrypt-n11"},
		{&VertcoinParams, 208301, "lyra2re-vtc"},
		{&VertcoinParams, 346999, "lyra2re-vtc"},
		{&VertcoinParams, 347000, "lyra2rev2"},
		{&VertcoinParams, 1079999, "lyra2rev2"},
		{&VertcoinParams, 1080000, "lyra2rev3"},
		{&VertcoinRegTestParams, 208301, "lyra2re-vtc"},
		{&VertcoinTestNetParams, 0, "lyra2rev2"},
		{&MonacoinParams, 449999, "scrypt"},
		{&MonacoinParams, 450000, "lyra2rev2"},
		{&LiteRegNetParams, 100, "scrypt"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.p.PoWAlgorithm(tt.height).Name,
			"%s at %d", tt.p.Name, tt.height)
	}
}

func TestPoWFunctionEras(t *testing.T) {
	b := make([]byte, 80)
	early, err := VertcoinParams.PoWFunction(b, 1)
	require.NoError(t, err)
	late, err := VertcoinParams.PoWFunction(b, 400000)
	require.NoError(t, err)
	require.NotEqual(t, early, late)

	// the middle era hashes with Vertcoin's Lyra2RE, not the later variant
	mid, err := VertcoinParams.PoWFunction(b, 300000)
	require.NoError(t, err)
	want, err := lyra2re.Sum(b)
	require.NoError(t, err)
	require.Equal(t, want, mid[:])
	other, err := powhash.Lyra2RE(b)
	require.NoError(t, err)
	require.NotEqual(t, other[:], mid[:])

	mona, err := MonacoinRegTestParams.PoWFunction(b, 0)
	require.NoError(t, err)
	require.Equal(t, late, mona)
}

func TestRegistry(t *testing.T) {
	require.Equal(t, []string{
		"litereg", "litetest4", "mona", "monareg", "vtc", "vtcreg", "vtctest",
	}, Networks())

	p, err := Lookup("vtc")
	require.NoError(t, err)
	require.Equal(t, &VertcoinParams, p)

	_, err = Lookup("btc")
	require.Equal(t, ErrUnknownNet, errors.Cause(err))

	err = Register(&Params{Name: "vtc", PoWEras: scryptEras})
	require.Equal(t, ErrDuplicateNet, errors.Cause(err))
}

func TestRegisterBadEras(t *testing.T) {
	bad := [][]PoWEra{
		nil,
		{{Height: 0, Algorithm: "x11"}},
		{{Height: 10, Algorithm: "scrypt"}},
		{{Height: 0, Algorithm: "scrypt"}, {Height: 10, Algorithm: "lyra2z"}},
		{{Height: 10, Algorithm: "scrypt"}, {Height: 10, Algorithm: "lyra2z"}, {Height: 0, Algorithm: "scrypt"}},
	}
	for i, eras := range bad {
		err := Register(&Params{Name: "bad", PoWEras: eras})
		require.Equal(t, ErrBadEras, errors.Cause(err), "case %d", i)
	}
	_, err := Lookup("bad")
	require.Error(t, err)
}

func TestWork(t *testing.T) {
	// difficulty 1 at 0x207fffff is two hashes
	require.Equal(t, "2", Work(0x207fffff).String())
	require.True(t, Work(0x1e0ffff0).Cmp(Work(0x207fffff)) > 0)
}
