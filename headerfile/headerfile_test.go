package headerfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/mit-dci/litpow/coinparam"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var regtest = &coinparam.LiteRegNetParams

// nextHeader builds the header after the litereg genesis. Nonces 0, 1 and 4
// meet the regtest target; 2, 3 and 5 don't.
func nextHeader(nonce uint32) *wire.BlockHeader {
	g := regtest.GenesisBlock.Header
	return &wire.BlockHeader{
		Version:    1,
		PrevBlock:  g.BlockHash(),
		MerkleRoot: g.MerkleRoot,
		Timestamp:  time.Unix(g.Timestamp.Unix()+1, 0),
		Bits:       0x207fffff,
		Nonce:      nonce,
	}
}

func openTemp(t *testing.T) (*File, string) {
	path := filepath.Join(t.TempDir(), "headers")
	hf, err := Open(path, regtest)
	require.NoError(t, err)
	return hf, path
}

func TestOpenWritesGenesis(t *testing.T) {
	hf, path := openTemp(t)
	defer hf.Close()

	height, tip, err := hf.Tip()
	require.NoError(t, err)
	require.Equal(t, int32(0), height)
	require.Equal(t, *regtest.GenesisHash, tip.BlockHash())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(80), info.Size())
}

func TestAppend(t *testing.T) {
	hf, path := openTemp(t)

	height, err := hf.Append(nextHeader(0))
	require.NoError(t, err)
	require.Equal(t, int32(1), height)

	got, err := hf.HeaderAtHeight(1)
	require.NoError(t, err)
	require.Equal(t, nextHeader(0).BlockHash(), got.BlockHash())
	require.NoError(t, hf.Verify())

	found, err := hf.FindHeader(regtest.GenesisBlock.Header)
	require.NoError(t, err)
	require.Equal(t, int32(0), found)

	_, err = hf.FindHeader(*nextHeader(1))
	require.Equal(t, ErrNotFound, errors.Cause(err))
	_, err = hf.HeaderAtHeight(2)
	require.Equal(t, ErrNotFound, errors.Cause(err))

	// survives reopening
	require.NoError(t, hf.Close())
	hf, err = Open(path, regtest)
	require.NoError(t, err)
	defer hf.Close()
	tipHeight, err := hf.TipHeight()
	require.NoError(t, err)
	require.Equal(t, int32(1), tipHeight)
}

func TestAppendRejects(t *testing.T) {
	hf, _ := openTemp(t)
	defer hf.Close()

	_, err := hf.Append(nextHeader(2))
	require.Equal(t, coinparam.ErrHighHash, errors.Cause(err))

	orphan := nextHeader(0)
	orphan.PrevBlock[0] ^= 1
	_, err = hf.Append(orphan)
	require.Equal(t, ErrDoesNotLink, errors.Cause(err))

	// the same header twice doesn't link to itself
	_, err = hf.Append(nextHeader(1))
	require.NoError(t, err)
	_, err = hf.Append(nextHeader(1))
	require.Equal(t, ErrDoesNotLink, errors.Cause(err))
}

func TestTruncatesPartialHeader(t *testing.T) {
	hf, path := openTemp(t)
	require.NoError(t, hf.Close())

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	require.NoError(t, err)
	_, err = f.Write(make([]byte, 30))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	hf, err = Open(path, regtest)
	require.NoError(t, err)
	defer hf.Close()
	height, err := hf.TipHeight()
	require.NoError(t, err)
	require.Equal(t, int32(0), height)
}

func TestNoGenesis(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "h"), &coinparam.MonacoinParams)
	require.Equal(t, ErrNoGenesis, errors.Cause(err))
}
