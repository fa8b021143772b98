package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mit-dci/litpow/coinparam"
	"github.com/mit-dci/litpow/config"
	"github.com/mit-dci/litpow/headerfile"
	"github.com/mit-dci/litpow/miner"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func testConf(t *testing.T, net string) *config.Config {
	conf, err := config.New()
	require.NoError(t, err)
	conf.Net = net
	conf.Miner.Workers = 1
	conf.Miner.Count = 16
	return conf
}

func TestMineGenesisTemplate(t *testing.T) {
	var out bytes.Buffer
	err := mine(context.Background(), testConf(t, "litereg"), &mineOptions{}, &out)
	require.NoError(t, err)
	// nonce 0 already meets the regtest target
	require.True(t, strings.HasPrefix(out.String(), "nonce 0\n"), out.String())
}

func TestMineHeaderTemplate(t *testing.T) {
	header := coinparam.LiteRegNetParams.GenesisBlock.Header
	header.Nonce = 1
	var buf bytes.Buffer
	require.NoError(t, header.Serialize(&buf))

	var out bytes.Buffer
	opts := &mineOptions{Header: hex.EncodeToString(buf.Bytes())}
	require.NoError(t, mine(context.Background(), testConf(t, "litereg"), opts, &out))
	require.True(t, strings.HasPrefix(out.String(), "nonce 0\n"), out.String())
}

func TestMineErrors(t *testing.T) {
	ctx := context.Background()

	err := mine(ctx, testConf(t, "mona"), &mineOptions{}, new(bytes.Buffer))
	require.Error(t, err)

	err = mine(ctx, testConf(t, "litereg"), &mineOptions{Header: "abcd"}, new(bytes.Buffer))
	require.Error(t, err)

	// nothing in 16 nonces meets a mainnet target
	conf := testConf(t, "litereg")
	err = mine(ctx, conf, &mineOptions{Bits: 0x1e0ffff0}, new(bytes.Buffer))
	require.Equal(t, miner.ErrNonceSpaceExhausted, errors.Cause(err))
}

func TestMineChain(t *testing.T) {
	conf := testConf(t, "litereg")
	conf.Miner.Count = 64
	path := filepath.Join(t.TempDir(), "headers")

	var out bytes.Buffer
	opts := &mineOptions{Chain: path, Blocks: 3}
	require.NoError(t, mineChain(context.Background(), conf, opts, &out))
	require.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 3)

	hf, err := headerfile.Open(path, &coinparam.LiteRegNetParams)
	require.NoError(t, err)
	defer hf.Close()
	height, err := hf.TipHeight()
	require.NoError(t, err)
	require.Equal(t, int32(3), height)
	require.NoError(t, hf.Verify())
}
