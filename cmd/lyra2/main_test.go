package main

import (
	"bytes"
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	flags "github.com/jessevdk/go-flags"
	"github.com/mit-dci/litpow/coinparam"
	"github.com/mit-dci/litpow/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func testApp(t *testing.T) (*app, *bytes.Buffer) {
	conf, err := config.New()
	require.NoError(t, err)
	conf.HomeDir = t.TempDir()
	var out bytes.Buffer
	return newApp(conf, &out), &out
}

func run(t *testing.T, args ...string) (string, error) {
	a, out := testApp(t)
	defer a.close()
	_, err := newParser(a, flags.None, false).ParseArgs(args)
	return out.String(), err
}

func TestSum(t *testing.T) {
	out, err := run(t, "sum", "abc")
	require.NoError(t, err)
	require.Equal(t, "8f63758bd178f014ea3fd4df09ff0a61646dc574a0b6bcf2890ec529a6a7360c\n", out)

	out, err = run(t, "-k", "48", "-r", "3", "sum", "脇山珠美ちゃんかわいい！")
	require.NoError(t, err)
	require.Equal(t, "c937cfe0ee21a8e7c1d1871245ea717457edbee2de8bf544e50f807349a3460c"+
		"52cb6bb10bd0b7328504bc2ad984e1f3\n", out)

	out, err = run(t, "sum", "--hex", "--salt", "616263", "616263")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "8f63758b"), out)

	out, err = run(t, "--lyra2", "3", "sum", "abc")
	require.NoError(t, err)
	require.Equal(t, "0c36444f2885b72f3528af3b1f59174f8fd5c20b712988306962784c5f8ac462\n", out)
}

func TestSumAsk(t *testing.T) {
	old := askPassword
	defer func() { askPassword = old }()
	askPassword = func() ([]byte, error) { return []byte("abc"), nil }

	out, err := run(t, "sum", "--ask")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "8f63758b"), out)
}

func TestSumRandomSalt(t *testing.T) {
	out, err := run(t, "sum", "--random-salt", "abc")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "salt "))
	require.Len(t, strings.TrimPrefix(lines[0], "salt "), 32)
	require.NotEqual(t, "8f63758bd178f014ea3fd4df09ff0a61646dc574a0b6bcf2890ec529a6a7360c", lines[1])
}

func TestSumErrors(t *testing.T) {
	_, err := run(t, "-r", "2", "sum", "abc")
	require.Error(t, err)

	_, err = run(t, "-k", "100000000", "sum", "abc")
	require.Error(t, err)

	_, err = run(t, "sum", "--hex", "zz")
	require.Error(t, err)

	_, err = run(t, "--lyra2", "3", "-r", "6", "sum", "abc")
	require.Error(t, err)
}

func TestPow(t *testing.T) {
	const v2 = "80ec5344227c5d0bfd63038f00c3fe5aecddd1a1122043b0a90b5fd67b1e8f32"

	out, err := run(t, "pow", "-a", "lyra2rev2", "abc")
	require.NoError(t, err)
	require.Equal(t, "lyra2rev2 "+v2+"\n", out)

	out, err = run(t, "--net", "vtc", "pow", "--height", "400000", "abc")
	require.NoError(t, err)
	require.Equal(t, "lyra2rev2 "+v2+"\n", out)

	const v3 = "4e445087e28d294b3074e98fee860fb73d248a63150ea2d42bfeddd21c0b89ef"
	out, err = run(t, "--net", "vtc", "pow", "--height", "1080000", "abc")
	require.NoError(t, err)
	require.Equal(t, "lyra2rev3 "+v3+"\n", out)

	_, err = run(t, "pow", "-a", "x11", "abc")
	require.Error(t, err)
	_, err = run(t, "--net", "btc", "pow", "abc")
	require.Error(t, err)
}

func TestPowCached(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cache.db")
	for i := 0; i < 2; i++ {
		out, err := run(t, "--cache.file", file, "pow", "-a", "lyra2z", "abc")
		require.NoError(t, err)
		require.Equal(t, "lyra2z cf9d13829886efd875cb0d01e44a80288d478346dd721fac0e6e04fe5774879c\n", out)
	}
}

func headerHex(t *testing.T, p *coinparam.Params, nonceDelta uint32) string {
	header := p.GenesisBlock.Header
	header.Nonce += nonceDelta
	var buf bytes.Buffer
	require.NoError(t, header.Serialize(&buf))
	return hex.EncodeToString(buf.Bytes())
}

func TestCheck(t *testing.T) {
	out, err := run(t, "--net", "vtc", "check", headerHex(t, &coinparam.VertcoinParams, 0))
	require.NoError(t, err)
	require.Contains(t, out, "4d96a915f49d40b1e5c2844d1ee2dccb90013a990ccea12c492d22110489f0c4")
	require.Contains(t, out, "scrypt-n11")
	require.True(t, strings.HasSuffix(out, "OK\n"), out)

	out, err = run(t, "--net", "vtc", "check", headerHex(t, &coinparam.VertcoinParams, 1))
	require.Equal(t, coinparam.ErrHighHash, errors.Cause(err))
	require.True(t, strings.HasSuffix(out, "FAIL\n"), out)

	_, err = run(t, "check", "00")
	require.Error(t, err)
}

func TestGraph(t *testing.T) {
	out, err := run(t, "-r", "3", "-c", "1", "graph", "--counts", "pw")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "digraph lyra2"), out)
	require.Contains(t, out, "row   2 ")

	file := filepath.Join(t.TempDir(), "g.dot")
	out, err = run(t, "graph", "-o", file, "pw")
	require.NoError(t, err)
	require.Empty(t, out)
	require.FileExists(t, file)
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "lyra2rev2\tlyra2(t=1 r=4 c=4)")
	require.Contains(t, out, "lyra2rev3\tlyra2v3(t=1 r=4 c=4)")
	require.Contains(t, out, "vtc\tlyra2rev3@1080000 lyra2rev2@347000 lyra2re-vtc@208301 scrypt-n11@0")
}

func TestShellparse(t *testing.T) {
	a, out := testApp(t)
	defer a.close()

	require.False(t, a.shellparse([]string{"sum", "abc"}))
	require.True(t, strings.HasPrefix(out.String(), "8f63758b"), out.String())

	out.Reset()
	require.False(t, a.shellparse([]string{"help"}))
	require.Contains(t, out.String(), "Usage")

	out.Reset()
	require.False(t, a.shellparse([]string{"bogus"}))
	require.Contains(t, out.String(), "bogus error:")

	require.True(t, a.shellparse([]string{"exit"}))
	require.True(t, a.shellparse([]string{"quit"}))
}
