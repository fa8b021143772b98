package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	flags "github.com/jessevdk/go-flags"
	"github.com/mit-dci/litpow/consts"
	"github.com/mit-dci/litpow/lyra2"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (*Config, []string, error) {
	conf, err := New()
	require.NoError(t, err)
	rest, err := Load(conf, NewConfigParser(conf, flags.None), args)
	return conf, rest, err
}

func TestDefaultsAndHomeDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	conf, rest, err := load(t, "--dir", dir, "extra")
	require.NoError(t, err)
	require.Equal(t, []string{"extra"}, rest)

	require.Equal(t, consts.DefaultNet, conf.Net)
	require.Equal(t, uint64(consts.DefaultRows), conf.Cost.Rows)
	require.Equal(t, 0, conf.Verbosity())

	b, err := ioutil.ReadFile(filepath.Join(dir, DefaultConfigFilename))
	require.NoError(t, err)
	require.Equal(t, "net=vtc\n", string(b))
}

func TestFileThenFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.conf")
	ini := "net=litereg\nrows=16\ncache.file=/tmp/x.db\n"
	require.NoError(t, ioutil.WriteFile(file, []byte(ini), 0600))

	conf, _, err := load(t, "--config", file, "-r", "8", "-vv")
	require.NoError(t, err)
	require.Equal(t, "litereg", conf.Net)
	require.Equal(t, uint64(8), conf.Cost.Rows)
	require.Equal(t, "/tmp/x.db", conf.Cache.File)
	require.Equal(t, 2, conf.Verbosity())

	p := conf.Cost.Params()
	require.Equal(t, uint64(8), p.Rows)
	require.Equal(t, uint64(consts.DefaultCols), p.Cols)
	require.Equal(t, lyra2.V2, p.Version)

	conf, _, err = load(t, "--config", file, "--lyra2", "3")
	require.NoError(t, err)
	require.Equal(t, lyra2.V3, conf.Cost.Params().Version)
	require.Equal(t, uint64(16), conf.Cost.Params().Rows)

	_, _, err = load(t, "--config", file, "--lyra2", "4")
	require.Error(t, err)
}

func TestBadConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.conf")
	require.NoError(t, ioutil.WriteFile(file, []byte("nosuchoption=1\n"), 0600))
	_, _, err := load(t, "--config", file)
	require.Error(t, err)
}

func TestNewIsACopy(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	a.Net = "mona"
	a.Cost.Rows = 99
	a.Verbose = append(a.Verbose, true)

	b, err := New()
	require.NoError(t, err)
	require.Equal(t, Default.Net, b.Net)
	require.Equal(t, Default.Cost, b.Cost)
	require.Empty(t, b.Verbose)
}
