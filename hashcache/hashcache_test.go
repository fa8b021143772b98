package hashcache

import (
	"path/filepath"
	"testing"

	"github.com/boltdb/bolt"
	"github.com/mit-dci/litpow/powhash"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T, path string) *Cache {
	c, err := Open(path, 0)
	require.NoError(t, err)
	return c
}

func count(alg, result string) float64 {
	return testutil.ToFloat64(lookups.WithLabelValues(alg, result))
}

func TestSumComputesOnce(t *testing.T) {
	c := open(t, filepath.Join(t.TempDir(), "hash.db"))
	defer c.Close()

	a, err := powhash.Lookup("lyra2z")
	require.NoError(t, err)
	in := []byte("abc")
	want, err := a.Sum(in)
	require.NoError(t, err)

	misses, mem := count("lyra2z", "miss"), count("lyra2z", "memory")

	got, err := c.Sum(a, in)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, misses+1, count("lyra2z", "miss"))

	got, err = c.Sum(a, in)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, mem+1, count("lyra2z", "memory"))

	n, err := c.Len("lyra2z")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestDiskSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hash.db")
	c := open(t, path)
	var d [powhash.Size]byte
	d[0], d[31] = 1, 2
	require.NoError(t, c.Put("scrypt", []byte("header"), d))
	require.NoError(t, c.Close())

	c = open(t, path)
	defer c.Close()
	disk := count("scrypt", "disk")

	got, ok, err := c.Get("scrypt", []byte("header"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, d, got)
	require.Equal(t, disk+1, count("scrypt", "disk"))

	// promoted to memory
	mem := count("scrypt", "memory")
	_, ok, err = c.Get("scrypt", []byte("header"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, mem+1, count("scrypt", "memory"))
}

func TestAlgorithmsAreSeparate(t *testing.T) {
	c := open(t, filepath.Join(t.TempDir(), "hash.db"))
	defer c.Close()

	var d [powhash.Size]byte
	require.NoError(t, c.Put("lyra2re", []byte("x"), d))
	_, ok, err := c.Get("lyra2rev2", []byte("x"))
	require.NoError(t, err)
	require.False(t, ok)

	n, err := c.Len("lyra2rev2")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestBadDigest(t *testing.T) {
	c := open(t, filepath.Join(t.TempDir(), "hash.db"))
	defer c.Close()

	err := c.db.Update(func(btx *bolt.Tx) error {
		b, err := btx.CreateBucketIfNotExists([]byte("lyra2z"))
		if err != nil {
			return err
		}
		return b.Put(key([]byte("short")), []byte{1, 2, 3})
	})
	require.NoError(t, err)

	_, _, err = c.Get("lyra2z", []byte("short"))
	require.Equal(t, ErrBadDigest, errors.Cause(err))
}
