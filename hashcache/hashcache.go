// Package hashcache memoizes proof-of-work digests. Lookups go to an
// in-memory freecache first and then to a bolt file with one bucket per
// algorithm.
package hashcache

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/coocood/freecache"
	"github.com/dchest/blake256"
	"github.com/mit-dci/litpow/logging"
	"github.com/mit-dci/litpow/powhash"
	"github.com/pkg/errors"
)

// MinMemBytes is the smallest memory tier freecache accepts.
const MinMemBytes = 512 * 1024

// ErrBadDigest is a stored value that is not powhash.Size bytes long.
var ErrBadDigest = errors.New("stored digest has wrong length")

// Cache is safe for concurrent use.
type Cache struct {
	db  *bolt.DB
	mem *freecache.Cache
}

// Open opens or creates the database at path with memBytes of memory cache
// in front of it.
func Open(path string, memBytes int) (*Cache, error) {
	if memBytes < MinMemBytes {
		memBytes = MinMemBytes
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	logging.Debugf("hash cache %s open, %d bytes in memory", path, memBytes)
	return &Cache{db: db, mem: freecache.NewCache(memBytes)}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// key is blake256 of the hashed input.
func key(input []byte) []byte {
	h := blake256.New()
	h.Write(input)
	return h.Sum(nil)
}

func memKey(alg string, k []byte) []byte {
	return append([]byte(alg+"/"), k...)
}

// Get returns the digest stored for input under alg, if any.
func (c *Cache) Get(alg string, input []byte) ([powhash.Size]byte, bool, error) {
	var d [powhash.Size]byte
	k := key(input)
	if v, err := c.mem.Get(memKey(alg, k)); err == nil {
		lookups.WithLabelValues(alg, "memory").Inc()
		copy(d[:], v)
		return d, true, nil
	}

	var found bool
	err := c.db.View(func(btx *bolt.Tx) error {
		b := btx.Bucket([]byte(alg))
		if b == nil {
			return nil
		}
		v := b.Get(k)
		if v == nil {
			return nil
		}
		if len(v) != powhash.Size {
			return errors.Wrapf(ErrBadDigest, "%s %x: %d bytes", alg, k, len(v))
		}
		// v is only valid inside the transaction
		copy(d[:], v)
		found = true
		return nil
	})
	if err != nil {
		return d, false, err
	}
	if !found {
		lookups.WithLabelValues(alg, "miss").Inc()
		return d, false, nil
	}
	lookups.WithLabelValues(alg, "disk").Inc()
	c.remember(alg, k, d)
	return d, true, nil
}

// Put stores digest d for input under alg.
func (c *Cache) Put(alg string, input []byte, d [powhash.Size]byte) error {
	k := key(input)
	err := c.db.Update(func(btx *bolt.Tx) error {
		b, err := btx.CreateBucketIfNotExists([]byte(alg))
		if err != nil {
			return err
		}
		return b.Put(k, d[:])
	})
	if err != nil {
		return errors.Wrapf(err, "store %s %x", alg, k)
	}
	c.remember(alg, k, d)
	return nil
}

func (c *Cache) remember(alg string, k []byte, d [powhash.Size]byte) {
	// a full memory tier just evicts; the disk copy is authoritative
	if err := c.mem.Set(memKey(alg, k), d[:], 0); err != nil {
		logging.Warnf("hash cache: %v", err)
	}
}

// Sum returns a's digest of input, computing and storing it on a miss.
func (c *Cache) Sum(a powhash.Algorithm, input []byte) ([powhash.Size]byte, error) {
	d, ok, err := c.Get(a.Name, input)
	if err != nil || ok {
		return d, err
	}
	d, err = a.Sum(input)
	if err != nil {
		return d, err
	}
	return d, c.Put(a.Name, input, d)
}

// Len is the number of digests on disk for alg.
func (c *Cache) Len(alg string) (int, error) {
	var n int
	err := c.db.View(func(btx *bolt.Tx) error {
		if b := btx.Bucket([]byte(alg)); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n, err
}
