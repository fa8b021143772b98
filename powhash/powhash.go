// Package powhash implements the Lyra2 family of proof-of-work hashes used
// by Vertcoin, Monacoin and their forks, together with the scrypt variants
// those chains used before switching.
package powhash

import (
	"sort"

	"github.com/aead/skein"
	"github.com/dchest/blake256"
	"github.com/deedlefake/crypto/groestl256"
	"github.com/mit-dci/litpow/bmw"
	"github.com/mit-dci/litpow/cubehash"
	"github.com/mit-dci/litpow/lyra2"
	"github.com/pkg/errors"
	"github.com/vertcoin/lyra2re"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/crypto/sha3"
)

// Size is the length of every proof-of-work digest.
const Size = 32

// Func hashes a serialized block header.
type Func func(data []byte) ([Size]byte, error)

// Algorithm is a named proof-of-work function together with the Lyra2
// parameters it runs with. Lyra2 is the zero value for scrypt.
type Algorithm struct {
	Name  string
	Sum   Func
	Lyra2 lyra2.Params
}

// UsesLyra2 reports whether the algorithm has a Lyra2 stage.
func (a Algorithm) UsesLyra2() bool {
	return a.Lyra2.Rows != 0
}

// ErrUnknownAlgorithm is returned by Lookup for unregistered names.
var ErrUnknownAlgorithm = errors.New("unknown proof-of-work algorithm")

var (
	lyra2reParams   = lyra2.Params{TimeCost: 1, Rows: 8, Cols: 8}
	lyra2rev2Params = lyra2.Params{TimeCost: 1, Rows: 4, Cols: 4}
	lyra2rev3Params = lyra2.Params{TimeCost: 1, Rows: 4, Cols: 4, Version: lyra2.V3}
	lyra2zParams    = lyra2.Params{TimeCost: 8, Rows: 8, Cols: 8}
)

var algorithms = map[string]Algorithm{}

func init() {
	register(Algorithm{Name: "lyra2re", Sum: Lyra2RE, Lyra2: lyra2reParams})
	register(Algorithm{Name: "lyra2re-vtc", Sum: Lyra2REVertcoin, Lyra2: lyra2reParams})
	register(Algorithm{Name: "lyra2rev2", Sum: Lyra2REv2, Lyra2: lyra2rev2Params})
	register(Algorithm{Name: "lyra2rev3", Sum: Lyra2REv3, Lyra2: lyra2rev3Params})
	register(Algorithm{Name: "lyra2z", Sum: Lyra2Z, Lyra2: lyra2zParams})
	register(Algorithm{Name: "scrypt", Sum: Scrypt})
	register(Algorithm{Name: "scrypt-n11", Sum: ScryptN11})
}

func register(a Algorithm) {
	if _, ok := algorithms[a.Name]; ok {
		panic("powhash: duplicate algorithm " + a.Name)
	}
	algorithms[a.Name] = a
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, error) {
	a, ok := algorithms[name]
	if !ok {
		return Algorithm{}, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
	}
	return a, nil
}

// Names lists the registered algorithms in sorted order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for n := range algorithms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func blake(data []byte) []byte {
	h := blake256.New()
	h.Write(data)
	return h.Sum(nil)
}

func keccak(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

func skein256(data []byte) []byte {
	var out [32]byte
	skein.Sum256(&out, data, nil)
	return out[:]
}

// sumLyra2 runs lyra2 with in as both password and salt.
func sumLyra2(p lyra2.Params, in []byte) ([]byte, error) {
	h := lyra2.Hasher{Params: p}
	return h.Sum(Size, in, in)
}

func toDigest(b []byte) (d [Size]byte) {
	copy(d[:], b)
	return d
}

// Lyra2RE is blake256, keccak256, lyra2(1, 8, 8), skein512-256, groestl256.
func Lyra2RE(data []byte) ([Size]byte, error) {
	k := keccak(blake(data))
	l, err := sumLyra2(lyra2reParams, k)
	if err != nil {
		return [Size]byte{}, errors.Wrap(err, "lyra2re")
	}
	return groestl256.Sum(skein256(l)), nil
}

// Lyra2REVertcoin is Lyra2RE as Vertcoin's consensus code computes it. Its
// Lyra2 stage predates the one in Lyra2RE, so the two disagree on every
// input; Vertcoin blocks 208301 to 346999 only validate with this one.
func Lyra2REVertcoin(data []byte) ([Size]byte, error) {
	d, err := lyra2re.Sum(data)
	if err != nil {
		return [Size]byte{}, errors.Wrap(err, "lyra2re-vtc")
	}
	if len(d) != Size {
		return [Size]byte{}, errors.Errorf("lyra2re-vtc: %d byte digest", len(d))
	}
	return toDigest(d), nil
}

// Lyra2REv2 is blake256, keccak256, cubehash256, lyra2(1, 4, 4),
// skein512-256, cubehash256, bmw256.
func Lyra2REv2(data []byte) ([Size]byte, error) {
	c := cubehash.Sum256(keccak(blake(data)))
	l, err := sumLyra2(lyra2rev2Params, c[:])
	if err != nil {
		return [Size]byte{}, errors.Wrap(err, "lyra2rev2")
	}
	c = cubehash.Sum256(skein256(l))
	return bmw.Sum256(c[:]), nil
}

// Lyra2REv3 is blake256, lyra2v3(1, 4, 4), cubehash256, lyra2v3(1, 4, 4),
// bmw256.
func Lyra2REv3(data []byte) ([Size]byte, error) {
	l, err := sumLyra2(lyra2rev3Params, blake(data))
	if err != nil {
		return [Size]byte{}, errors.Wrap(err, "lyra2rev3")
	}
	c := cubehash.Sum256(l)
	if l, err = sumLyra2(lyra2rev3Params, c[:]); err != nil {
		return [Size]byte{}, errors.Wrap(err, "lyra2rev3")
	}
	return bmw.Sum256(l), nil
}

// Lyra2Z is blake256 followed by lyra2(8, 8, 8).
func Lyra2Z(data []byte) ([Size]byte, error) {
	b := blake(data)
	l, err := sumLyra2(lyra2zParams, b)
	if err != nil {
		return [Size]byte{}, errors.Wrap(err, "lyra2z")
	}
	return toDigest(l), nil
}

// Scrypt is Litecoin's scrypt(N=1024, r=1, p=1) with the data as its own salt.
func Scrypt(data []byte) ([Size]byte, error) {
	return scryptN(data, 1024)
}

// ScryptN11 is scrypt with N=2^11, used by Vertcoin before Lyra2RE.
func ScryptN11(data []byte) ([Size]byte, error) {
	return scryptN(data, 2048)
}

func scryptN(data []byte, n int) ([Size]byte, error) {
	k, err := scrypt.Key(data, data, n, 1, 1, Size)
	if err != nil {
		return [Size]byte{}, errors.Wrapf(err, "scrypt N=%d", n)
	}
	return toDigest(k), nil
}
