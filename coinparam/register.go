package coinparam

import (
	"math/big"
	"sort"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/mit-dci/litpow/powhash"
	"github.com/pkg/errors"
)

// Params defines a proof-of-work network by its parameters. These parameters
// are enough to validate and mine headers for the network; nothing about
// transactions or addresses is kept.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	NetMagicBytes uint32

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// GenesisBlock defines the first block of the chain. May be nil for
	// networks registered only for hashing.
	GenesisBlock *wire.MsgBlock

	// GenesisHash is the double-sha256 id of the genesis block.
	GenesisHash *chainhash.Hash

	// PoWEras selects the proof-of-work algorithm by block height, newest
	// era first. The last era must start at height 0.
	PoWEras []PoWEra

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// GenerateSupported specifies whether or not CPU mining is allowed.
	GenerateSupported bool

	// TestCoin, when true, indicates that the network deals with money that
	// isn't worth anything.
	TestCoin bool
}

// PoWEra is a range of heights hashed with one algorithm.
type PoWEra struct {
	// Height is the first block hashed with Algorithm.
	Height int32
	// Algorithm is a powhash algorithm name.
	Algorithm string
}

// These variables are the chain proof-of-work limit parameters for each default
// network.
var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// regressionPowLimit is the highest proof of work value a block can have
	// for the regression test networks.  It is the value 2^255 - 1.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	// scryptPowLimit is 2^236 - 1, shared by the Litecoin family.
	scryptPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)
)

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&LiteCoinTestNet4Params)
	mustRegister(&LiteRegNetParams)
	mustRegister(&VertcoinRegTestParams)
	mustRegister(&VertcoinTestNetParams)
	mustRegister(&VertcoinParams)
	mustRegister(&MonacoinParams)
	mustRegister(&MonacoinRegTestParams)
}

// mustRegister performs the same function as Register except it panics if there
// is an error.  This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet is returned by Lookup for a name that was never
	// registered.
	ErrUnknownNet = errors.New("unknown network")

	// ErrBadEras describes a network whose PoWEras are empty, out of order,
	// do not reach height 0 or name an unknown algorithm.
	ErrBadEras = errors.New("bad proof-of-work eras")
)

// RegisteredNets is the networks known to this package, by name.
var RegisteredNets = make(map[string]*Params)

// Register registers the network parameters for a network.  This may error
// with ErrDuplicateNet if the network is already registered (either due to a
// previous Register call, or the network being one of the default networks),
// or with ErrBadEras if its algorithm schedule cannot be resolved.
func Register(params *Params) error {
	if _, ok := RegisteredNets[params.Name]; ok {
		return errors.Wrap(ErrDuplicateNet, params.Name)
	}
	if err := checkEras(params); err != nil {
		return err
	}
	RegisteredNets[params.Name] = params
	return nil
}

func checkEras(p *Params) error {
	if len(p.PoWEras) == 0 {
		return errors.Wrapf(ErrBadEras, "%s has none", p.Name)
	}
	for i, era := range p.PoWEras {
		if _, err := powhash.Lookup(era.Algorithm); err != nil {
			return errors.Wrapf(ErrBadEras, "%s: %v", p.Name, err)
		}
		if i > 0 && era.Height >= p.PoWEras[i-1].Height {
			return errors.Wrapf(ErrBadEras, "%s: era %d starts at %d, not before %d",
				p.Name, i, era.Height, p.PoWEras[i-1].Height)
		}
	}
	if last := p.PoWEras[len(p.PoWEras)-1]; last.Height != 0 {
		return errors.Wrapf(ErrBadEras, "%s: first era starts at %d", p.Name, last.Height)
	}
	return nil
}

// Lookup returns the registered network with the given name.
func Lookup(name string) (*Params, error) {
	p, ok := RegisteredNets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNet, "%q", name)
	}
	return p, nil
}

// Networks returns the names of all registered networks, sorted.
func Networks() []string {
	names := make([]string, 0, len(RegisteredNets))
	for n := range RegisteredNets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}
