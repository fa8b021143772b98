package coinparam

import (
	"bytes"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/mit-dci/litpow/logging"
	"github.com/mit-dci/litpow/powhash"
	"github.com/pkg/errors"
)

var (
	// ErrBadTarget is a header whose bits decode to zero or a negative target.
	ErrBadTarget = errors.New("target is not positive")

	// ErrTargetAboveLimit is a header claiming less work than difficulty 1.
	ErrTargetAboveLimit = errors.New("target is higher than the network limit")

	// ErrHighHash is a header whose proof-of-work hash misses its target.
	ErrHighHash = errors.New("block hash is higher than target")
)

// PoWAlgorithm gives the algorithm that hashes the block at height.
func (p *Params) PoWAlgorithm(height int32) powhash.Algorithm {
	for _, era := range p.PoWEras {
		if height >= era.Height {
			// names were resolved by Register
			a, _ := powhash.Lookup(era.Algorithm)
			return a
		}
	}
	a, _ := powhash.Lookup(p.PoWEras[len(p.PoWEras)-1].Algorithm)
	return a
}

// PoWFunction hashes a serialized header with the algorithm in force at
// height.
func (p *Params) PoWFunction(b []byte, height int32) (chainhash.Hash, error) {
	a := p.PoWAlgorithm(height)
	sum, err := a.Sum(b)
	if err != nil {
		return chainhash.Hash{}, errors.Wrapf(err, "%s height %d", p.Name, height)
	}
	return chainhash.Hash(sum), nil
}

// HeaderHash serializes header and returns its proof-of-work hash.
func (p *Params) HeaderHash(header *wire.BlockHeader, height int32) (chainhash.Hash, error) {
	var buf bytes.Buffer
	buf.Grow(wire.MaxBlockHeaderPayload)
	if err := header.Serialize(&buf); err != nil {
		return chainhash.Hash{}, errors.Wrap(err, "serialize header")
	}
	return p.PoWFunction(buf.Bytes(), height)
}

// Target decodes bits and checks it against the network's limit.
func (p *Params) Target(bits uint32) (*big.Int, error) {
	target := blockchain.CompactToBig(bits)

	// The target must more than 0.  Why can you even encode negative...
	if target.Sign() <= 0 {
		return nil, errors.Wrapf(ErrBadTarget, "bits %08x", bits)
	}
	// The target must be less than the maximum allowed (difficulty 1)
	if target.Cmp(p.PowLimit) > 0 {
		return nil, errors.Wrapf(ErrTargetAboveLimit, "bits %08x above %08x",
			bits, p.PowLimitBits)
	}
	return target, nil
}

// CheckProofOfWork verifies the header hashes into something lower than
// specified by the 4-byte bits field.
func CheckProofOfWork(header *wire.BlockHeader, height int32, p *Params) error {
	target, err := p.Target(header.Bits)
	if err != nil {
		logging.Debugf("block %d: %v", height, err)
		return err
	}

	// The header hash must be less than the claimed target in the header.
	blockHash, err := p.HeaderHash(header, height)
	if err != nil {
		return err
	}
	hashNum := blockchain.HashToBig(&blockHash)
	if hashNum.Cmp(target) > 0 {
		logging.Debugf("block %d hash %064x is higher than required target of %064x",
			height, hashNum, target)
		return errors.Wrapf(ErrHighHash, "%s at height %d", blockHash, height)
	}
	return nil
}

// Work is the expected number of hashes needed to meet bits.
func Work(bits uint32) *big.Int {
	return blockchain.CalcWork(bits)
}
