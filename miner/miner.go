// Package miner searches the nonce space of a block header for a proof of
// work that meets the header's own target.
package miner

import (
	"context"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/mit-dci/litpow/coinparam"
	"github.com/mit-dci/litpow/logging"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"gitlab.com/NebulousLabs/fastrand"
	"golang.org/x/sync/errgroup"
)

// nonceSpace is the number of distinct 32-bit nonces.
const nonceSpace = 1 << 32

// ErrNonceSpaceExhausted is returned when every nonce in range was tried
// without meeting the target.
var ErrNonceSpaceExhausted = errors.New("nonce space exhausted")

// Config says which nonces to try and with how many goroutines.
type Config struct {
	// Workers defaults to GOMAXPROCS.
	Workers int
	// StartNonce is the first nonce tried.
	StartNonce uint32
	// Count is how many nonces to try, wrapping past 2^32-1. Zero means all.
	Count uint64
	// RandomStart replaces StartNonce with a random one.
	RandomStart bool
}

// Result is a solved header.
type Result struct {
	Header  wire.BlockHeader
	Hash    chainhash.Hash
	Hashes  uint64
	Elapsed time.Duration
}

// HashRate is hashes per second over the search.
func (r *Result) HashRate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Hashes) / r.Elapsed.Seconds()
}

// Mine tries nonces for header until one hashes at or below the target in
// header.Bits, using the algorithm p assigns to height. Workers stride the
// range so nonce start+i is tried by worker i mod Workers.
func Mine(ctx context.Context, header *wire.BlockHeader, height int32,
	p *coinparam.Params, cfg Config) (*Result, error) {

	target, err := p.Target(header.Bits)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	count := cfg.Count
	if count == 0 || count > nonceSpace {
		count = nonceSpace
	}
	start := cfg.StartNonce
	if cfg.RandomStart {
		start = uint32(fastrand.Uint64n(nonceSpace))
	}
	alg := p.PoWAlgorithm(height).Name
	logging.Infof("mining %s height %d (%s) with %d workers from nonce %d",
		p.Name, height, alg, workers, start)

	stop, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(stop)

	var (
		hashes uint64
		once   sync.Once
		result *Result
	)
	began := time.Now()
	for w := 0; w < workers; w++ {
		w := uint64(w)
		g.Go(func() error {
			s := &search{
				p:      p,
				height: height,
				target: target,
				header: *header,
				hashes: hashesTotal.WithLabelValues(alg),
			}
			for i := w; i < count; i += uint64(workers) {
				if gctx.Err() != nil {
					return nil
				}
				s.header.Nonce = start + uint32(i)
				hash, ok, err := s.try()
				atomic.AddUint64(&hashes, 1)
				if err != nil {
					return err
				}
				if ok {
					once.Do(func() {
						result = &Result{Header: s.header, Hash: hash}
						cancel()
					})
					return nil
				}
			}
			return nil
		})
	}
	werr := g.Wait()

	if result != nil {
		result.Hashes = atomic.LoadUint64(&hashes)
		result.Elapsed = time.Since(began)
		solutionsTotal.WithLabelValues(alg).Inc()
		logging.Infof("found nonce %d hash %s after %d hashes (%.1f H/s)",
			result.Header.Nonce, result.Hash, result.Hashes, result.HashRate())
		return result, nil
	}
	if werr != nil {
		return nil, werr
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "mining stopped")
	}
	return nil, errors.Wrapf(ErrNonceSpaceExhausted, "%d nonces from %d", count, start)
}

// search is one worker's private copy of the header.
type search struct {
	p      *coinparam.Params
	height int32
	target *big.Int
	header wire.BlockHeader
	hashes prometheus.Counter
}

func (s *search) try() (chainhash.Hash, bool, error) {
	hash, err := s.p.HeaderHash(&s.header, s.height)
	if err != nil {
		return hash, false, err
	}
	s.hashes.Inc()
	return hash, blockchain.HashToBig(&hash).Cmp(s.target) <= 0, nil
}
