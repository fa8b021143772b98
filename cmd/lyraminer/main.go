/*
lyraminer

Mines a block header on a registered network with the CPU. The template is
the network's genesis header unless --header gives one; the solved header is
printed as hex. With --chain the headers are mined one after another on top
of a header file instead. With --miner.metrics the Prometheus counters are served over
HTTP while mining.
*/
package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/btcsuite/btcd/wire"
	flags "github.com/jessevdk/go-flags"
	"github.com/mit-dci/litpow/coinparam"
	"github.com/mit-dci/litpow/config"
	"github.com/mit-dci/litpow/consts"
	"github.com/mit-dci/litpow/headerfile"
	"github.com/mit-dci/litpow/logging"
	"github.com/mit-dci/litpow/miner"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type mineOptions struct {
	Height int32  `long:"height" description:"Height of the block being mined."`
	Header string `long:"header" description:"80 byte hex header template."`
	Bits   uint32 `long:"bits" description:"Override the template's compact target."`
	Now    bool   `long:"now" description:"Set the template's timestamp to now."`
	Chain  string `long:"chain" description:"Header file to extend; mined headers are appended to it."`
	Blocks int    `long:"blocks" default:"1" description:"Headers to mine on top of --chain."`
}

// template returns the header to mine on p.
func (o *mineOptions) template(p *coinparam.Params) (*wire.BlockHeader, error) {
	header := new(wire.BlockHeader)
	switch {
	case o.Header != "":
		b, err := hex.DecodeString(o.Header)
		if err != nil {
			return nil, errors.Wrap(err, "bad header hex")
		}
		if len(b) != consts.HeaderLen {
			return nil, errors.Errorf("header is %d bytes, need %d", len(b), consts.HeaderLen)
		}
		if err := header.Deserialize(bytes.NewReader(b)); err != nil {
			return nil, err
		}
	case p.GenesisBlock != nil:
		*header = p.GenesisBlock.Header
	default:
		return nil, errors.Errorf("%s has no genesis block; give --header", p.Name)
	}
	if o.Bits != 0 {
		header.Bits = o.Bits
	}
	if o.Now {
		header.Timestamp = time.Unix(time.Now().Unix(), 0)
	}
	return header, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		logging.Infof("serving metrics on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Errorf("metrics server: %v", err)
		}
	}()
}

// nextTemplate is the header after tip: same version, merkle root and bits,
// one second later at least.
func nextTemplate(tip *wire.BlockHeader, bits uint32) *wire.BlockHeader {
	ts := time.Now().Unix()
	if ts <= tip.Timestamp.Unix() {
		ts = tip.Timestamp.Unix() + 1
	}
	if bits == 0 {
		bits = tip.Bits
	}
	return &wire.BlockHeader{
		Version:    tip.Version,
		PrevBlock:  tip.BlockHash(),
		MerkleRoot: tip.MerkleRoot,
		Timestamp:  time.Unix(ts, 0),
		Bits:       bits,
	}
}

// mineChain extends the header file at opts.Chain by opts.Blocks headers.
func mineChain(ctx context.Context, conf *config.Config, opts *mineOptions, out io.Writer) error {
	p, err := coinparam.Lookup(conf.Net)
	if err != nil {
		return err
	}
	hf, err := headerfile.Open(opts.Chain, p)
	if err != nil {
		return err
	}
	defer hf.Close()

	for i := 0; i < opts.Blocks; i++ {
		height, tip, err := hf.Tip()
		if err != nil {
			return err
		}
		res, err := miner.Mine(ctx, nextTemplate(tip, opts.Bits), height+1, p, miner.Config{
			Workers:     conf.Miner.Workers,
			Count:       conf.Miner.Count,
			RandomStart: conf.Miner.RandomStart,
		})
		if err != nil {
			return err
		}
		height, err = hf.Append(&res.Header)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d %s nonce %d\n", height, res.Header.BlockHash(), res.Header.Nonce)
	}
	return nil
}

func mine(ctx context.Context, conf *config.Config, opts *mineOptions, out io.Writer) error {
	p, err := coinparam.Lookup(conf.Net)
	if err != nil {
		return err
	}
	header, err := opts.template(p)
	if err != nil {
		return err
	}
	res, err := miner.Mine(ctx, header, opts.Height, p, miner.Config{
		Workers:     conf.Miner.Workers,
		Count:       conf.Miner.Count,
		RandomStart: conf.Miner.RandomStart,
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := res.Header.Serialize(&buf); err != nil {
		return err
	}
	fmt.Fprintf(out, "nonce %d\npow %s\nblock %s\nheader %x\n",
		res.Header.Nonce, res.Hash, res.Header.BlockHash(), buf.Bytes())
	return nil
}

func main() {
	conf, err := config.New()
	if err != nil {
		logging.Fatal(err)
	}
	opts := new(mineOptions)
	parser := config.NewConfigParser(conf, flags.Default)
	if _, err := parser.AddGroup("Block Options", "", opts); err != nil {
		logging.Fatal(err)
	}
	if _, err := config.Load(conf, parser, os.Args[1:]); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := logging.SetLogLevel(conf.Verbosity() + int(logging.LogLevelInfo)); err != nil {
		logging.Fatal(err)
	}
	if conf.LogFile != "" {
		logging.SetLogPath(conf.LogFile)
	}
	if conf.Miner.Metrics != "" {
		serveMetrics(conf.Miner.Metrics)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		logging.Warnf("interrupted, stopping workers")
		cancel()
	}()

	run := mine
	if opts.Chain != "" {
		run = mineChain
	}
	if err := run(ctx, conf, opts, os.Stdout); err != nil {
		logging.Fatal(err)
	}
}
