package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/btcsuite/btcd/wire"
	"github.com/howeyc/gopass"
	"github.com/mit-dci/litpow/accessgraph"
	"github.com/mit-dci/litpow/coinparam"
	"github.com/mit-dci/litpow/consts"
	"github.com/mit-dci/litpow/lyra2"
	"github.com/mit-dci/litpow/powhash"
	"github.com/pkg/errors"
	"gitlab.com/NebulousLabs/fastrand"
	"golang.org/x/text/unicode/norm"
)

// decode reads s as hex when asHex is set and otherwise as NFC normalized
// UTF-8, so visually identical passwords hash the same.
func decode(s string, asHex bool) ([]byte, error) {
	if asHex {
		b, err := hex.DecodeString(s)
		return b, errors.Wrap(err, "bad hex")
	}
	return norm.NFC.Bytes([]byte(s)), nil
}

// askPassword is replaced in tests.
var askPassword = func() ([]byte, error) {
	return gopass.GetPasswdPrompt("password: ", true, os.Stdin, os.Stderr)
}

type sumCmd struct {
	app *app

	Salt       string `short:"s" long:"salt" description:"Salt; the password is used when none is given."`
	Hex        bool   `short:"x" long:"hex" description:"Password and salt are hex encoded."`
	Ask        bool   `long:"ask" description:"Prompt for the password without echo."`
	RandomSalt bool   `long:"random-salt" description:"Use a random salt and print it."`

	Args struct {
		Password string `positional-arg-name:"password"`
	} `positional-args:"yes"`
}

func (c *sumCmd) Execute(args []string) error {
	cost := c.app.conf.Cost
	if cost.OutLen < 0 || cost.OutLen > consts.MaxOutputLen {
		return errors.Errorf("outlen %d not in 0..%d", cost.OutLen, consts.MaxOutputLen)
	}

	var pwd []byte
	var err error
	if c.Ask {
		pwd, err = askPassword()
		if err != nil {
			return errors.Wrap(err, "read password")
		}
		if !c.Hex {
			pwd = norm.NFC.Bytes(pwd)
		}
	} else {
		pwd, err = decode(c.Args.Password, c.Hex)
		if err != nil {
			return err
		}
	}

	salt := pwd
	switch {
	case c.RandomSalt:
		salt = fastrand.Bytes(consts.SaltLen)
	case c.Salt != "":
		salt, err = decode(c.Salt, c.Hex)
		if err != nil {
			return err
		}
	}

	p := cost.Params()
	digest, err := lyra2.Sum(cost.OutLen, pwd, salt, p.TimeCost, p.Rows, p.Cols)
	if err != nil {
		return err
	}
	if c.RandomSalt {
		fmt.Fprintf(c.app.out, "%s %x\n", Header("salt"), salt)
	}
	fmt.Fprintf(c.app.out, "%s\n", Digest(hex.EncodeToString(digest)))
	return nil
}

type powCmd struct {
	app *app

	Alg    string `short:"a" long:"alg" description:"Algorithm name; defaults to the network's at --height."`
	Height int32  `long:"height" description:"Block height selecting the network's algorithm."`
	Hex    bool   `short:"x" long:"hex" description:"Input is hex encoded."`

	Args struct {
		Input string `positional-arg-name:"input" required:"yes"`
	} `positional-args:"yes"`
}

func (c *powCmd) algorithm() (powhash.Algorithm, error) {
	if c.Alg != "" {
		return powhash.Lookup(c.Alg)
	}
	p, err := c.app.params()
	if err != nil {
		return powhash.Algorithm{}, err
	}
	return p.PoWAlgorithm(c.Height), nil
}

func (c *powCmd) Execute(args []string) error {
	a, err := c.algorithm()
	if err != nil {
		return err
	}
	in, err := decode(c.Args.Input, c.Hex)
	if err != nil {
		return err
	}

	cache, err := c.app.hashCache()
	if err != nil {
		return err
	}
	var d [powhash.Size]byte
	if cache != nil {
		d, err = cache.Sum(a, in)
	} else {
		d, err = a.Sum(in)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.app.out, "%s %s\n", Header(a.Name), Digest(hex.EncodeToString(d[:])))
	return nil
}

type graphCmd struct {
	app *app

	Salt   string `short:"s" long:"salt" description:"Salt; the password is used when none is given."`
	Out    string `short:"o" long:"out" description:"Write the DOT source to this file."`
	Counts bool   `long:"counts" description:"Also print how often each row was touched."`

	Args struct {
		Password string `positional-arg-name:"password"`
	} `positional-args:"yes"`
}

func (c *graphCmd) Execute(args []string) error {
	pwd := norm.NFC.Bytes([]byte(c.Args.Password))
	salt := pwd
	if c.Salt != "" {
		salt = norm.NFC.Bytes([]byte(c.Salt))
	}
	p := c.app.conf.Cost.Params()

	rec := new(lyra2.Recorder)
	h := lyra2.Hasher{Params: p, Tracer: rec}
	if _, err := h.Sum(consts.DefaultOutputLen, pwd, salt); err != nil {
		return err
	}
	graph, err := accessgraph.Build(rec.Visits, int(p.Rows))
	if err != nil {
		return err
	}

	dot := graph.String()
	if c.Out != "" {
		if err := ioutil.WriteFile(c.Out, []byte(dot), 0644); err != nil {
			return err
		}
	} else {
		fmt.Fprint(c.app.out, dot)
	}

	if c.Counts {
		for row, n := range accessgraph.Counts(rec.Visits, int(p.Rows)) {
			fmt.Fprintf(c.app.out, "row %3d %s\n", row, strings.Repeat("#", n))
		}
	}
	return nil
}

type checkCmd struct {
	app *app

	Height int32 `long:"height" description:"Height of the block."`

	Args struct {
		Header string `positional-arg-name:"header" required:"yes"`
	} `positional-args:"yes"`
}

// parseHeader reads an 80 byte serialized header from hex.
func parseHeader(s string) (*wire.BlockHeader, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "bad hex")
	}
	if len(b) != consts.HeaderLen {
		return nil, errors.Errorf("header is %d bytes, need %d", len(b), consts.HeaderLen)
	}
	header := new(wire.BlockHeader)
	if err := header.Deserialize(bytes.NewReader(b)); err != nil {
		return nil, err
	}
	return header, nil
}

func (c *checkCmd) Execute(args []string) error {
	p, err := c.app.params()
	if err != nil {
		return err
	}
	header, err := parseHeader(c.Args.Header)
	if err != nil {
		return err
	}

	out := c.app.out
	fmt.Fprintf(out, "%s %s\n", Header("block"), header.BlockHash())
	fmt.Fprintf(out, "%s %s at height %d\n", Header("network"), p.Name, c.Height)
	fmt.Fprintf(out, "%s %s\n", Header("algorithm"), p.PoWAlgorithm(c.Height).Name)
	if pow, err := p.HeaderHash(header, c.Height); err == nil {
		fmt.Fprintf(out, "%s %s\n", Header("pow"), Digest(pow.String()))
	}
	fmt.Fprintf(out, "%s %08x (work %v)\n", Header("bits"), header.Bits,
		coinparam.Work(header.Bits))

	if err := coinparam.CheckProofOfWork(header, c.Height, p); err != nil {
		fmt.Fprintf(out, "%s\n", Red("FAIL"))
		return err
	}
	fmt.Fprintf(out, "%s\n", Green("OK"))
	return nil
}

type listCmd struct {
	app *app
}

func (c *listCmd) Execute(args []string) error {
	out := c.app.out
	fmt.Fprintf(out, "%s\n", Header("algorithms"))
	for _, name := range powhash.Names() {
		a, _ := powhash.Lookup(name)
		if a.UsesLyra2() {
			stage := "lyra2"
			if a.Lyra2.Version == lyra2.V3 {
				stage = "lyra2v3"
			}
			fmt.Fprintf(out, "\t%s\t%s(t=%d r=%d c=%d)\n",
				White(name), stage, a.Lyra2.TimeCost, a.Lyra2.Rows, a.Lyra2.Cols)
		} else {
			fmt.Fprintf(out, "\t%s\n", White(name))
		}
	}
	fmt.Fprintf(out, "%s\n", Header("networks"))
	for _, name := range coinparam.Networks() {
		p, _ := coinparam.Lookup(name)
		eras := make([]string, len(p.PoWEras))
		for i, e := range p.PoWEras {
			eras[i] = fmt.Sprintf("%s@%d", e.Algorithm, e.Height)
		}
		fmt.Fprintf(out, "\t%s\t%s\n", White(name), Faint(strings.Join(eras, " ")))
	}
	return nil
}
