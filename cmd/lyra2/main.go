/*
lyra2

Command line front end for the Lyra2 password hash and the proof-of-work
functions built on it. Every command can also be run from the interactive
shell, which keeps its history in the home directory.

	lyra2 [options] sum [--salt S] password
	lyra2 [options] pow [--alg name] [--height h] input
	lyra2 [options] graph password
	lyra2 [options] check [--height h] header
	lyra2 [options] shell
*/
package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	flags "github.com/jessevdk/go-flags"
	"github.com/mit-dci/litpow/coinparam"
	"github.com/mit-dci/litpow/config"
	"github.com/mit-dci/litpow/hashcache"
	"github.com/mit-dci/litpow/logging"
	"github.com/pkg/errors"
)

// app is the state shared by all commands of one invocation.
type app struct {
	conf  *config.Config
	out   io.Writer
	cache *hashcache.Cache
	ready bool
}

func newApp(conf *config.Config, out io.Writer) *app {
	return &app{conf: conf, out: out}
}

// newParser builds a parser over a.conf with every command registered. The
// shell's own parser leaves the shell command out.
func newParser(a *app, options flags.Options, withShell bool) *flags.Parser {
	parser := config.NewConfigParser(a.conf, options)

	parser.AddCommand("sum", "Hash a password",
		"Print the Lyra2 digest of a password and salt using the cost options.",
		&sumCmd{app: a})
	parser.AddCommand("pow", "Run a proof-of-work hash",
		"Hash input with a named algorithm, or the one the network uses at --height.",
		&powCmd{app: a})
	parser.AddCommand("graph", "Draw the row access graph",
		"Print a Graphviz digraph of the rows Lyra2 touches for a password.",
		&graphCmd{app: a})
	parser.AddCommand("check", "Check a block header's proof of work",
		"Verify an 80 byte hex header against the network's target rules.",
		&checkCmd{app: a})
	parser.AddCommand("list", "List algorithms and networks",
		"Show every proof-of-work algorithm and registered network.",
		&listCmd{app: a})
	if withShell {
		parser.AddCommand("shell", "Interactive shell",
			"Read commands from a readline prompt until exit.",
			&shellCmd{app: a})
	}

	// logging has to follow the final parse but precede the command
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}
	return parser
}

func (a *app) setup() error {
	if a.ready {
		return nil
	}
	a.ready = true
	if err := logging.SetLogLevel(a.conf.Verbosity()); err != nil {
		return err
	}
	if a.conf.LogFile != "" {
		logging.SetLogPath(a.conf.LogFile)
	}
	return nil
}

func (a *app) params() (*coinparam.Params, error) {
	return coinparam.Lookup(a.conf.Net)
}

// hashCache opens the configured cache on first use; nil means caching is
// off.
func (a *app) hashCache() (*hashcache.Cache, error) {
	if a.cache != nil || a.conf.Cache.File == "" {
		return a.cache, nil
	}
	c, err := hashcache.Open(a.conf.Cache.File, a.conf.Cache.MemBytes)
	if err != nil {
		return nil, err
	}
	a.cache = c
	return c, nil
}

func (a *app) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logging.Errorf("closing hash cache: %v", err)
		}
		a.cache = nil
	}
}

func main() {
	conf, err := config.New()
	if err != nil {
		logging.Fatal(err)
	}
	a := newApp(conf, color.Output)
	parser := newParser(a, flags.Default, true)

	_, err = config.Load(conf, parser, os.Args[1:])
	a.close()
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
