package config

import (
	"os"
	"path/filepath"

	"github.com/getlantern/deepcopy"
	flags "github.com/jessevdk/go-flags"
	"github.com/mit-dci/litpow/consts"
	"github.com/mit-dci/litpow/lyra2"
	"github.com/pkg/errors"
)

type Config struct { // define a struct for usage with go-flags
	HomeDir    string `long:"dir" description:"Specify Home Directory of litpow as an absolute path."`
	ConfigFile string `long:"config" description:"Config file to read instead of litpow.conf in the home directory."`
	LogFile    string `long:"logfile" description:"Also write the log to this file."`
	Verbose    []bool `short:"v" long:"verbose" description:"Raise verbosity; repeat for more."`
	Net        string `short:"n" long:"net" description:"Network whose proof of work is used."`

	Cost  Cost  `group:"Lyra2 Options"`
	Cache Cache `group:"Cache Options" namespace:"cache"`
	Miner Miner `group:"Miner Options" namespace:"miner"`
}

// Cost is the Lyra2 output length and cost parameters.
type Cost struct {
	OutLen   int    `short:"k" long:"outlen" description:"Digest length in bytes."`
	TimeCost uint64 `short:"t" long:"time" description:"Time cost (wandering passes)."`
	Rows     uint64 `short:"r" long:"rows" description:"Rows in the memory matrix."`
	Cols     uint64 `short:"c" long:"cols" description:"Columns in the memory matrix."`
	Version  int    `long:"lyra2" choice:"2" choice:"3" description:"Lyra2 version; 3 needs a power of two rows."`
}

// Params returns the cost as lyra2 parameters.
func (c Cost) Params() lyra2.Params {
	p := lyra2.Params{TimeCost: c.TimeCost, Rows: c.Rows, Cols: c.Cols}
	if c.Version == 3 {
		p.Version = lyra2.V3
	}
	return p
}

type Cache struct {
	File     string `long:"file" description:"Bolt file for cached proof-of-work digests. Empty disables the cache."`
	MemBytes int    `long:"mem" description:"Bytes of memory cache in front of the file."`
}

type Miner struct {
	Workers     int    `long:"workers" description:"Mining goroutines; 0 means one per CPU."`
	Count       uint64 `long:"count" description:"Nonces to try; 0 means all 2^32."`
	RandomStart bool   `long:"random" description:"Start at a random nonce."`
	Metrics     string `long:"metrics" description:"Serve Prometheus metrics on this host:port."`
}

var (
	DefaultHomeDirName    = ".litpow"
	DefaultConfigFilename = "litpow.conf"
	DefaultHistoryFile    = "lyra2.history"
	DefaultHomeDir        = filepath.Join(os.Getenv("HOME"), DefaultHomeDirName)
)

// Default is the configuration before the config file and command line are
// applied.
var Default = Config{
	HomeDir: DefaultHomeDir,
	Net:     consts.DefaultNet,
	Cost: Cost{
		OutLen:   consts.DefaultOutputLen,
		TimeCost: consts.DefaultTimeCost,
		Rows:     consts.DefaultRows,
		Cols:     consts.DefaultCols,
		Version:  consts.DefaultLyra2Version,
	},
	Cache: Cache{MemBytes: consts.MemCacheBytes},
}

// New returns a copy of Default that is safe to modify.
func New() (*Config, error) {
	conf := new(Config)
	if err := deepcopy.Copy(conf, &Default); err != nil {
		return nil, errors.Wrap(err, "copy default config")
	}
	return conf, nil
}

// Verbosity is the number of -v flags given.
func (c *Config) Verbosity() int {
	return len(c.Verbose)
}

// newConfigParser returns a new command line flags parser.
func NewConfigParser(conf *Config, options flags.Options) *flags.Parser {
	parser := flags.NewParser(conf, options)
	return parser
}
