package config

import (
	"bufio"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
	"github.com/mit-dci/litpow/logging"
	"github.com/pkg/errors"
)

// createDefaultConfigFile creates a config file  -- only call this if the
// config file isn't already there
func createDefaultConfigFile(destinationPath string) error {
	dest, err := os.OpenFile(filepath.Join(destinationPath, DefaultConfigFilename),
		os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer dest.Close()

	writer := bufio.NewWriter(dest)
	_, err = writer.WriteString("net=" + Default.Net + "\n")
	if err != nil {
		return err
	}
	return writer.Flush()
}

// Load fills conf from the config file and then from args, which must not
// include the program name. The home directory and a default config file are
// created on first use. parser must have been built on conf; any commands
// added to it run during the final parse. Load returns the arguments left
// over after parsing.
func Load(conf *Config, parser *flags.Parser, args []string) ([]string, error) {
	// Pre-parse the command line options to see if an alternative home
	// directory or config file was specified.  Any errors here will be
	// caught again by the final parse below.
	preconf := *conf
	preParser := NewConfigParser(&preconf, flags.IgnoreUnknown)
	preParser.ParseArgs(args)

	configFile := preconf.ConfigFile
	if configFile == "" {
		if err := setupHomeDir(preconf.HomeDir); err != nil {
			return nil, err
		}
		configFile = filepath.Join(preconf.HomeDir, DefaultConfigFilename)
	}

	// lets parse the config file provided, if any
	err := flags.NewIniParser(parser).ParseFile(configFile)
	if err != nil {
		if _, ok := err.(*os.PathError); !ok {
			return nil, errors.Wrapf(err, "config file %s", configFile)
		}
		logging.Debugf("no config file at %s", configFile)
	}

	// Parse command line options again to ensure they take precedence.
	return parser.ParseArgs(args)
}

// setupHomeDir creates dir and a default config file in it if either is
// missing.
func setupHomeDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logging.Infof("Creating home directory %s", dir)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrap(err, "create home directory")
		}
	}
	if _, err := os.Stat(filepath.Join(dir, DefaultConfigFilename)); os.IsNotExist(err) {
		logging.Infof("Creating a new config file")
		if err := createDefaultConfigFile(dir); err != nil {
			return errors.Wrap(err, "create config file")
		}
	}
	return nil
}
