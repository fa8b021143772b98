package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	flags "github.com/jessevdk/go-flags"
	"github.com/mit-dci/litpow/coinparam"
	"github.com/mit-dci/litpow/config"
	"github.com/mit-dci/litpow/powhash"
)

type shellCmd struct {
	app *app
}

func (c *shellCmd) Execute(args []string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       Prompt("lyra2") + White("# "),
		HistoryFile:  filepath.Join(c.app.conf.HomeDir, config.DefaultHistoryFile),
		AutoComplete: newAutoCompleter(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	// main shell loop
	for {
		msg, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		msg = strings.TrimSpace(msg)
		if len(msg) == 0 {
			continue
		}
		rl.SaveHistory(msg)

		if c.app.shellparse(strings.Fields(msg)) {
			return nil
		}
	}
}

// shellparse runs one shell line and reports whether the user asked to
// leave. Errors are printed rather than returned.
func (a *app) shellparse(cmdslice []string) bool {
	switch cmdslice[0] {
	case "exit", "quit":
		return true
	case "help":
		cmdslice = append(cmdslice[1:], "--help")
	}

	parser := newParser(a, flags.HelpFlag|flags.PassDoubleDash, false)
	_, err := parser.ParseArgs(cmdslice)
	if err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(a.out, ferr.Message)
		} else {
			fmt.Fprintf(a.out, "%s %s\n", Red(cmdslice[0]+" error:"), err)
		}
	}
	return false
}

func networkNames(string) []string { return coinparam.Networks() }

func algorithmNames(string) []string { return powhash.Names() }

func newAutoCompleter() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help",
			readline.PcItem("sum"),
			readline.PcItem("pow"),
			readline.PcItem("graph"),
			readline.PcItem("check"),
			readline.PcItem("list"),
		),
		readline.PcItem("sum",
			readline.PcItem("--salt"),
			readline.PcItem("--hex"),
			readline.PcItem("--ask"),
			readline.PcItem("--random-salt"),
		),
		readline.PcItem("pow",
			readline.PcItem("--alg", readline.PcItemDynamic(algorithmNames)),
			readline.PcItem("--height"),
			readline.PcItem("--hex"),
		),
		readline.PcItem("graph",
			readline.PcItem("--salt"),
			readline.PcItem("--out"),
			readline.PcItem("--counts"),
		),
		readline.PcItem("check", readline.PcItem("--height")),
		readline.PcItem("list"),
		readline.PcItem("--net", readline.PcItemDynamic(networkNames)),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}
