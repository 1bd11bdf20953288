// Package main is the entry point for ads, the Lua scripting tool for the
// ad editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/adclient"
	"github.com/dshills/adclient/internal/config"
	"github.com/dshills/adclient/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath  string
	expr        string
	profile     string
	watch       bool
	showVersion bool
	script      string
	args        []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("ads %s (%s, built %s)\n", version, commit, date)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	clientCfg := adclient.ConfigFromEnv()
	clientCfg.Service = cfg.Transport.Service
	clientCfg.Namespace = cfg.Transport.Namespace

	c, err := adclient.DialConfig(clientCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	profile := cfg.Script.Profile
	if opts.profile != "" {
		profile = opts.profile
	}

	runOnce := func() error {
		h, err := script.NewHost(script.Bind(c), script.Options{Args: opts.args})
		if err != nil {
			return err
		}
		defer h.Close()

		if err := h.SourceProfile(profile); err != nil {
			return err
		}
		if opts.expr != "" {
			return h.RunString(opts.expr)
		}
		return h.RunFile(opts.script)
	}

	if err := runOnce(); err != nil {
		report(c, err)
		return 1
	}

	if !opts.watch || opts.script == "" {
		return 0
	}

	w, err := script.NewWatcher(opts.script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-w.Changes():
			if err := runOnce(); err != nil {
				// Keep watching; the next save may fix the script.
				report(c, err)
			}
		case <-signals:
			return 0
		}
	}
}

// report surfaces an error on stderr and, best effort, in the editor's
// status line.
func report(c *adclient.Client, err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if c != nil {
		_ = c.Echo("ads: " + err.Error())
	}
}

func parseFlags() options {
	var opts options
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.expr, "e", "", "Run an inline script instead of a file")
	flag.StringVar(&opts.profile, "profile", "", "Profile to source before the script (overrides config)")
	flag.BoolVar(&opts.watch, "watch", false, "Rerun the script whenever it changes on disk")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version information")
	flag.BoolVar(&showHelp, "help", false, "Show usage information")
	flag.Usage = usage
	flag.Parse()

	if showHelp {
		usage()
		os.Exit(0)
	}

	if opts.configPath == "" {
		opts.configPath = config.DefaultPath()
	}

	args := flag.Args()
	if opts.expr != "" {
		opts.args = args
		return opts
	}

	if len(args) == 0 {
		if opts.showVersion {
			return opts
		}
		usage()
		os.Exit(2)
	}
	opts.script = args[0]
	opts.args = args[1:]
	return opts
}

func usage() {
	fmt.Fprintf(os.Stderr, `ads - scripting tool for the ad editor

Usage:
  ads [flags] script.lua [args...]
  ads -e 'lua code' [args...]

Scripts talk to a running ad instance through its 9p filesystem. Inside a
script the ad table provides ad.buf, ad.ctl, ad.minibuffer and ad.log,
plus ad.bufid, ad.args and ad.require_editor_context().

Flags:
`)
	flag.PrintDefaults()
}
