package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/config"
	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/logger"
	"github.com/rovshanmuradov/token-monitor/internal/tokenapi"
)

// errUsage marks bad command line input; the message was already printed.
var errUsage = errors.New("usage")

// env is what every subcommand gets.
type env struct {
	ctx       context.Context
	cfg       *config.Config
	client    *tokenapi.Client
	formatter format.Formatter
	logger    *zap.Logger
	stdout    io.Writer
	stderr    io.Writer
}

type command struct {
	summary string
	run     func(e *env, args []string) error
}

var commands = map[string]command{
	"list":   {"print the current token table", runList},
	"watch":  {"poll and reprint the table until interrupted", runWatch},
	"add":    {"add a token", runAdd},
	"delete": {"delete a token", runDelete},
	"toggle": {"activate or deactivate a token", runToggle},
	"import": {"bulk add tokens from a CSV file", runImport},
	"export": {"write the token table as CSV or JSON", runExport},
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tokenctl [-config path] [-debug] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].summary)
	}
}

// run returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("tokenctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "configs/config.json", "Path to config file")
	debug := global.Bool("debug", false, "Enable debug logging")
	global.Usage = func() { usage(stderr) }

	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		usage(stderr)
		return 2
	}

	name := global.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		usage(stderr)
		return 2
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := logger.CreatePrettyLogger(*debug || cfg.DebugLogging)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to init logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = log.Sync()
	}()

	client, err := tokenapi.NewClient(tokenapi.Options{
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.RequestTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
	}, log)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create API client: %v\n", err)
		return 1
	}

	e := &env{
		ctx:       ctx,
		cfg:       cfg,
		client:    client,
		formatter: format.NewFormatter(cfg.PriceDecimals, cfg.Location()),
		logger:    log,
		stdout:    stdout,
		stderr:    stderr,
	}

	if err := cmd.run(e, global.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}
	return 0
}

// newFlagSet returns a subcommand flag set that reports errors instead of
// exiting.
func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tokenctl "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// parse parses args and turns parse failures into errUsage.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return errUsage
	}
	return nil
}

// requireFlags prints a usage error when a string flag is empty.
func requireFlags(fs *flag.FlagSet, names ...string) error {
	for _, name := range names {
		if f := fs.Lookup(name); f != nil && strings.TrimSpace(f.Value.String()) == "" {
			fmt.Fprintf(fs.Output(), "-%s is required\n", name)
			fs.Usage()
			return errUsage
		}
	}
	return nil
}
