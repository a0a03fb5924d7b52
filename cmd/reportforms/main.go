// Command reportforms edits the printable report templates from the
// terminal, renders previews and serves the editor page.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-reportforms/pkg/config"
	"github.com/goliatone/go-reportforms/pkg/renderers/tui"
)

const usage = `usage: reportforms [flags] <command> [args]

commands:
  kinds                         list the template kinds
  show <kind>                   print the locally stored template
  defaults <kind>               print the default template
  normalize <kind> [file|-]     normalize a JSON template read from file or stdin
  set <kind> <path> <value>     change one field and store the result locally
  reset <kind>                  restore the default template locally
  edit [-save] [kind]           edit every field interactively
  preview [-o file] <kind>      render the editor page with the preview as HTML
  load <kind>                   replace the local template with the backend copy
  save <kind>                   write the local template to its backend
  serve [-addr addr]            serve the editor over HTTP

flags:
`

// errUsage marks errors caused by bad arguments.
var errUsage = errors.New("invalid usage")

// env carries the process surroundings so commands can run under test.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	// logger, when nil, is built from the -debug flag.
	logger *zap.Logger
	// prompts drives the edit command; nil uses the terminal.
	prompts tui.PromptDriver
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, getenv: os.Getenv}
	if err := run(ctx, os.Args[1:], e); err != nil {
		fmt.Fprintln(os.Stderr, "reportforms:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, e env) error {
	fs := flag.NewFlagSet("reportforms", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	var (
		configPath = fs.String("config", config.FileName, "YAML config file (ignored when missing)")
		debug      = fs.Bool("debug", false, "verbose development logging")
		storeFlag  = fs.String("store", "", "local store driver: file, sqlite or memory")
		storePath  = fs.String("store-path", "", "local store directory or database file")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cfg, err := config.Load(*configPath, e.getenv)
	if err != nil {
		return err
	}
	if *storeFlag != "" {
		cfg.Store.Driver = *storeFlag
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	cfg.Debug = cfg.Debug || *debug

	logger := e.logger
	if logger == nil {
		logger, err = newLogger(cfg.Debug)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	a := &app{cfg: cfg, env: e, log: logger}
	defer a.close()

	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fs.Usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
	return cmd(ctx, a, rest)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
