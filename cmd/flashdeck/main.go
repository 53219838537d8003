// Package main implements the flashdeck command: it serves the flashcard
// library over HTTP, or imports and exports CSV files against it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

// options holds the command-line flags.
type options struct {
	importPath string
	exportPath string
	deckName   string
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("flashdeck: %v", err)
	}
}

// parseFlags parses the command line. -import and -export are exclusive;
// -deck only applies to one of them.
func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("flashdeck", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.importPath, "import", "", "import cards from a CSV `file`")
	fs.StringVar(&opts.exportPath, "export", "", "export cards to a CSV `file` (- for stdout)")
	fs.StringVar(&opts.deckName, "deck", "", "deck `name` to import into or export from")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.importPath != "" && opts.exportPath != "" {
		return options{}, errors.New("-import and -export cannot be combined")
	}
	if opts.deckName != "" && opts.importPath == "" && opts.exportPath == "" {
		return options{}, errors.New("-deck requires -import or -export")
	}
	return opts, nil
}

// run loads configuration, opens the library and performs the requested
// command.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var log *slog.Logger
	if opts.exportPath == "-" {
		// stdout carries the CSV
		log = logger.SetupWriter(cfg.Server, os.Stderr)
	} else if log, err = logger.Setup(cfg.Server); err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("storage_driver", cfg.Storage.Driver))

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.cleanup()

	switch {
	case opts.importPath != "":
		return app.importFile(ctx, opts.importPath, opts.deckName, stdout)
	case opts.exportPath != "":
		return app.exportFile(opts.exportPath, opts.deckName, stdout)
	default:
		return app.startHTTPServer(ctx)
	}
}
