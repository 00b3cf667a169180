package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/nx-lang/nx/internal/ast"
	"github.com/nx-lang/nx/internal/config"
	"github.com/nx-lang/nx/internal/diagnostics"
	"github.com/nx-lang/nx/internal/interp"
)

const VERSION = "0.3.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd, err := cli(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if !errors.Is(err, ErrUsage) {
			fmt.Fprintln(stderr, "Run 'nx help' for usage.")
		}
		return 1
	}

	switch cmd.Command {
	case COMMAND_HELP:
		fmt.Fprint(stdout, HELP_COMMAND)
		return 0
	case COMMAND_VERSION:
		fmt.Fprintf(stdout, "nx v%s\n", VERSION)
		return 0
	}

	cfg, err := config.Resolve(cmd.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: loading configuration: %v\n", err)
		return 1
	}
	if cmd.Trace {
		cfg.Trace.Enabled = true
	}

	logLevel := slog.LevelInfo
	if cmd.Verbose || cfg.Trace.Enabled {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	switch cmd.Command {
	case COMMAND_ENV:
		showEnv(stdout, cfg)
		return 0
	case COMMAND_AST, COMMAND_FMT:
		return printProgram(cmd, cfg, stdout, stderr)
	}

	session, err := newSession(cfg, stdout, stderr, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if cmd.Watch {
		if err := session.watch(ctx, cmd.Path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := session.execute(cmd.Path); err != nil {
		return 1
	}
	return 0
}

func printProgram(cmd CliResult, cfg *config.Config, stdout, stderr io.Writer) int {
	collector, err := newCollector(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	interpreter := interp.New(collector, interp.WithSearchPaths(cfg.SearchPaths...))
	program, err := interpreter.ParseFile(cmd.Path)
	if err != nil {
		reportFailure(stderr, cmd.Path, err)
		return 1
	}

	if cmd.Command == COMMAND_FMT {
		fmt.Fprint(stdout, ast.Print(program))
		return 0
	}
	if err := ast.Dump(stdout, program); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func showEnv(w io.Writer, cfg *config.Config) {
	source := cfg.Source
	if source == "" {
		source = "(defaults)"
	}
	configDir, err := config.ConfigDir(config.APP_NAME)
	if err != nil {
		configDir = "(unknown)"
	}

	fmt.Fprintf(w, "NX_VERSION='%s'\n", VERSION)
	fmt.Fprintf(w, "NX_CONFIG='%s'\n", source)
	fmt.Fprintf(w, "NX_CONFIG_DIR='%s'\n", configDir)
	fmt.Fprintf(w, "NX_COLOR='%s'\n", cfg.Color)
	fmt.Fprintf(w, "NX_SEARCH_PATHS='%v'\n", cfg.SearchPaths)
	fmt.Fprintf(w, "NX_TRACE='%t'\n", cfg.Trace.Enabled)
	fmt.Fprintf(w, "NX_TRACE_FUNCTIONS='%v'\n", cfg.Trace.Functions)
	fmt.Fprintf(w, "NX_WATCH_DEBOUNCE='%s'\n", cfg.Watch.Debounce)
}

func newCollector(cfg *config.Config, stderr io.Writer) (*diagnostics.Collector, error) {
	mode, err := diagnostics.ParseColorMode(cfg.Color)
	if err != nil {
		return nil, err
	}
	collector := diagnostics.NewWithWriter(stderr)
	collector.SetColor(mode)
	return collector, nil
}

// reportFailure prints what the collector has not already shown.
func reportFailure(stderr io.Writer, path string, err error) {
	switch {
	case errors.Is(err, diagnostics.ErrCompilerErrorFound):
		fmt.Fprintln(stderr, "Failed to parse program")
	case errors.Is(err, interp.ErrMainNotFound), errors.Is(err, interp.ErrCallDepthExceeded):
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		fmt.Fprintf(stderr, "Error: Could not open file: %s\n", path)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
}

func newRunID() string {
	return uuid.NewString()
}
