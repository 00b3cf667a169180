package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

type Command int

const (
	COMMAND_RUN Command = iota
	COMMAND_AST
	COMMAND_FMT
	COMMAND_ENV
	COMMAND_HELP
	COMMAND_VERSION
)

type CliResult struct {
	Command    Command
	Path       string
	ConfigPath string
	Watch      bool
	Trace      bool
	Verbose    bool
}

var ErrUsage = errors.New("Usage: nx <source-file.nx>")

var HELP_COMMAND string = `nx - a small module-oriented scripting language.

Usage:
  nx <file.nx>
  nx <command> [arguments]

Available Commands:
  run [flags] <file.nx>    Runs the program, starting at Main.main
      -watch        Run again whenever a source file changes
      -trace        Log function calls (filtered by trace.functions)
      -v            Verbose logging
      -config path  Read settings from path instead of nx.toml

  ast [-config path] <file.nx>   Prints the syntax tree as YAML
  fmt [-config path] <file.nx>   Prints the program in canonical form
  env [-config path]             Shows the resolved configuration
  version                        Shows the nx version
  help                           Shows this help message

Examples:
  nx hello.nx                   Run hello.nx
  nx run -trace -v calc.nx      Run calc.nx and log every call
  nx run -watch app/main.nx     Run app/main.nx on every change
  nx ast hello.nx               Dump the syntax tree of hello.nx
`

func cli(args []string) (CliResult, error) {
	result := CliResult{}

	if len(args) == 0 {
		return result, ErrUsage
	}

	command := args[0]
	rest := args[1:]
	switch command {
	case "help", "-h", "-help", "--help":
		result.Command = COMMAND_HELP
		return result, nil
	case "version", "-version", "--version":
		result.Command = COMMAND_VERSION
		return result, nil
	case "run":
		result.Command = COMMAND_RUN
	case "ast":
		result.Command = COMMAND_AST
	case "fmt":
		result.Command = COMMAND_FMT
	case "env":
		result.Command = COMMAND_ENV
	default:
		// nx [flags] <file>
		result.Command = COMMAND_RUN
		rest = args
	}

	fs := flag.NewFlagSet("nx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&result.ConfigPath, "config", "", "")
	if result.Command == COMMAND_RUN {
		fs.BoolVar(&result.Watch, "watch", false, "")
		fs.BoolVar(&result.Trace, "trace", false, "")
		fs.BoolVar(&result.Verbose, "v", false, "")
	}
	if err := fs.Parse(rest); err != nil {
		return result, err
	}

	positional := fs.Args()
	if result.Command == COMMAND_ENV {
		if len(positional) > 0 {
			return result, fmt.Errorf("unexpected arguments: %s", strings.Join(positional, " "))
		}
		return result, nil
	}

	switch len(positional) {
	case 0:
		return result, ErrUsage
	case 1:
		result.Path = positional[0]
	default:
		return result, fmt.Errorf("expected a single source file, got %s", strings.Join(positional, " "))
	}
	return result, nil
}
