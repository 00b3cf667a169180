// Package interp runs parsed nx programs by walking their syntax tree.
//
// An Interpreter owns its symbol table and module registry, so several
// interpreters can run side by side. Running a program happens in two
// passes: the first registers modules and evaluates top-level variable
// declarations, the second calls Main.main.
package interp

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nx-lang/nx/internal/ast"
	"github.com/nx-lang/nx/internal/diagnostics"
	"github.com/nx-lang/nx/internal/lexer"
	"github.com/nx-lang/nx/internal/modules"
	"github.com/nx-lang/nx/internal/parser"
	"github.com/nx-lang/nx/internal/scope"
)

const (
	ENTRY_MODULE   = "Main"
	ENTRY_FUNCTION = "main"

	DefaultMaxDepth = 10000
)

var (
	ErrMainNotFound      = errors.New("Main function not found")
	ErrCallDepthExceeded = errors.New("maximum call depth exceeded")
)

var _ modules.Evaluator = (*Interpreter)(nil)

type Interpreter struct {
	collector *diagnostics.Collector
	symbols   *scope.SymbolTable
	modules   *modules.Manager

	stdout      io.Writer
	logger      *slog.Logger
	tracer      *Tracer
	searchPaths []string

	maxDepth int
	depth    int
	// Set when execution has to be abandoned, every evaluation then returns
	// immediately.
	halted bool

	// Absolute paths of every source file parsed so far.
	loaded map[string]bool
}

type Option func(*Interpreter)

func WithStdout(w io.Writer) Option {
	return func(interp *Interpreter) { interp.stdout = w }
}

func WithLogger(logger *slog.Logger) Option {
	return func(interp *Interpreter) { interp.logger = logger }
}

// WithTracer logs, at debug level, every call whose qualified name the
// tracer matches.
func WithTracer(tracer *Tracer) Option {
	return func(interp *Interpreter) { interp.tracer = tracer }
}

// WithSearchPaths adds directories searched for the source of imported
// modules no loaded file declares. Relative paths are resolved against
// the directory of the entry file.
func WithSearchPaths(paths ...string) Option {
	return func(interp *Interpreter) { interp.searchPaths = append(interp.searchPaths, paths...) }
}

func WithMaxDepth(depth int) Option {
	return func(interp *Interpreter) {
		if depth > 0 {
			interp.maxDepth = depth
		}
	}
}

func New(collector *diagnostics.Collector, opts ...Option) *Interpreter {
	interp := &Interpreter{
		collector: collector,
		symbols:   scope.NewSymbolTable(),
		modules:   modules.New(),
		stdout:    os.Stdout,
		logger:    slog.New(slog.DiscardHandler),
		maxDepth:  DefaultMaxDepth,
		loaded:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(interp)
	}
	interp.registerStdlib()
	return interp
}

func (interp *Interpreter) Modules() *modules.Manager { return interp.modules }

func (interp *Interpreter) Collector() *diagnostics.Collector { return interp.collector }

// ParseFile parses the entry file and every module file it pulls in
// through imports. The program is returned even when errors were reported,
// in which case the error wraps diagnostics.ErrCompilerErrorFound.
func (interp *Interpreter) ParseFile(path string) (*ast.Module, error) {
	loc, err := ast.LocFromPath(path)
	if err != nil {
		return nil, err
	}
	lex, err := lexer.NewFromFilePath(loc, interp.collector)
	if err != nil {
		return nil, err
	}
	interp.markLoaded(loc.Path)
	return interp.parse(lex, loc.Dir)
}

// ParseSource parses src as the entry file. Module files are searched for
// relative to dir.
func (interp *Interpreter) ParseSource(filename, dir string, src []byte) (*ast.Module, error) {
	loc := &ast.Loc{Name: filename, Dir: dir, Path: filepath.Join(dir, filename)}
	lex := lexer.New(loc, src, interp.collector)
	interp.markLoaded(loc.Path)
	return interp.parse(lex, dir)
}

func (interp *Interpreter) parse(lex *lexer.Lexer, dir string) (*ast.Module, error) {
	program, err := parser.New(interp.collector, interp.modules).ParseFile(lex)
	if err != nil {
		return program, fmt.Errorf("parsing %s: %w", lex.Filename(), err)
	}
	if err := interp.loadImportedModules(program, dir); err != nil {
		return program, err
	}
	return program, nil
}

// Run executes program: pass one registers every module and evaluates
// top-level variable declarations, pass two invokes Main.main.
func (interp *Interpreter) Run(program *ast.Module) error {
	interp.register(program, true)

	entry := ENTRY_MODULE + "." + ENTRY_FUNCTION
	if !interp.modules.HasFunction(entry) {
		interp.collector.ReportAndSave(diagnostics.Diag{
			Kind:    diagnostics.RUNTIME,
			Message: ErrMainNotFound.Error(),
		})
		return ErrMainNotFound
	}

	interp.logger.Debug("running entry point", "func", entry)
	interp.evalCall(&ast.FunctionCall{Name: entry})

	if interp.halted {
		return ErrCallDepthExceeded
	}
	if pushes, pops := interp.symbols.Balance(); pushes != pops {
		interp.logger.Warn("unbalanced scope stack", "pushes", pushes, "pops", pops)
	}
	return nil
}

// RunFile parses and runs path. Nothing is executed when parsing fails.
func (interp *Interpreter) RunFile(path string) error {
	program, err := interp.ParseFile(path)
	if err != nil {
		return err
	}
	return interp.Run(program)
}

// register is the first pass. The program root holds top-level modules,
// any other module reached is a nested one.
func (interp *Interpreter) register(module *ast.Module, root bool) {
	if !root {
		interp.modules.RegisterModule(module.Name)
	}

	for _, child := range module.Body {
		switch n := child.(type) {
		case *ast.Module:
			interp.register(n, false)
		case *ast.Function:
			if root {
				continue
			}
			if _, ok := interp.modules.UserFunction(module.Name + "." + n.Name); !ok {
				interp.modules.RegisterUserFunction(module.Name, n.Name, n.Params, n.ReturnType, n)
			}
		case *ast.VariableDeclaration:
			interp.Evaluate(n)
		}
	}
}

func (interp *Interpreter) markLoaded(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	interp.loaded[path] = true
}
