package interp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nx-lang/nx/internal/ast"
	"github.com/nx-lang/nx/internal/lexer"
	"github.com/nx-lang/nx/internal/modules"
	"github.com/nx-lang/nx/internal/parser"
)

const SOURCE_EXTENSION = ".nx"

// loadImportedModules looks for the source of every imported module that
// no parsed file declares. "import util;" loads util.nx and
// "import lib.util;" loads lib/util.nx, from the entry directory first and
// then from the search paths. The modules found are appended to program
// and their own imports are resolved the same way. Standard modules never
// touch the filesystem and imports with no file are left alone.
func (interp *Interpreter) loadImportedModules(program *ast.Module, dir string) error {
	dirs := interp.moduleDirs(dir)

	for {
		declared := make(map[string]bool)
		var imports []string
		collectModules(program, declared, &imports)

		var pending []string
		for _, path := range imports {
			if strings.HasPrefix(path, modules.STD_PREFIX) || path == "std" {
				continue
			}
			if declared[path] || declared[modules.LastSegment(path)] {
				continue
			}
			file, ok := findModuleFile(dirs, path)
			if !ok {
				interp.logger.Debug("no source file for imported module", "module", path)
				continue
			}
			if interp.loaded[file] {
				continue
			}
			pending = append(pending, file)
		}

		if len(pending) == 0 {
			return nil
		}

		for _, file := range pending {
			if interp.loaded[file] {
				continue
			}
			interp.loaded[file] = true

			modulesFound, err := interp.parseModuleFile(file, dir)
			if err != nil {
				return err
			}
			program.Body = append(program.Body, modulesFound...)
		}
	}
}

func (interp *Interpreter) parseModuleFile(file, entryDir string) ([]ast.Node, error) {
	name := file
	if rel, err := filepath.Rel(entryDir, file); err == nil && !strings.HasPrefix(rel, "..") {
		name = rel
	}
	loc := &ast.Loc{Name: name, Dir: filepath.Dir(file), Path: file}

	lex, err := lexer.NewFromFilePath(loc, interp.collector)
	if err != nil {
		return nil, fmt.Errorf("loading module file: %w", err)
	}
	interp.logger.Debug("loading module file", "path", file)

	loaded, err := parser.New(interp.collector, interp.modules).ParseFile(lex)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return loaded.Body, nil
}

func (interp *Interpreter) moduleDirs(entryDir string) []string {
	dirs := []string{entryDir}
	for _, path := range interp.searchPaths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(entryDir, path)
		}
		dirs = append(dirs, path)
	}
	return dirs
}

func findModuleFile(dirs []string, modulePath string) (string, bool) {
	rel := filepath.FromSlash(strings.ReplaceAll(modulePath, ".", "/")) + SOURCE_EXTENSION
	for _, dir := range dirs {
		candidate := filepath.Join(dir, rel)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if abs, err := filepath.Abs(candidate); err == nil {
			candidate = abs
		}
		return candidate, true
	}
	return "", false
}

func collectModules(module *ast.Module, declared map[string]bool, imports *[]string) {
	for _, child := range module.Body {
		m, ok := child.(*ast.Module)
		if !ok {
			continue
		}
		declared[m.Name] = true
		*imports = append(*imports, m.Imports...)
		collectModules(m, declared, imports)
	}
}
