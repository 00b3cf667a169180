package ast

import (
	"fmt"
	"os"
	"path/filepath"
)

type Loc struct {
	Name string // file name, used in positions
	Dir  string // directory holding the file
	Path string
}

func LocFromPath(fullPath string) (*Loc, error) {
	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, expected a source file", fullPath)
	}

	loc := new(Loc)
	loc.Path = fullPath
	loc.Name = filepath.Base(fullPath)
	loc.Dir = filepath.Dir(fullPath)
	return loc, nil
}

func (l Loc) String() string {
	return fmt.Sprintf("Name: %s | Dir: %s | Path: %s", l.Name, l.Dir, l.Path)
}

// NewProgram returns the root node the parser fills with top-level modules.
func NewProgram() *Module {
	return &Module{Name: PROGRAM}
}
