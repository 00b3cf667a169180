package interp

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Tracer selects which calls get logged. Patterns match qualified names
// with '.' as separator, so "Main.*" covers Main.main but not Main.a.b.
type Tracer struct {
	patterns []glob.Glob
}

func NewTracer(patterns []string) (*Tracer, error) {
	if len(patterns) == 0 {
		patterns = []string{"**"}
	}

	tracer := &Tracer{patterns: make([]glob.Glob, 0, len(patterns))}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid trace pattern %q: %w", pattern, err)
		}
		tracer.patterns = append(tracer.patterns, g)
	}
	return tracer, nil
}

func (tracer *Tracer) Match(qualified string) bool {
	if tracer == nil {
		return false
	}
	for _, g := range tracer.patterns {
		if g.Match(qualified) {
			return true
		}
	}
	return false
}
