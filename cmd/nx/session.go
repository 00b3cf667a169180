package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/nx-lang/nx/internal/config"
	"github.com/nx-lang/nx/internal/interp"
	"github.com/nx-lang/nx/internal/watcher"
)

// session holds what every execution of a program shares. Each execution
// gets a fresh interpreter and its own run id.
type session struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	tracer *interp.Tracer
}

func newSession(cfg *config.Config, stdout, stderr io.Writer, logger *slog.Logger) (*session, error) {
	s := &session{cfg: cfg, stdout: stdout, stderr: stderr, logger: logger}
	if cfg.Trace.Enabled {
		tracer, err := interp.NewTracer(cfg.Trace.Functions)
		if err != nil {
			return nil, err
		}
		s.tracer = tracer
	}
	return s, nil
}

func (s *session) execute(path string) error {
	logger := s.logger.With("run_id", newRunID())

	collector, err := newCollector(s.cfg, s.stderr)
	if err != nil {
		reportFailure(s.stderr, path, err)
		return err
	}

	opts := []interp.Option{
		interp.WithStdout(s.stdout),
		interp.WithLogger(logger),
		interp.WithSearchPaths(s.cfg.SearchPaths...),
	}
	if s.tracer != nil {
		opts = append(opts, interp.WithTracer(s.tracer))
	}

	logger.Debug("running program", "path", path)
	err = interp.New(collector, opts...).RunFile(path)
	if err != nil {
		reportFailure(s.stderr, path, err)
		logger.Debug("run failed", "error", err)
		return err
	}
	logger.Debug("run finished", "path", path)
	return nil
}

// watch runs path once, then again after every change to a source file
// next to it or under a search path, until ctx is done.
func (s *session) watch(ctx context.Context, path string) error {
	_ = s.execute(path)

	w, err := watcher.New(s.cfg.Watch.Debounce, s.cfg.Watch.Exclude, s.logger, func(changed []string) {
		s.logger.Info("source changed, running again", "files", changed)
		_ = s.execute(path)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(s.watchPaths(path)); err != nil {
		return err
	}
	s.logger.Info("watching for changes", "path", path)

	<-ctx.Done()
	return nil
}

func (s *session) watchPaths(path string) []string {
	entryDir := filepath.Dir(path)
	paths := []string{path}
	for _, dir := range s.cfg.SearchPaths {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(entryDir, dir)
		}
		paths = append(paths, dir)
	}
	return paths
}
