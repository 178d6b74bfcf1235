package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/loopx/formatter"
	"github.com/gnolang/loopx/internal/driver"
	"github.com/gnolang/loopx/internal/frontend"
	"github.com/gnolang/loopx/internal/frontend/cfront"
	"github.com/gnolang/loopx/internal/frontend/gofront"
)

// Engine manages the extraction process for single files.
type Engine struct {
	logger    *zap.Logger
	frontends *frontend.Registry
	ignored   []string
	functions []string
	cache     *Cache

	watchMu sync.Mutex
	watcher *fsnotify.Watcher
}

type Option func(*Engine)

// WithIgnorePaths skips files matching any of the glob patterns. A pattern
// is matched against both the full path and the base name.
func WithIgnorePaths(patterns []string) Option {
	return func(e *Engine) {
		e.ignored = append(e.ignored, patterns...)
	}
}

// WithFunctions restricts documents to the named functions.
func WithFunctions(names []string) Option {
	return func(e *Engine) {
		e.functions = names
	}
}

func WithCache(c *Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithFrontends replaces the default C and Go front-ends.
func WithFrontends(frontends ...frontend.Frontend) Option {
	return func(e *Engine) {
		e.frontends = frontend.NewRegistry(frontends...)
	}
}

// NewEngine creates an engine with the C and Go front-ends registered.
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:    logger,
		frontends: frontend.NewRegistry(cfront.New(), gofront.New()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) IgnorePath(pattern string) {
	e.ignored = append(e.ignored, pattern)
}

// Accepts reports whether filename has a registered front-end and is not
// ignored.
func (e *Engine) Accepts(filename string) bool {
	return e.frontends.Supports(filename) && !e.isIgnored(filename)
}

func (e *Engine) isIgnored(path string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range e.ignored {
		if ok, _ := filepath.Match(pattern, slashed); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		// "dir/" ignores everything below any directory named dir
		if strings.HasSuffix(pattern, "/") &&
			(strings.HasPrefix(slashed, pattern) || strings.Contains(slashed, "/"+pattern)) {
			return true
		}
	}
	return false
}

// Run extracts the document for the file at filename.
func (e *Engine) Run(ctx context.Context, filename string) (*formatter.Document, error) {
	if e.cache != nil {
		if doc, ok := e.cache.Get(filename); ok {
			e.logger.Debug("cache hit", zap.String("file", filename))
			return doc.Filter(e.functions), nil
		}
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	doc, err := e.extract(ctx, filename, src)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Set(filename, doc); err != nil {
			e.logger.Warn("failed to update cache", zap.String("file", filename), zap.Error(err))
		}
	}
	return doc.Filter(e.functions), nil
}

// RunSource extracts the document for in-memory source. The file name only
// selects the front-end and labels the result.
func (e *Engine) RunSource(ctx context.Context, filename string, src []byte) (*formatter.Document, error) {
	doc, err := e.extract(ctx, filename, src)
	if err != nil {
		return nil, err
	}
	return doc.Filter(e.functions), nil
}

func (e *Engine) extract(ctx context.Context, filename string, src []byte) (*formatter.Document, error) {
	fe, err := e.frontends.Lookup(filename)
	if err != nil {
		return nil, err
	}

	file, err := fe.Parse(ctx, filename, src)
	if err != nil {
		e.logger.Error("failed to parse file", zap.String("file", filename), zap.String("frontend", fe.Name()), zap.Error(err))
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}

	d := driver.New(e.logger.With(zap.String("file", filename)))
	prog, err := d.Extract(file)
	if err != nil {
		e.logger.Error("extraction failed", zap.String("file", filename), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	var warnings []string
	for _, w := range d.Warnings() {
		warnings = append(warnings, w.String())
	}
	return formatter.NewDocument(filename, prog, warnings), nil
}
