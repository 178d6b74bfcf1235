// Package extract is the batch API: it builds an engine from a
// configuration and runs it over files and directory trees.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnolang/loopx/formatter"
	"github.com/gnolang/loopx/internal"
)

type ExtractEngine interface {
	Run(ctx context.Context, filename string) (*formatter.Document, error)
	RunSource(ctx context.Context, filename string, src []byte) (*formatter.Document, error)
	Accepts(filename string) bool
}

// Processor extracts one file.
type Processor func(ctx context.Context, engine ExtractEngine, path string) (*formatter.Document, error)

// FileError is the failure to extract one file. Other files are still
// processed.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	if strings.Contains(e.Err.Error(), e.File) {
		return e.Err.Error()
	}
	return e.File + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// New creates an engine for config.
func New(config Config, logger *zap.Logger) (*internal.Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []internal.Option{
		internal.WithIgnorePaths(config.IgnorePaths),
		internal.WithFunctions(config.Functions),
	}
	if config.Cache.Enabled {
		cache, err := internal.NewCache(config.Cache.Dir)
		if err != nil {
			return nil, err
		}
		cache.SetMaxAge(config.Cache.MaxAge)
		opts = append(opts, internal.WithCache(cache))
	}
	return internal.NewEngine(logger, opts...), nil
}

type options struct {
	jobs     int
	progress io.Writer
}

type Option func(*options)

// WithJobs bounds the number of files processed at once. Values below one
// use runtime.NumCPU.
func WithJobs(n int) Option {
	return func(o *options) {
		o.jobs = n
	}
}

// WithProgress draws the progress bar on w instead of stderr.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

func newOptions(opts []Option) options {
	o := options{progress: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	if o.jobs < 1 {
		o.jobs = runtime.NumCPU()
	}
	return o
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine ExtractEngine,
	sources map[string][]byte,
) ([]*formatter.Document, error) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var docs []*formatter.Document
	for _, name := range names {
		doc, err := ProcessSource(ctx, engine, name, sources[name])
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.String("source", name), zap.Error(err))
			}
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ProcessFiles processes every path, continuing past failing files. The
// returned error joins the per-file errors.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine ExtractEngine,
	paths []string,
	processor Processor,
	opts ...Option,
) ([]*formatter.Document, error) {
	var (
		docs []*formatter.Document
		errs []error
	)
	for _, path := range paths {
		pathDocs, err := ProcessPath(ctx, logger, engine, path, processor, opts...)
		docs = append(docs, pathDocs...)
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			sortDocuments(docs)
			return docs, err
		}
		if logger != nil {
			logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
		}
		errs = append(errs, err)
	}

	sortDocuments(docs)
	return docs, errors.Join(errs...)
}

// ProcessPath processes a single file, or every accepted file below a
// directory.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine ExtractEngine,
	path string,
	processor Processor,
	opts ...Option,
) ([]*formatter.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &FileError{File: path, Err: fmt.Errorf("error accessing %s: %w", path, err)}
	}

	if !info.IsDir() {
		if !engine.Accepts(path) {
			return nil, nil
		}
		doc, err := processor(ctx, engine, path)
		if err != nil {
			return nil, &FileError{File: path, Err: err}
		}
		return []*formatter.Document{doc}, nil
	}

	files, err := collectFiles(engine, path)
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}
	return processConcurrently(ctx, logger, engine, path, files, processor, newOptions(opts))
}

// collectFiles lists the accepted files below root. Hidden directories are
// skipped.
func collectFiles(engine ExtractEngine, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if engine.Accepts(p) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

type fileResult struct {
	file string
	doc  *formatter.Document
	err  error
}

func processConcurrently(
	ctx context.Context,
	logger *zap.Logger,
	engine ExtractEngine,
	root string,
	files []string,
	processor Processor,
	o options,
) ([]*formatter.Document, error) {
	if len(files) == 0 {
		return nil, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(o.progress),
		progressbar.OptionSetDescription(root),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	results := make(chan fileResult, len(files))
	sem := make(chan struct{}, o.jobs)
	var wg sync.WaitGroup
	var cancelled error

dispatch:
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			doc, err := processor(ctx, engine, fp)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			results <- fileResult{file: fp, doc: doc, err: err}
			_ = bar.Add(1)
		}(file)
	}
	wg.Wait()
	close(results)
	_ = bar.Finish()

	var (
		docs []*formatter.Document
		errs []*FileError
	)
	for r := range results {
		if r.err != nil {
			errs = append(errs, &FileError{File: r.file, Err: r.err})
			continue
		}
		docs = append(docs, r.doc)
	}
	sortDocuments(docs)

	if cancelled != nil {
		return docs, cancelled
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].File < errs[j].File })
	joined := make([]error, len(errs))
	for i, err := range errs {
		joined[i] = err
	}
	return docs, errors.Join(joined...)
}

func sortDocuments(docs []*formatter.Document) {
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].File < docs[j].File })
}

func ProcessFile(ctx context.Context, engine ExtractEngine, path string) (*formatter.Document, error) {
	return engine.Run(ctx, path)
}

func ProcessSource(ctx context.Context, engine ExtractEngine, filename string, src []byte) (*formatter.Document, error) {
	return engine.RunSource(ctx, filename, src)
}
