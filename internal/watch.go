package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/loopx/formatter"
)

var (
	ErrAlreadyWatching = errors.New("already watching")
	ErrNotWatching     = errors.New("not watching")
)

// settle is how long to wait after a write so that a burst of writes is
// handled as one change.
const settle = 100 * time.Millisecond

// Report receives the result of re-extracting a changed file.
type Report func(filename string, doc *formatter.Document, err error)

// StartWatching re-extracts accepted files below dirs whenever they are
// written, until ctx is done or StopWatching is called.
func (e *Engine) StartWatching(ctx context.Context, dirs []string, report Report) error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if e.watcher != nil {
		return ErrAlreadyWatching
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != dir && e.isIgnored(path+"/") {
				return filepath.SkipDir
			}
			return w.Add(path)
		})
		if err != nil {
			w.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = w
	go e.watchLoop(ctx, w, report)
	return nil
}

func (e *Engine) StopWatching() error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if e.watcher == nil {
		return ErrNotWatching
	}
	err := e.watcher.Close()
	e.watcher = nil
	return err
}

func (e *Engine) watchLoop(ctx context.Context, w *fsnotify.Watcher, report Report) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			e.handleFileEvent(ctx, event, report)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(ctx context.Context, event fsnotify.Event, report Report) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if !e.Accepts(event.Name) {
		return
	}

	time.Sleep(settle)
	doc, err := e.Run(ctx, event.Name)
	if err != nil {
		e.logger.Error("re-extraction failed", zap.String("file", event.Name), zap.Error(err))
	}
	report(event.Name, doc, err)
}
