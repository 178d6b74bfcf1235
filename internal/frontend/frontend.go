// Package frontend defines how source files are turned into syntax trees.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gnolang/loopx/internal/syntax"
)

// ErrUnsupportedLanguage is returned for files no front-end claims.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Frontend parses one language.
type Frontend interface {
	Name() string
	// Extensions lists the file extensions handled, with the leading dot.
	Extensions() []string
	Parse(ctx context.Context, filename string, src []byte) (*syntax.File, error)
}

// Registry selects a front-end by file extension.
type Registry struct {
	byExt map[string]Frontend
}

func NewRegistry(frontends ...Frontend) *Registry {
	r := &Registry{byExt: make(map[string]Frontend)}
	for _, f := range frontends {
		r.Register(f)
	}
	return r
}

// Register adds f, replacing earlier front-ends for the same extensions.
func (r *Registry) Register(f Frontend) {
	for _, ext := range f.Extensions() {
		r.byExt[strings.ToLower(ext)] = f
	}
}

// Lookup returns the front-end for filename.
func (r *Registry) Lookup(filename string) (Frontend, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	f, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filename)
	}
	return f, nil
}

// Supports reports whether filename has a registered extension.
func (r *Registry) Supports(filename string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
