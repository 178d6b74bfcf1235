// Package cfront lowers C sources into the extraction tree using the
// tree-sitter C grammar.
package cfront

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/gnolang/loopx/internal/syntax"
)

// ErrSyntax is returned when the source does not parse as C.
var ErrSyntax = errors.New("syntax error")

type Frontend struct {
	lang *sitter.Language
}

func New() *Frontend {
	return &Frontend{lang: c.GetLanguage()}
}

func (*Frontend) Name() string {
	return "c"
}

func (*Frontend) Extensions() []string {
	return []string{".c", ".h"}
}

// Parse parses src and lowers it. A parser is created per call, so Parse may
// be used from several goroutines.
func (f *Frontend) Parse(ctx context.Context, filename string, src []byte) (*syntax.File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(f.lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%s:%s: %w", filename, position(firstError(root)), ErrSyntax)
	}

	l := &lowerer{src: src}
	out := &syntax.File{Name: filepath.Base(filename)}
	l.topLevel(root, out)
	return out, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return n
}

func position(n *sitter.Node) syntax.Pos {
	if n == nil {
		return syntax.Pos{}
	}
	p := n.StartPoint()
	return syntax.Pos{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}
