// Package gofront lowers Go syntax trees into the extraction tree.
package gofront

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"

	"github.com/gnolang/loopx/internal/syntax"
)

type Frontend struct{}

func New() *Frontend {
	return &Frontend{}
}

func (*Frontend) Name() string {
	return "go"
}

func (*Frontend) Extensions() []string {
	return []string{".go"}
}

func (f *Frontend) Parse(_ context.Context, filename string, src []byte) (*syntax.File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return Lower(fset, file), nil
}

// Lower converts a parsed file. Function declarations without a body are
// skipped, as are type and import declarations.
func Lower(fset *token.FileSet, file *ast.File) *syntax.File {
	l := &lowerer{fset: fset}
	out := &syntax.File{}
	if name := fset.Position(file.Package).Filename; name != "" {
		out.Name = filepath.Base(name)
	}
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Body != nil {
				out.Funcs = append(out.Funcs, l.funcDecl(d))
			}
		case *ast.GenDecl:
			if d.Tok == token.VAR || d.Tok == token.CONST {
				out.Globals = append(out.Globals, l.genDecl(d))
			}
		case *ast.BadDecl:
			out.Skipped = append(out.Skipped, syntax.Unsupported{At: l.pos(d.Pos()), Kind: "malformed declaration"})
		}
	}
	return out
}

// FuncName returns the name a function is extracted under: f for plain
// functions and T.m for methods.
func FuncName(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return d.Name.Name
	}
	return receiverType(d.Recv.List[0].Type) + "." + d.Name.Name
}

func receiverType(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.StarExpr:
		return receiverType(t.X)
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	case *ast.Ident:
		return t.Name
	}
	return "?"
}

type lowerer struct {
	fset *token.FileSet
}

func (l *lowerer) pos(p token.Pos) syntax.Pos {
	if !p.IsValid() {
		return syntax.Pos{}
	}
	position := l.fset.Position(p)
	return syntax.Pos{Line: position.Line, Column: position.Column}
}

func (l *lowerer) funcDecl(d *ast.FuncDecl) *syntax.FuncDecl {
	fd := &syntax.FuncDecl{At: l.pos(d.Pos()), Name: FuncName(d)}
	var fields []*ast.Field
	if d.Recv != nil {
		fields = append(fields, d.Recv.List...)
	}
	if d.Type.Params != nil {
		fields = append(fields, d.Type.Params.List...)
	}
	for _, field := range fields {
		typ := typeString(field.Type)
		for _, name := range field.Names {
			fd.Params = append(fd.Params, syntax.Param{Name: name.Name, Type: typ})
		}
	}
	fd.Body = l.block(d.Body)
	return fd
}
