// Package driver walks statement trees and builds the path model: it forks
// traces at conditionals, folds updates into live traces and merges the
// branches back together.
package driver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gnolang/loopx/internal/model"
	"github.com/gnolang/loopx/internal/syntax"
)

// Driver extracts the model of one file. It is not safe for concurrent use;
// create one per file.
type Driver struct {
	logger   *zap.Logger
	names    model.Names
	warnings []Warning
	function string
}

func New(logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{logger: logger}
}

// Warnings returns the constructs skipped so far.
func (d *Driver) Warnings() []Warning {
	return d.warnings
}

// Extract builds the program model for file. An error means the tree broke
// an invariant; no partial result is returned.
func (d *Driver) Extract(file *syntax.File) (*model.Program, error) {
	prog := model.NewProgram(file.Name)
	for _, s := range file.Skipped {
		d.unsupported(s.At, s.Kind)
	}
	for _, decl := range file.Globals {
		if err := d.declare(decl, prog.Variables); err != nil {
			return nil, err
		}
	}
	for _, fd := range file.Funcs {
		fn, err := d.extractFunction(fd)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", fd.Name, err)
		}
		prog.AddFunction(fn)
	}
	return prog, nil
}

func (d *Driver) extractFunction(fd *syntax.FuncDecl) (*model.Function, error) {
	d.function = fd.Name
	defer func() { d.function = "" }()

	fn := model.NewFunction(fd.Name)
	for _, p := range fd.Params {
		fn.AddParameter(p.Name)
		fn.Variables.Insert(model.Declare(p.Name, p.Type, nil))
	}
	fn.AddPath(model.NewPath(d.names.Path()))

	if err := d.funcStmts(fd.Body.Stmts, fn); err != nil {
		return nil, err
	}
	return fn, nil
}

// declare folds each initializer into table and then binds the variable.
func (d *Driver) declare(decl syntax.Decl, table *model.VariableTable) error {
	for _, spec := range decl.Specs {
		if err := ApplyExpression(spec.Init, table); err != nil {
			return at(decl.At, err)
		}
		table.Insert(model.Declare(spec.Name, spec.Type, spec.Init))
	}
	return nil
}

func (d *Driver) unsupported(pos syntax.Pos, construct string) {
	w := Warning{Pos: pos, Construct: construct, Function: d.function}
	d.warnings = append(d.warnings, w)
	d.logger.Warn("unsupported construct",
		zap.String("construct", construct),
		zap.Stringer("pos", pos),
		zap.String("function", d.function),
	)
}

// at prefixes err with pos. A nil err stays nil.
func at(pos syntax.Pos, err error) error {
	if err == nil || !pos.IsValid() {
		return err
	}
	return fmt.Errorf("%s: %w", pos, err)
}
