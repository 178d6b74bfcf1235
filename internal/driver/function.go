package driver

import (
	"github.com/gnolang/loopx/internal/model"
	"github.com/gnolang/loopx/internal/rewrite"
	"github.com/gnolang/loopx/internal/syntax"
)

// compound reports whether s starts a new step instead of joining the
// current straight-line run.
func compound(s syntax.Stmt) bool {
	switch s.(type) {
	case syntax.Block, syntax.If, syntax.For, syntax.While, syntax.DoWhile, syntax.Switch:
		return true
	}
	return false
}

// funcStmts walks a statement list, collecting maximal straight-line runs
// into blocks.
func (d *Driver) funcStmts(stmts []syntax.Stmt, fn *model.Function) error {
	for i := 0; i < len(stmts); {
		if !fn.HasLive() {
			// every path has returned
			return nil
		}
		if compound(stmts[i]) {
			if err := d.funcStmt(stmts[i], fn); err != nil {
				return err
			}
			i++
			continue
		}
		j := i
		for j < len(stmts) && !compound(stmts[j]) {
			j++
		}
		returned, err := d.straightLine(stmts[i:j], fn)
		if err != nil || returned {
			return err
		}
		i = j
	}
	return nil
}

// modelled reports whether the driver folds s into a block.
func modelled(s syntax.Stmt) bool {
	switch s.(type) {
	case syntax.ExprStmt, syntax.Decl, syntax.Return:
		return true
	}
	return false
}

// straightLine folds one run into a new block and appends it to the live
// paths. It reports whether the run ended in a return. A run with nothing
// to fold only reports its statements and records no block.
func (d *Driver) straightLine(run []syntax.Stmt, fn *model.Function) (bool, error) {
	empty := true
	for _, stmt := range run {
		if modelled(stmt) {
			empty = false
			break
		}
	}
	if empty {
		for _, stmt := range run {
			d.unsupported(stmt.Position(), syntax.Describe(stmt))
		}
		return false, nil
	}

	block := model.NewBlock(d.names.Block())
	fn.AddBlock(block)
	for _, stmt := range run {
		switch s := stmt.(type) {
		case syntax.ExprStmt:
			if err := ApplyExpression(s.X, block.Variables); err != nil {
				return false, at(s.At, err)
			}
		case syntax.Decl:
			if err := d.declare(s, fn.Variables); err != nil {
				return false, err
			}
		case syntax.Return:
			if err := ApplyExpression(s.Value, block.Variables); err != nil {
				return false, at(s.At, err)
			}
			fn.Return(block.Name, rewrite.Clone(s.Value))
			return true, nil
		default:
			d.unsupported(stmt.Position(), syntax.Describe(stmt))
		}
	}
	fn.AppendStep(block.Name)
	return false, nil
}

func (d *Driver) funcStmt(stmt syntax.Stmt, fn *model.Function) error {
	switch s := stmt.(type) {
	case nil:
		return nil
	case syntax.Block:
		return d.funcStmts(s.Stmts, fn)
	case syntax.If:
		return d.funcIf(s, fn)
	case syntax.For, syntax.While, syntax.DoWhile:
		loop := model.NewLoop(d.names.Loop())
		fn.AddLoop(loop)
		fn.AppendStep(loop.Name)
		return d.buildLoop(s, loop)
	case syntax.Switch:
		d.unsupported(s.At, syntax.Describe(s))
		return nil
	default:
		return d.funcStmts([]syntax.Stmt{stmt}, fn)
	}
}

// funcIf forks the live paths: fn keeps the ones where the condition holds
// and a clone sharing fn's variable table takes the rest.
func (d *Driver) funcIf(s syntax.If, fn *model.Function) error {
	if s.Cond == nil {
		return at(s.At, ErrMissingCondition)
	}
	if err := ApplyExpression(s.Cond, fn.Variables); err != nil {
		return at(s.At, err)
	}
	negated := fn.CloneNotReturnPaths(&d.names)
	negated.AddGuard(syntax.Not(s.Cond))
	fn.AddGuard(rewrite.Clone(s.Cond))

	if err := d.funcStmt(s.Then, fn); err != nil {
		return err
	}
	if s.Else != nil {
		if err := d.funcStmt(s.Else, negated); err != nil {
			return err
		}
	}
	return at(s.At, fn.Merge(negated))
}
