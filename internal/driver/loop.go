package driver

import (
	"github.com/gnolang/loopx/internal/model"
	"github.com/gnolang/loopx/internal/rewrite"
	"github.com/gnolang/loopx/internal/syntax"
)

// buildLoop fills loop with the traces of one loop statement.
func (d *Driver) buildLoop(stmt syntax.Stmt, loop *model.Loop) error {
	switch s := stmt.(type) {
	case syntax.For:
		return d.forLoop(s, loop)
	case syntax.While:
		return d.whileLoop(s, loop)
	case syntax.DoWhile:
		return d.doWhileLoop(s, loop)
	}
	d.unsupported(stmt.Position(), syntax.Describe(stmt))
	return nil
}

// openLoop adds the entry trace, guarded by cond, and the frozen exit trace,
// guarded by its negation. Side effects of the first test are visible in
// both. A nil cond loops unconditionally.
func (d *Driver) openLoop(loop *model.Loop, cond syntax.Expr, pos syntax.Pos) error {
	table := model.NewVariableTable()
	var enter, exit syntax.Expr = syntax.Bool(true), syntax.Bool(false)
	if cond != nil {
		if err := ApplyExpression(cond, table); err != nil {
			return at(pos, err)
		}
		enter, exit = rewrite.Clone(cond), syntax.Not(cond)
	}
	loop.AddPath(model.NewLoopPath(table, model.NewConstraintList(enter), false))
	loop.AddPath(model.NewLoopPath(table.Clone(), model.NewConstraintList(exit), true))
	return nil
}

func (d *Driver) forLoop(s syntax.For, loop *model.Loop) error {
	// Init runs once, before the first test; it is the loop's entry state.
	for _, init := range s.Init {
		switch init := init.(type) {
		case syntax.Decl:
			if err := d.declare(init, loop.LocalVariables); err != nil {
				return err
			}
		case syntax.ExprStmt:
			if err := ApplyExpression(init.X, loop.LocalVariables); err != nil {
				return at(init.At, err)
			}
		default:
			d.unsupported(init.Position(), syntax.Describe(init))
		}
	}
	if err := d.openLoop(loop, s.Cond, s.At); err != nil {
		return err
	}
	if err := d.loopStmt(s.Body, loop); err != nil {
		return err
	}
	if s.Post != nil {
		return d.updateLive(s.Post, loop, s.At)
	}
	return nil
}

func (d *Driver) whileLoop(s syntax.While, loop *model.Loop) error {
	if s.Cond == nil {
		return at(s.At, ErrMissingCondition)
	}
	if err := d.openLoop(loop, s.Cond, s.At); err != nil {
		return err
	}
	return d.loopStmt(s.Body, loop)
}

// doWhileLoop runs the body once unguarded, then splits the traces on the
// trailing test.
func (d *Driver) doWhileLoop(s syntax.DoWhile, loop *model.Loop) error {
	if s.Cond == nil {
		return at(s.At, ErrMissingCondition)
	}
	loop.AddPath(model.NewLoopPath(model.NewVariableTable(), model.NewConstraintList(), false))
	if err := d.loopStmt(s.Body, loop); err != nil {
		return err
	}

	negated := loop.Fork()
	if err := d.updateLive(s.Cond, loop, s.At); err != nil {
		return err
	}
	if err := d.updateLive(s.Cond, negated, s.At); err != nil {
		return err
	}
	notCond := syntax.Not(s.Cond)
	for _, p := range negated.Paths {
		p.Constraints.Add(notCond)
		p.Freeze()
	}
	loop.AddGuard(rewrite.Clone(s.Cond))
	return at(s.At, loop.Merge(negated))
}

func (d *Driver) loopStmts(stmts []syntax.Stmt, loop *model.Loop) error {
	for _, s := range stmts {
		if !loop.HasLive() {
			// every trace has left the loop; the rest is unreachable
			return nil
		}
		if err := d.loopStmt(s, loop); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) loopStmt(stmt syntax.Stmt, loop *model.Loop) error {
	switch s := stmt.(type) {
	case nil:
		return nil
	case syntax.Block:
		return d.loopStmts(s.Stmts, loop)
	case syntax.ExprStmt:
		return d.updateLive(s.X, loop, s.At)
	case syntax.Decl:
		return d.declare(s, loop.LocalVariables)
	case syntax.If:
		return d.loopIf(s, loop)
	case syntax.For, syntax.While, syntax.DoWhile:
		inner := model.NewLoop(d.names.Loop())
		loop.AddInnerLoop(inner)
		return d.buildLoop(s, inner)
	case syntax.Break:
		loop.FreezeAll()
		return nil
	case syntax.Return:
		if err := d.updateLive(s.Value, loop, s.At); err != nil {
			return err
		}
		loop.FreezeAll()
		return nil
	default:
		d.unsupported(stmt.Position(), syntax.Describe(stmt))
		return nil
	}
}

// loopIf forks the live traces: loop keeps the ones where the condition
// holds and a fork takes the rest. The fork is merged back afterwards.
func (d *Driver) loopIf(s syntax.If, loop *model.Loop) error {
	if s.Cond == nil {
		return at(s.At, ErrMissingCondition)
	}
	if err := d.updateLive(s.Cond, loop, s.At); err != nil {
		return err
	}
	negated := loop.Fork()
	notCond := syntax.Not(s.Cond)
	for _, p := range negated.Paths {
		p.Constraints.Add(notCond)
	}
	loop.AddGuard(rewrite.Clone(s.Cond))

	if err := d.loopStmt(s.Then, loop); err != nil {
		return err
	}
	if s.Else != nil {
		if err := d.loopStmt(s.Else, negated); err != nil {
			return err
		}
	}
	return at(s.At, loop.Merge(negated))
}

// updateLive applies e to every live trace of loop.
func (d *Driver) updateLive(e syntax.Expr, loop *model.Loop, pos syntax.Pos) error {
	if e == nil {
		return nil
	}
	for _, p := range loop.LivePaths() {
		if err := ApplyExpression(e, p.Variables); err != nil {
			return at(pos, err)
		}
	}
	return nil
}
