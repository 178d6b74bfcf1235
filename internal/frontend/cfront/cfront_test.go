package cfront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/loopx/internal/driver"
	"github.com/gnolang/loopx/internal/model"
	"github.com/gnolang/loopx/internal/syntax"
)

const loopsSource = `
int f() {
  // test for normal loop
  int s, q, n;
  for (int i = 0; i < n; ++i) {
    if (i % 2 == 0) {
      s += i;
    } else {
      q += 2 * i;
    }
  }

  // test for nested if-else
  for (int i, j = 1, k = 0; i < 2; ++i) {
    if (i + 1 < 2) {
      i += 2;
    } else if (i > 3){
      j -= 3;
    } else {
      i += i;
    }
  }

  // test for nested loop
  for (int i = 0; i < 2; ++i) {
    for (int j = 0; j < 2; ++j) {
      s++;
      for (int k = 0; k < 3; ++k);
    }
    for (int j = 0; j < i; ++j);
  }

}

int main(int argc, char* argv[]) {
    f();
    return 0;
}
`

const declSource = `#include <stdio.h>
#define N 10

struct point { int x; int y; };

int total = 0, *cursor;
int helper(int);

static int scale(struct point *p, int k) {
    unsigned long m = (unsigned long)k;
    p->x *= k;
    *cursor = p->x + arr[k--];
    do {
        m >>= 1;
    } while (m != 0);
    switch (k) { case 1: break; }
    return k > 0 ? m : 0;
}
`

func parse(t *testing.T, src string) *syntax.File {
	t.Helper()
	file, err := New().Parse(context.Background(), "dir/test.c", []byte(src))
	require.NoError(t, err)
	return file
}

func bindings(table *model.VariableTable) map[string]string {
	out := make(map[string]string)
	for _, b := range table.Bindings() {
		out[b.Name()] = syntax.Render(b.Value())
	}
	return out
}

func TestLowerDeclarations(t *testing.T) {
	t.Parallel()
	file := parse(t, declSource)
	assert.Equal(t, "test.c", file.Name)
	assert.Empty(t, file.Skipped)

	require.Len(t, file.Globals, 1)
	assert.Equal(t, []syntax.VarSpec{
		{Name: "total", Type: "int", Init: syntax.Literal{Kind: syntax.LitInt, Value: "0"}},
		{Name: "cursor", Type: "int*"},
	}, file.Globals[0].Specs)

	require.Len(t, file.Funcs, 1)
	fn := file.Funcs[0]
	assert.Equal(t, "scale", fn.Name)
	assert.Equal(t, []syntax.Param{{Name: "p", Type: "struct point*"}, {Name: "k", Type: "int"}}, fn.Params)

	stmts := fn.Body.Stmts
	require.Len(t, stmts, 6)

	decl := stmts[0].(syntax.Decl)
	assert.Equal(t, "unsigned long", decl.Specs[0].Type)
	assert.Equal(t, "((unsigned long)k)", decl.Specs[0].Init.String())

	assert.Equal(t, "(p->x *= k)", stmts[1].(syntax.ExprStmt).X.String())
	assert.Equal(t, "((*cursor) = (p->x + arr[(k - 1)]))", stmts[2].(syntax.ExprStmt).X.String())

	loop := stmts[3].(syntax.DoWhile)
	assert.Equal(t, "(m != 0)", loop.Cond.String())
	assert.Equal(t, "(m >>= 1)", loop.Body.(syntax.Block).Stmts[0].(syntax.ExprStmt).X.String())

	assert.IsType(t, syntax.Switch{}, stmts[4])
	ret := stmts[5].(syntax.Return)
	assert.Equal(t, syntax.Opaque("k > 0 ? m : 0"), ret.Value)
	assert.Equal(t, 17, ret.At.Line)
}

func TestLowerUpdateForms(t *testing.T) {
	t.Parallel()
	file := parse(t, "void g(void) { ++a; a++; --b; b--; x = -y + !z + ~w + &v; }")
	require.Len(t, file.Funcs, 1)
	assert.Empty(t, file.Funcs[0].Params)

	var ops []syntax.UnaryOp
	for _, s := range file.Funcs[0].Body.Stmts[:4] {
		ops = append(ops, s.(syntax.ExprStmt).X.(syntax.Unary).Op)
	}
	assert.Equal(t, []syntax.UnaryOp{syntax.OpPreInc, syntax.OpPostInc, syntax.OpPreDec, syntax.OpPostDec}, ops)
	assert.Equal(t, "(x = ((((-y) + (!z)) + (~w)) + (&v)))", file.Funcs[0].Body.Stmts[4].(syntax.ExprStmt).X.String())
}

func TestSyntaxError(t *testing.T) {
	t.Parallel()
	_, err := New().Parse(context.Background(), "bad.c", []byte("int f( {"))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestExtractLoops(t *testing.T) {
	t.Parallel()
	d := driver.New(nil)
	prog, err := d.Extract(parse(t, loopsSource))
	require.NoError(t, err)
	assert.Empty(t, d.Warnings())
	assert.Equal(t, "test.c", prog.Name)
	require.Len(t, prog.Functions, 2)

	f := prog.Function("f")
	require.Len(t, f.Paths, 1)
	assert.Equal(t, []string{"block1", "loop1", "loop2", "loop3"}, f.Paths[0].Steps)
	assert.Equal(t, []string{"n", "q", "s"}, f.Variables.Names())

	// if/else inside a loop
	first := f.Loop("loop1")
	require.Len(t, first.Paths, 3)
	assert.Equal(t, "(i < n) && ((i % 2) == 0)", first.Paths[0].Constraints.String())
	assert.Equal(t, map[string]string{"s": "(s + i)", "i": "(i + 1)"}, bindings(first.Paths[0].Variables))
	assert.True(t, first.Paths[1].CanBreak())
	assert.Equal(t, "(i < n) && (!((i % 2) == 0))", first.Paths[2].Constraints.String())
	assert.Equal(t, map[string]string{"q": "(q + (2 * i))", "i": "(i + 1)"}, bindings(first.Paths[2].Variables))
	assert.Equal(t, "0", first.LocalVariables.Get("i").Value().String())

	// else-if chain
	second := f.Loop("loop2")
	require.Len(t, second.Paths, 4)
	assert.Equal(t, map[string]string{"i": "((i + 2) + 1)"}, bindings(second.Paths[0].Variables))
	assert.Equal(t, map[string]string{"j": "(j - 3)", "i": "(i + 1)"}, bindings(second.Paths[2].Variables))
	assert.Equal(t, "(i < 2) && (!((i + 1) < 2)) && (i > 3)", second.Paths[2].Constraints.String())
	assert.Equal(t, map[string]string{"i": "((i + i) + 1)"}, bindings(second.Paths[3].Variables))
	assert.Equal(t, map[string]string{"i": "", "j": "1", "k": "0"}, bindings(second.LocalVariables))

	// nested loops
	third := f.Loop("loop3")
	require.Len(t, third.InnerLoops, 2)
	assert.Equal(t, "loop4", third.InnerLoops[0].Name)
	assert.Equal(t, "loop6", third.InnerLoops[1].Name)
	assert.Equal(t, []string{"loop4", "loop6"}, third.Paths[0].InnerLoops())

	inner := third.InnerLoops[0]
	require.Len(t, inner.InnerLoops, 1)
	assert.Equal(t, "loop5", inner.InnerLoops[0].Name)
	assert.Equal(t, map[string]string{"s": "(s + 1)", "j": "(j + 1)"}, bindings(inner.Paths[0].Variables))

	main := prog.Function("main")
	assert.Equal(t, []string{"argc", "argv"}, main.Parameters)
	assert.Equal(t, "char*[]", main.Variables.Get("argv").Type())
	require.Len(t, main.Paths, 1)
	assert.True(t, main.Paths[0].IsReturn())
	assert.Equal(t, "0", main.Paths[0].ReturnValue.String())
}
