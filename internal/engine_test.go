package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gnolang/loopx/internal/frontend"
	"github.com/gnolang/loopx/internal/frontend/cfront"
	"github.com/gnolang/loopx/internal/syntax"
)

const sumSource = `int sum(int n) {
    int s = 0;
    for (int i = 0; i < n; i++) {
        s += i;
    }
    return s;
}

int twice(int x) {
    return x * 2;
}
`

const countSource = `package p

func count(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEngineRun(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "sum.c", sumSource)
	engine := NewEngine(zap.NewNop())

	doc, err := engine.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, doc.File)
	assert.Equal(t, "sum.c", doc.Program)
	assert.Empty(t, doc.Warnings)
	require.Len(t, doc.Functions, 2)

	sum := doc.Functions[0]
	assert.Equal(t, "sum", sum.Name)
	assert.Equal(t, []string{"n"}, sum.Parameters)
	require.Len(t, sum.Loops, 1)
	assert.Equal(t, "loop1", sum.Loops[0].Name)
	require.Len(t, sum.Paths, 1)
	assert.Equal(t, []string{"block1", "loop1", "block2"}, sum.Paths[0].Steps)
	assert.True(t, sum.Paths[0].Returns)
	assert.Equal(t, "s", sum.Paths[0].Return)

	assert.Equal(t, "twice", doc.Functions[1].Name)
	assert.Equal(t, "(x * 2)", doc.Functions[1].Paths[0].Return)
}

func TestEngineRunSource(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	engine := NewEngine(zap.New(core))

	doc, err := engine.RunSource(context.Background(), "count.go", []byte(countSource))
	require.NoError(t, err)

	require.Len(t, doc.Functions, 1)
	assert.Equal(t, "count", doc.Functions[0].Name)
	assert.Equal(t, []string{"5:2: unsupported range loop in count"}, doc.Warnings)

	entries := logs.FilterMessage("unsupported construct").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "count.go", entries[0].ContextMap()["file"])
}

func TestEngineErrors(t *testing.T) {
	t.Parallel()
	engine := NewEngine(nil)
	ctx := context.Background()

	_, err := engine.RunSource(ctx, "main.rs", []byte("fn main() {}"))
	assert.ErrorIs(t, err, frontend.ErrUnsupportedLanguage)

	_, err = engine.RunSource(ctx, "bad.c", []byte("int f( {"))
	assert.ErrorIs(t, err, cfront.ErrSyntax)

	_, err = engine.Run(ctx, filepath.Join(t.TempDir(), "missing.c"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestEngineFunctionFilter(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil, WithFunctions([]string{"twice"}))
	doc, err := engine.RunSource(context.Background(), "sum.c", []byte(sumSource))
	require.NoError(t, err)
	require.Len(t, doc.Functions, 1)
	assert.Equal(t, "twice", doc.Functions[0].Name)
}

func TestEngineAccepts(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil, WithIgnorePaths([]string{"*_test.go", "vendor/"}))
	engine.IgnorePath("generated.c")

	tests := []struct {
		path string
		want bool
	}{
		{"src/main.c", true},
		{"src/util.h", true},
		{"pkg/x.go", true},
		{"pkg/x_test.go", false},
		{"vendor/lib.c", false},
		{"third/vendor/lib.c", false},
		{"src/generated.c", false},
		{"README.md", false},
		{"src/main.cpp", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.Accepts(tt.path), tt.path)
	}
}

type fakeFrontend struct{}

func (fakeFrontend) Name() string         { return "fake" }
func (fakeFrontend) Extensions() []string { return []string{".fake"} }

func (fakeFrontend) Parse(context.Context, string, []byte) (*syntax.File, error) {
	return &syntax.File{Name: "x.fake", Funcs: []*syntax.FuncDecl{{Name: "f"}}}, nil
}

func TestEngineWithFrontends(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil, WithFrontends(fakeFrontend{}))
	assert.True(t, engine.Accepts("x.fake"))
	assert.False(t, engine.Accepts("x.c"))

	doc, err := engine.RunSource(context.Background(), "x.fake", nil)
	require.NoError(t, err)
	require.Len(t, doc.Functions, 1)
	assert.Equal(t, "f", doc.Functions[0].Name)
}
