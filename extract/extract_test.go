package extract

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/loopx/formatter"
)

type mockExtractEngine struct {
	mock.Mock
}

func (m *mockExtractEngine) Run(ctx context.Context, filename string) (*formatter.Document, error) {
	args := m.Called(filename)
	doc, _ := args.Get(0).(*formatter.Document)
	return doc, args.Error(1)
}

func (m *mockExtractEngine) RunSource(ctx context.Context, filename string, src []byte) (*formatter.Document, error) {
	args := m.Called(filename, src)
	doc, _ := args.Get(0).(*formatter.Document)
	return doc, args.Error(1)
}

func (m *mockExtractEngine) Accepts(filename string) bool {
	ext := filepath.Ext(filename)
	return ext == ".c" || ext == ".go"
}

func createTempFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(paths[i]), 0o755))
		require.NoError(t, os.WriteFile(paths[i], []byte("int f(void) { return 0; }\n"), 0o644))
	}
	return paths
}

func docFor(file string) *formatter.Document {
	return &formatter.Document{File: file, Program: filepath.Base(file)}
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	engine := new(mockExtractEngine)
	engine.On("Run", "test.c").Return(docFor("test.c"), nil)

	doc, err := ProcessFile(context.Background(), engine, "test.c")
	require.NoError(t, err)
	assert.Equal(t, "test.c", doc.File)
	engine.AssertExpectations(t)
}

func TestProcessSources(t *testing.T) {
	t.Parallel()

	engine := new(mockExtractEngine)
	engine.On("RunSource", "a.c", []byte("int a;")).Return(docFor("a.c"), nil)
	engine.On("RunSource", "b.go", []byte("package b")).Return(docFor("b.go"), nil)

	docs, err := ProcessSources(context.Background(), zap.NewNop(), engine, map[string][]byte{
		"b.go": []byte("package b"),
		"a.c":  []byte("int a;"),
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.c", docs[0].File)
	assert.Equal(t, "b.go", docs[1].File)
	engine.AssertExpectations(t)
}

func TestProcessPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := createTempFiles(t, dir, "b.c", "a.c", "sub/c.go", "notes.txt", ".hidden/d.c")

	engine := new(mockExtractEngine)
	for _, p := range paths[:3] {
		engine.On("Run", p).Return(docFor(p), nil)
	}

	docs, err := ProcessPath(context.Background(), zap.NewNop(), engine, dir, ProcessFile,
		WithJobs(2), WithProgress(io.Discard))
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, paths[1], docs[0].File)
	assert.Equal(t, paths[0], docs[1].File)
	assert.Equal(t, paths[2], docs[2].File)
	engine.AssertExpectations(t)
	engine.AssertNotCalled(t, "Run", paths[4])
}

func TestProcessPathFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := createTempFiles(t, dir, "good.c", "bad.c")
	broken := errors.New("broken tree")

	engine := new(mockExtractEngine)
	engine.On("Run", paths[0]).Return(docFor(paths[0]), nil)
	engine.On("Run", paths[1]).Return(nil, broken)

	docs, err := ProcessPath(context.Background(), nil, engine, dir, ProcessFile, WithProgress(io.Discard))
	require.Len(t, docs, 1)
	assert.Equal(t, paths[0], docs[0].File)

	require.Error(t, err)
	assert.ErrorIs(t, err, broken)
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, paths[1], fileErr.File)
	assert.Contains(t, err.Error(), "bad.c")
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := createTempFiles(t, dir, "one.c", "skip.txt")

	engine := new(mockExtractEngine)
	engine.On("Run", paths[0]).Return(docFor(paths[0]), nil)

	docs, err := ProcessPath(context.Background(), nil, engine, paths[0], ProcessFile)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = ProcessPath(context.Background(), nil, engine, paths[1], ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = ProcessPath(context.Background(), nil, engine, filepath.Join(dir, "missing.c"), ProcessFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createTempFiles(t, dir, "a.c", "b.c", "c.c")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := new(mockExtractEngine)
	docs, err := ProcessPath(ctx, nil, engine, dir, ProcessFile, WithProgress(io.Discard))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, docs)
	engine.AssertNotCalled(t, "Run", mock.Anything)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := createTempFiles(t, dir, "z.c", "y/a.go")
	missing := filepath.Join(dir, "missing.c")

	engine := new(mockExtractEngine)
	engine.On("Run", paths[0]).Return(docFor(paths[0]), nil)
	engine.On("Run", paths[1]).Return(docFor(paths[1]), nil)

	docs, err := ProcessFiles(context.Background(), zap.NewNop(), engine,
		[]string{paths[0], missing, filepath.Join(dir, "y")}, ProcessFile, WithProgress(io.Discard))

	require.Len(t, docs, 2)
	assert.Equal(t, paths[1], docs[0].File)
	assert.Equal(t, paths[0], docs[1].File)
	assert.ErrorIs(t, err, os.ErrNotExist)
	engine.AssertExpectations(t)
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := createTempFiles(t, dir, "f.c")

	config := DefaultConfig()
	config.Cache.Dir = filepath.Join(dir, ".cache")
	config.IgnorePaths = []string{"*.h"}

	engine, err := New(config, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, engine.Accepts(paths[0]))
	assert.False(t, engine.Accepts(filepath.Join(dir, "f.h")))

	docs, err := ProcessFiles(context.Background(), nil, engine, []string{dir}, ProcessFile, WithProgress(io.Discard))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Len(t, docs[0].Functions, 1)
	assert.Equal(t, "f", docs[0].Functions[0].Name)
	assert.FileExists(t, filepath.Join(config.Cache.Dir, "loopx_cache.gob"))

	config.Format = "xml"
	_, err = New(config, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
