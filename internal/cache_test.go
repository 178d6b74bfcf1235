package internal

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/loopx/formatter"
)

func sampleDoc(file string) *formatter.Document {
	return &formatter.Document{
		File:    file,
		Program: filepath.Base(file),
		Functions: []formatter.Function{{
			Name: "f",
			Paths: []formatter.Path{{
				Name:    "path1",
				Guard:   "true",
				Steps:   []string{"block1"},
				Returns: true,
				Return:  "0",
			}},
		}},
	}
}

func TestCache(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	t.Run("SaveAndLoad", func(t *testing.T) {
		filename := writeFile(t, tmpDir, "test.c", "int f(void) { return 0; }\n")
		doc := sampleDoc(filename)

		require.NoError(t, cache.Set(filename, doc))

		loaded, found := cache.Get(filename)
		require.True(t, found)
		assert.Equal(t, doc, loaded)

		// a second cache over the same directory reads the entries back
		reopened, err := NewCache(cache.CacheDir)
		require.NoError(t, err)
		loaded, found = reopened.Get(filename)
		require.True(t, found)
		assert.Equal(t, doc.Functions, loaded.Functions)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("nonexistent.c")
		assert.False(t, found)
	})

	t.Run("FileModified", func(t *testing.T) {
		filename := writeFile(t, tmpDir, "modified.c", "int f(void) { return 0; }\n")
		require.NoError(t, cache.Set(filename, sampleDoc(filename)))

		writeFile(t, tmpDir, "modified.c", "int f(void) { return 1; }\n")

		_, found := cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("Expired", func(t *testing.T) {
		filename := writeFile(t, tmpDir, "old.c", "int f(void) { return 0; }\n")
		require.NoError(t, cache.Set(filename, sampleDoc(filename)))

		cache.SetMaxAge(time.Nanosecond)
		defer cache.SetMaxAge(0)
		time.Sleep(time.Millisecond)

		_, found := cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("DependencyChanged", func(t *testing.T) {
		config := writeFile(t, tmpDir, ".loopx.yaml", "format: text\n")
		filename := writeFile(t, tmpDir, "dep.c", "int f(void) { return 0; }\n")
		require.NoError(t, cache.SetDependencies(config))
		defer func() { require.NoError(t, cache.SetDependencies()) }()

		require.NoError(t, cache.Set(filename, sampleDoc(filename)))
		_, found := cache.Get(filename)
		require.True(t, found)

		writeFile(t, tmpDir, ".loopx.yaml", "format: json\n")
		_, found = cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		filename := writeFile(t, tmpDir, "all.c", "int f(void) { return 0; }\n")
		require.NoError(t, cache.Set(filename, sampleDoc(filename)))

		cache.InvalidateAll()
		_, found := cache.Get(filename)
		assert.False(t, found)
	})
}

func TestCacheWithEngine(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	engine := NewEngine(nil, WithCache(cache))
	filename := writeFile(t, tmpDir, "sum.c", sumSource)

	doc, err := engine.Run(context.Background(), filename)
	require.NoError(t, err)

	cached, found := cache.Get(filename)
	require.True(t, found)
	assert.Equal(t, doc.Functions[0].Name, cached.Functions[0].Name)

	again, err := engine.Run(context.Background(), filename)
	require.NoError(t, err)
	assert.Equal(t, doc.Functions[0].Paths[0].Steps, again.Functions[0].Paths[0].Steps)

	// the filter applies to cached documents without changing the entry
	filtered := NewEngine(nil, WithCache(cache), WithFunctions([]string{"twice"}))
	doc, err = filtered.Run(context.Background(), filename)
	require.NoError(t, err)
	require.Len(t, doc.Functions, 1)
	cached, found = cache.Get(filename)
	require.True(t, found)
	assert.Len(t, cached.Functions, 2)

	writeFile(t, tmpDir, "sum.c", "int only(void) { return 1; }\n")
	doc, err = engine.Run(context.Background(), filename)
	require.NoError(t, err)
	require.Len(t, doc.Functions, 1)
	assert.Equal(t, "only", doc.Functions[0].Name)
}

func TestCacheConcurrency(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	filename := writeFile(t, tmpDir, "test.c", "int f(void) { return 0; }\n")
	doc := sampleDoc(filename)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, cache.Set(filename, doc))
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get(filename)
		}()
	}
	wg.Wait()

	_, found := cache.Get(filename)
	assert.True(t, found)
	_, err = os.Stat(filepath.Join(cache.CacheDir, cacheFileName))
	assert.NoError(t, err)
}
