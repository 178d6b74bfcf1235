// Package internal ties the front-ends, the extraction driver and the
// presentation layer together for whole files.
//
// Key components:
//
// Engine: picks a front-end by file extension, parses the file, runs a fresh
// driver over it and converts the resulting program into a document. It also
// applies the ignore patterns and the function filter.
//
// Cache: keeps documents on disk keyed by file name and invalidated by the
// content hash, so unchanged files are not parsed again.
//
// Watching: the engine can watch directories and re-extract source files as
// they are written.
//
// Usage:
//
//	engine := internal.NewEngine(logger, internal.WithIgnorePaths([]string{"vendor/*"}))
//	doc, err := engine.Run(ctx, "path/to/file.c")
//	if err != nil {
//	    // handle error
//	}
//	formatter.Write(os.Stdout, formatter.FormatText, []*formatter.Document{doc})
//
// This package is intended for internal use within loopx and should not be
// imported by external packages.
package internal
