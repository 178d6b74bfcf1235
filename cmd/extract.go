package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/loopx/extract"
	"github.com/gnolang/loopx/formatter"
)

var noCache bool

var extractCmd = &cobra.Command{
	Use:   "extract [paths...]",
	Short: "Extract loop and path summaries from files or directories",
	RunE:  runExtract,
}

func init() {
	flags := extractCmd.Flags()
	flags.StringP("format", "f", "text", "output format (text, json, yaml)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringSlice("func", nil, "only report these functions")
	flags.StringSlice("ignore", nil, "glob patterns of paths to skip")
	flags.Int("jobs", 0, "files extracted in parallel (0 = one per CPU)")
	flags.BoolVar(&noCache, "no-cache", false, "do not read or write the result cache")

	bindFlag("format", "format")
	bindFlag("output", "output")
	bindFlag("functions", "func")
	bindFlag("ignore_paths", "ignore")
	bindFlag("jobs", "jobs")
}

func bindFlag(key, flag string) {
	if err := conf.BindPFlag(key, extractCmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("please provide file or directory paths")
	}
	if noCache {
		config.Cache.Enabled = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	engine, err := extract.New(config, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize extraction engine: %w", err)
	}

	docs, procErr := extract.ProcessFiles(ctx, logger, engine, args, extract.ProcessFile,
		extract.WithJobs(config.Jobs))

	if err := writeDocuments(config, docs, cmd.OutOrStdout()); err != nil {
		return err
	}
	if procErr != nil {
		logger.Error("Error processing files", zap.Error(procErr))
		return fmt.Errorf("extraction failed: %w", procErr)
	}
	return nil
}

// writeDocuments renders docs to the configured output file, or to stdout
// when none is set.
func writeDocuments(cfg extract.Config, docs []*formatter.Document, stdout io.Writer) error {
	format, err := formatter.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	w := stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return formatter.Write(w, format, docs)
}
