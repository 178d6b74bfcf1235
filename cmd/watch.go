package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/loopx/extract"
	"github.com/gnolang/loopx/formatter"
	"github.com/gnolang/loopx/internal"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-extract source files whenever they change",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, err := extract.New(config, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize extraction engine: %w", err)
		}
		return watch(ctx, engine, args, cmd)
	},
}

func watch(ctx context.Context, engine *internal.Engine, dirs []string, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	report := func(file string, doc *formatter.Document, err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", file, err)
			return
		}
		if err := writeDocuments(config, []*formatter.Document{doc}, out); err != nil {
			logger.Error("Error writing document", zap.String("file", file), zap.Error(err))
		}
	}

	if err := engine.StartWatching(ctx, dirs, report); err != nil {
		return err
	}
	logger.Info("watching for changes", zap.Strings("dirs", dirs))

	<-ctx.Done()
	if err := engine.StopWatching(); err != nil && !errors.Is(err, internal.ErrNotWatching) {
		return err
	}
	return nil
}
