package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnolang/loopx/formatter"
	"github.com/gnolang/loopx/internal"
)

var (
	showFunc   string
	showFormat string
	showOutput string
)

var showCmd = &cobra.Command{
	Use:   "show --func name file",
	Short: "Print the loops and paths of a single function",
	Long: `Prints the extraction result of one function, ignoring the cache and the
configured function filter.
Example) loopx show --func main main.c`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		doc, err := showFunction(ctx, args[0], showFunc)
		if err != nil {
			return err
		}
		cfg := config
		if showFormat != "" {
			cfg.Format = showFormat
		}
		if showOutput != "" {
			cfg.Output = showOutput
		}
		return writeDocuments(cfg, []*formatter.Document{doc}, cmd.OutOrStdout())
	},
}

func init() {
	showCmd.Flags().StringVar(&showFunc, "func", "", "function to show")
	_ = showCmd.MarkFlagRequired("func")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "", "output format (text, json, yaml)")
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "", "output file (default: stdout)")
}

func showFunction(ctx context.Context, path, name string) (*formatter.Document, error) {
	if name == "" {
		return nil, errors.New("a function name is required")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	engine := internal.NewEngine(logger, internal.WithFunctions([]string{name}))
	doc, err := engine.RunSource(ctx, path, src)
	if err != nil {
		return nil, err
	}
	if len(doc.Functions) == 0 {
		return nil, fmt.Errorf("function not found: %s", name)
	}
	return doc, nil
}
