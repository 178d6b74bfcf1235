package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnolang/loopx/extract"
)

var forceInit bool

// initCmd: loopx init [path]
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	PersistentPreRun: func(*cobra.Command, []string) {
		// an existing, possibly broken, config must not block init
		logger = initLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := extract.DefaultConfigFile
		if len(args) == 1 {
			path = args[0]
		}
		if err := initConfigurationFile(path, forceInit); err != nil {
			return fmt.Errorf("error initializing config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
}

func initConfigurationFile(configurationPath string, force bool) error {
	if configurationPath == "" {
		configurationPath = extract.DefaultConfigFile
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(configurationPath, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%s already exists, use --force to overwrite", configurationPath)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	return extract.WriteConfig(f, extract.DefaultConfig())
}
