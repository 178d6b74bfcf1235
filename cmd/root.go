package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gnolang/loopx/extract"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
	conf   = viper.New()
	config extract.Config
)

var rootCmd = &cobra.Command{
	Use:   "loopx [paths...]",
	Short: "loopx - extract the symbolic paths through loops and functions",
	Long: `loopx parses C and Go sources and summarises every loop and function as a
set of paths: the conditions under which each path runs and the symbolic
values it leaves behind.`,
	TraverseChildren:  true, // Prioritize subcommands
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand
		if len(args) == 0 {
			return cmd.Help()
		}
		// loopx [path1 path2 ...] behaves like the extract subcommand
		return runExtract(cmd, args)
	},
}

func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .loopx.yaml in the working or home directory)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "time limit for the whole run")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(watchCmd)

	// loopx [paths...] accepts the extract flags too
	rootCmd.Flags().AddFlagSet(extractCmd.Flags())
}

// initConfig prepares the configuration sources. Reading happens in
// loadSettings so that errors reach the command.
func initConfig() {
	setDefaults(conf)
	if cfgFile != "" {
		conf.SetConfigFile(cfgFile)
	} else {
		conf.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			conf.AddConfigPath(home)
		}
		conf.SetConfigType("yaml")
		conf.SetConfigName(strings.TrimSuffix(extract.DefaultConfigFile, ".yaml"))
	}

	conf.SetEnvPrefix("LOOPX")
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	conf.AutomaticEnv()
}

func setDefaults(v *viper.Viper) {
	d := extract.DefaultConfig()
	v.SetDefault("name", d.Name)
	v.SetDefault("format", d.Format)
	v.SetDefault("output", d.Output)
	v.SetDefault("ignore_paths", d.IgnorePaths)
	v.SetDefault("functions", d.Functions)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.max_age", d.Cache.MaxAge)
	v.SetDefault("jobs", d.Jobs)
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	logger = initLogger()

	var err error
	config, err = readConfig(conf, cfgFile != "")
	if err != nil {
		return err
	}
	if used := conf.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// readConfig reads the config file, if any, and merges it with the
// environment and the bound flags. A missing file is only an error when
// it was named explicitly.
func readConfig(v *viper.Viper, explicit bool) (extract.Config, error) {
	var cfg extract.Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("error reading config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, cfg.Validate()
}

func initLogger() *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}
