package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnana997/iconport/pkg/config"
	"github.com/gnana997/iconport/pkg/util"
)

var version = "0.1.0-dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
}

// app is the loaded configuration and the logger built from it.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	global := &globalOptions{}
	convertOpts := &convertOptions{}

	root := &cobra.Command{
		Use:   "iconport",
		Short: "Convert React/Motion animated icons to SolidJS components.",
		Long: `Convert React icon components animated with Motion into SolidJS
components driven by solid-motionone.

Without a subcommand iconport converts every icon in the input directory.

Example: iconport --input icons/react --output icons/solid`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, global, convertOpts)
		},
	}

	root.PersistentFlags().StringVar(&global.configPath, "config", "", "Config file (default "+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&global.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	addConvertFlags(root, convertOpts)

	root.AddCommand(
		newConvertCmd(global),
		newWatchCmd(global),
		newServeCmd(global),
		newVersionCmd(),
	)
	root.SetHelpCommand(&cobra.Command{Hidden: true})

	return root
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}

// loadApp resolves settings in order: .env, config file, environment,
// flags. override applies the command's own flags.
func loadApp(cmd *cobra.Command, global *globalOptions, override func(*config.Config) error) (*app, error) {
	if err := config.LoadDotEnv("."); err != nil {
		return nil, err
	}

	cfg, err := config.Load(global.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if global.logLevel != "" {
		cfg.LogLevel = global.logLevel
	}
	if override != nil {
		if err := override(cfg); err != nil {
			return nil, err
		}
	}

	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := cfg.LoggerConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logger := util.NewLogger(logCfg)
	if cfg.Source != "" {
		logger.Debug("loaded config", "file", cfg.Source)
	}

	return &app{cfg: cfg, logger: logger}, nil
}

// absFlag makes a path given on the command line absolute against the
// working directory, so it is not re-anchored to the config file.
func absFlag(name, p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("invalid --%s %q: %w", name, p, err)
	}
	return abs, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the iconport version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "iconport %s\n", version)
		},
	}
}
