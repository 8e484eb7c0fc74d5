// Package cmd provides the CLI commands for recipe-planner.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	adapter "recipe-planner/adapters/cli"
	"recipe-planner/core/engine"
	"recipe-planner/internal/config"
	"recipe-planner/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "recipe-planner",
	Short: "Plan the raw materials and crafting order for a goal",
	Long: `recipe-planner reads a set of crafting recipes and a goal, and works out
which raw materials to gather and in which order to craft everything.

Recipes are plain text, one per line, with the goal on the last line:

  plank = 1 log
  4 stick = 2 plank
  torch = 1 stick, 1 coal
  3 torch

Files ending in .hcl are read as HCL recipe books instead.

Examples:
  recipe-planner plan recipes.txt
  recipe-planner plan --format json recipes.hcl
  cat recipes.txt | recipe-planner plan -
  recipe-planner graph recipes.txt | dot -Tsvg > recipes.svg`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	config.Set(cfg)

	if err := initLogging(cfg); err != nil {
		return err
	}
	logging.Debug("configuration loaded", zap.String("path", path))
	return nil
}

func initLogging(cfg *config.Config) error {
	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Initialize(logCfg); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	return nil
}

// newAdapter wires the engine to the command's streams
func newAdapter(cmd *cobra.Command) *adapter.CLIAdapter {
	eng := engine.New(engine.WithLogger(logging.Named("engine")))
	a := adapter.NewCLIAdapter(eng, logging.Named("cli"))
	a.SetInput(cmd.InOrStdin())
	a.SetOutput(cmd.OutOrStdout())
	return a
}

func inputPath(args []string) string {
	if len(args) == 0 {
		return adapter.Stdin
	}
	return args[0]
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "recipe-planner version %s\n", engine.Version)
	},
}
