package cmd

import (
	"github.com/spf13/cobra"

	adapter "recipe-planner/adapters/cli"
	"recipe-planner/core/output"
	"recipe-planner/internal/config"
)

var (
	planFormat   string
	planOutput   string
	planNoColor  bool
	planShowGoal bool
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan [file|-]",
	Short: "Compute raw materials and crafting order",
	Long: `Read recipes and a goal, then print the raw materials required and the
order in which to craft every intermediate item.

Reads standard input when no file is given or the file is "-".

Examples:
  recipe-planner plan recipes.txt
  recipe-planner plan --show-goal recipes.hcl
  recipe-planner plan --format markdown -o plan.md recipes.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "", "output format (cli, json, markdown, msgpack, dot) (default from config, cli)")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "write the plan to a file instead of stdout")
	planCmd.Flags().BoolVar(&planNoColor, "no-color", false, "disable colored output")
	planCmd.Flags().BoolVar(&planShowGoal, "show-goal", false, "list the goal items above the plan")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	name := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		name = planFormat
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}

	opts, err := outputOptions(cmd, cfg)
	if err != nil {
		return err
	}

	_, err = newAdapter(cmd).Run(&adapter.CLIRequest{
		Path:       inputPath(args),
		Format:     format,
		Options:    opts,
		OutputPath: planOutput,
	})
	return err
}

// outputOptions merges config defaults with any flags the user set
func outputOptions(cmd *cobra.Command, cfg *config.Config) (output.Options, error) {
	label, err := output.ParseEdgeLabel(cfg.Output.EdgeLabel)
	if err != nil {
		return output.Options{}, err
	}

	opts := output.Options{
		NoColor:   cfg.Output.NoColor,
		ShowGoal:  cfg.Output.ShowGoal,
		EdgeLabel: label,
		Verbose:   verbose,
	}
	if cmd.Flags().Changed("no-color") {
		opts.NoColor = planNoColor
	}
	if cmd.Flags().Changed("show-goal") {
		opts.ShowGoal = planShowGoal
	}
	return opts, nil
}
