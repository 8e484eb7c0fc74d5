package cmd

import (
	"github.com/spf13/cobra"

	adapter "recipe-planner/adapters/cli"
	"recipe-planner/core/output"
	"recipe-planner/internal/config"
)

var (
	graphLabel    string
	graphUnpruned bool
	graphOutput   string
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [file|-]",
	Short: "Render the recipe graph as Graphviz DOT",
	Long: `Evaluate the recipes and print the dependency graph in Graphviz DOT.

Edges are labelled with the total quantity that flows along them, or with the
per-craft amount when --label per-craft is given. The goal is drawn as a
double circle and raw materials as ellipses.

Examples:
  recipe-planner graph recipes.txt | dot -Tpng > recipes.png
  recipe-planner graph --unpruned --label per-craft recipes.hcl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphLabel, "label", "", "edge label: total or per-craft (default from config, total)")
	graphCmd.Flags().BoolVar(&graphUnpruned, "unpruned", false, "draw every recipe, including those the goal does not need")
	graphCmd.Flags().StringVarP(&graphOutput, "output", "o", "", "write the graph to a file instead of stdout")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	name := cfg.Output.EdgeLabel
	if cmd.Flags().Changed("label") {
		name = graphLabel
	}
	label, err := output.ParseEdgeLabel(name)
	if err != nil {
		return err
	}

	_, err = newAdapter(cmd).Run(&adapter.CLIRequest{
		Path:   inputPath(args),
		Format: output.FormatDOT,
		Options: output.Options{
			EdgeLabel: label,
			Unpruned:  graphUnpruned,
		},
		OutputPath: graphOutput,
	})
	return err
}
