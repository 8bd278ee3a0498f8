package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [path]",
	Short: "Export the state diagram",
	Long: `Outputs a Mermaid diagram (stateDiagram-v2) of the machine's transitions.
With --input, the states visited by that run are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := machineOptions(cmd, args)
		if input, _ := cmd.Flags().GetString("input"); cmd.Flags().Changed("input") {
			opts.Inputs = []string{input}
		}
		return cli.Graph(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("input", "i", "", "Highlight the states visited on this input")
}
