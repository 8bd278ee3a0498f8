package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [path]",
	Short: "Simulate the machine on a batch of inputs",
	Long: `Runs every input (from --input, or the machine's declared inputs) and prints
the trace of instantaneous descriptions and the verdict of each one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := machineOptions(cmd, args)
		opts.Inputs, _ = cmd.Flags().GetStringArray("input")
		opts.Parallel, _ = cmd.Flags().GetInt("parallel")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
		opts.Pretty, _ = cmd.Flags().GetBool("pretty")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		storeOptions(cmd, &opts)

		if opts.JSON && opts.Pretty {
			return fmt.Errorf("--json and --pretty cannot be used together")
		}
		return cli.Execute(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayP("input", "i", nil, "Input word to simulate (repeatable)")
	runCmd.Flags().IntP("parallel", "p", 1, "Number of inputs simulated concurrently")
	runCmd.Flags().Bool("json", false, "Print one JSON result per line (NDJSON)")
	runCmd.Flags().BoolP("quiet", "q", false, "Only print verdicts, not traces")
	runCmd.Flags().Bool("pretty", false, "Render the report as styled Markdown")
	runCmd.Flags().BoolP("watch", "w", false, "Re-run whenever the machine changes")
	addStoreFlags(runCmd)

	// 'run' is the default when no command is given.
	rootCmd.Args = runCmd.Args
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
	rootCmd.RunE = runCmd.RunE
}
