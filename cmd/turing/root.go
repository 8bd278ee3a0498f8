package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turing [path]",
	Short: "Turing simulates deterministic single-tape Turing machines",
	Long: `Turing loads a machine description (YAML/JSON file or a directory of Markdown
documents), runs it against a batch of inputs and reports every instantaneous
description, the verdict, the final state and the final tape.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// PostRun is skipped when a command fails.
		closeLogFile()
		path, _ := cmd.Flags().GetString("log-file")
		if path == "" {
			return nil
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogFile()
	},
}

// logFile is opened from --log-file for the duration of a command.
var logFile *os.File

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Machine file or library directory")
	rootCmd.PersistentFlags().StringP("machine", "m", "", "Machine ID inside a library directory")
	rootCmd.PersistentFlags().Int("step-limit", 0, "Maximum number of steps per input (0 uses the machine's limit)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every step to stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Append logs to this file as JSON lines")
}

// machineOptions reads the flags shared by every command.
// A positional argument wins over the --dir default.
func machineOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	path, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		path = args[0]
	}
	machineID, _ := cmd.Flags().GetString("machine")
	stepLimit, _ := cmd.Flags().GetInt("step-limit")
	debug, _ := cmd.Flags().GetBool("debug")

	opts := cli.RunOptions{
		Path:      path,
		MachineID: machineID,
		StepLimit: stepLimit,
		Debug:     debug,
		Stdout:    cmd.OutOrStdout(),
	}
	if logFile != nil {
		opts.LogWriter = logFile
	}
	return opts
}

// addStoreFlags registers the archive flags on commands that run machines.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("redis", "", "Archive results in Redis (redis://host:port/db)")
	cmd.Flags().String("archive", "", "Archive results as JSON files in this directory")
	cmd.Flags().String("archive-key", "", "Hex AES-256 key sealing archived results (default $TURING_ARCHIVE_KEY)")
	cmd.Flags().Int("archive-trace-limit", 0, "Maximum IDs archived per run (0 keeps all)")
}

func storeOptions(cmd *cobra.Command, opts *cli.RunOptions) {
	opts.RedisURL, _ = cmd.Flags().GetString("redis")
	opts.ArchiveDir, _ = cmd.Flags().GetString("archive")
	opts.ArchiveKey, _ = cmd.Flags().GetString("archive-key")
	opts.TraceLimit, _ = cmd.Flags().GetInt("archive-trace-limit")
}
