package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/runlink/pkg/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbosity  int
	configPath string

	rootCmd = &cobra.Command{
		Use:   "runlink",
		Short: "Windows junction and runfiles tooling",
		Long: `runlink manages NTFS junctions (directory reparse points) and resolves
runfiles, the run-time data dependencies of built binaries. Junction
outcomes are reported on stdout and mapped to distinct exit codes so
scripts can tell benign filesystem races apart from real failures.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		return 1
	}
	return exitCode
}

// exitCode is set by subcommands that report a non-error outcome which
// still is not plain success, e.g. a junction that already exists with a
// different target.
var exitCode int

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default is $XDG_CONFIG_HOME/runlink/runlink.toml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(junctionCmd)
	rootCmd.AddCommand(rlocationCmd)
	rootCmd.AddCommand(envvarsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("runlink version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}
