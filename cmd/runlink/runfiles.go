package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/runlink/pkg/runfiles"
)

var rlocationCmd = &cobra.Command{
	Use:   "rlocation RUNFILE_PATH",
	Short: "Resolve a runfile path to an absolute path",
	Long: `Resolve a workspace-relative runfile path (such as
"workspace/pkg/data.txt") against the runfiles of this process, discovered
from RUNFILES_MANIFEST_FILE, RUNFILES_DIR or the binary's own location.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// The library panics on unnormalized paths since its callers are
		// expected to pass literals; here the path is user input.
		if err := runfiles.ValidatePath(args[0]); err != nil {
			return err
		}
		r, err := runfiles.New()
		if err != nil {
			return err
		}
		resolved, found := r.Lookup(args[0])
		if !found {
			exitCode = exitDoesNotExist
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), resolved)
		return nil
	},
}

var envvarsCmd = &cobra.Command{
	Use:   "envvars",
	Short: "Print the runfiles environment for child processes",
	Long: `Print the environment variables, one KEY=VALUE per line, that a child
process needs so its own runfiles resolver bootstraps to the same manifest
and directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := runfiles.New()
		if err != nil {
			return err
		}
		env := r.Envvars()
		keys := make([]string, 0, len(env))
		for k := range env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, env[k])
		}
		return nil
	},
}
