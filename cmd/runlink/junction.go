package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/runlink/pkg/config"
	"github.com/arthur-debert/runlink/pkg/junction"
)

// Exit codes for non-success outcomes. 0 is success, 1 a genuine error;
// the rest let scripts pattern-match recoverable races without parsing.
const (
	exitTargetTooLong     = 2
	exitAccessDenied      = 3
	exitDisappeared       = 4
	exitDoesNotExist      = 4
	exitNotAJunction      = 5
	exitExistsNotJunction = 5
	exitDifferentTarget   = 6
	exitDirectoryNotEmpty = 6
)

var junctionCmd = &cobra.Command{
	Use:   "junction",
	Short: "Create, read and delete NTFS junctions",
}

var junctionCreateCmd = &cobra.Command{
	Use:   "create NAME TARGET",
	Short: "Create a junction at NAME pointing to TARGET",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome, err := junction.Create(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), outcome)
		switch outcome {
		case junction.CreateTargetTooLong:
			exitCode = exitTargetTooLong
		case junction.CreateAccessDenied:
			exitCode = exitAccessDenied
		case junction.CreateDisappeared:
			exitCode = exitDisappeared
		case junction.CreateAlreadyExistsButNotJunction:
			exitCode = exitExistsNotJunction
		case junction.CreateAlreadyExistsWithDifferentTarget:
			exitCode = exitDifferentTarget
		}
		return nil
	},
}

var junctionReadCmd = &cobra.Command{
	Use:   "read PATH",
	Short: "Print the target of the junction at PATH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _, outcome, err := junction.Read(args[0])
		if err != nil {
			return err
		}
		if outcome == junction.ReadSuccess {
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), outcome)
		switch outcome {
		case junction.ReadAccessDenied:
			exitCode = exitAccessDenied
		case junction.ReadDoesNotExist:
			exitCode = exitDoesNotExist
		case junction.ReadNotAJunction:
			exitCode = exitNotAJunction
		}
		return nil
	},
}

var junctionDeleteCmd = &cobra.Command{
	Use:   "delete PATH",
	Short: "Delete the file, junction or empty directory at PATH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		outcome, err := junction.DeleteWithPolicy(args[0], cfg.RetryPolicy())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), outcome)
		switch outcome {
		case junction.DeleteAccessDenied:
			exitCode = exitAccessDenied
		case junction.DeleteDoesNotExist:
			exitCode = exitDoesNotExist
		case junction.DeleteDirectoryNotEmpty:
			exitCode = exitDirectoryNotEmpty
		}
		return nil
	},
}

func init() {
	junctionCmd.AddCommand(junctionCreateCmd)
	junctionCmd.AddCommand(junctionReadCmd)
	junctionCmd.AddCommand(junctionDeleteCmd)
}
