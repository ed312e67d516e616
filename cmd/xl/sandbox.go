package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codefionn/xl/internal/sandbox"
)

var (
	sandboxRO     []string
	sandboxRW     []string
	sandboxStrict bool
)

// sandboxCmd is what SHELL re-executes when sandboxing is on: it restricts
// itself with landlock and then execs the command.
var sandboxCmd = &cobra.Command{
	Use:           sandbox.Subcommand + " [flags] -- COMMAND [ARG...]",
	Hidden:        true,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no command given")
		}
		policy := sandbox.FromFlags(sandboxRO, sandboxRW, sandboxStrict)
		if err := sandbox.Restrict(policy); err != nil {
			return err
		}
		if err := sandbox.Exec(args); err != nil {
			return fmt.Errorf("failed to exec %s: %w", args[0], err)
		}
		return nil
	},
}

// versionCmd prints the same text as --version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "xl %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(sandboxCmd, versionCmd)
	sandboxCmd.Flags().StringArrayVar(&sandboxRO, "ro", nil, "Read-only path")
	sandboxCmd.Flags().StringArrayVar(&sandboxRW, "rw", nil, "Read-write path")
	sandboxCmd.Flags().BoolVar(&sandboxStrict, "strict", false, "Fail when the kernel lacks the full landlock ABI")
}
