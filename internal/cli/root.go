// Package cli wires the mangiato command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nonibytes/mangiato/internal/cli/commands"
	"github.com/nonibytes/mangiato/internal/config"
	"github.com/nonibytes/mangiato/mangiato"
)

// NewRootCommand returns the root command with every subcommand and the
// global flags registered.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mangiato",
		Short:         "Track meals against a daily calorie budget",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table or json")

	cmd.AddCommand(
		commands.NewInitCmd(),
		commands.NewUserCmd(),
		commands.NewProfileCmd(),
		commands.NewMealCmd(),
		commands.NewInvitationCmd(),
		commands.NewSeedCmd(),
		commands.NewFilterCmd(),
	)
	return cmd
}

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	return run(context.Background(), argv, os.Stdout, os.Stderr)
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, errorLine(err))
		return 1
	}
	return 0
}

// errorLine renders store errors with their status and client message.
// Internal errors and errors from outside the store keep their full text.
func errorLine(err error) string {
	code := mangiato.StatusCode(err)
	if mangiato.KindOf(err) == "" || code >= 500 {
		return fmt.Sprintf("error: %v", err)
	}
	return fmt.Sprintf("error (%d): %s", code, mangiato.Message(err))
}
