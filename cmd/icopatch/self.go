package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/icopatch/relaunch"
)

func init() {
	rootCmd.AddCommand(newSelfCmd())
}

func newSelfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "self <set|add|remove>",
		Short: "Patch this executable's own icons",
		Long: `The self command patches the running icopatch executable. It copies itself
to a temporary file, lets the copy patch the original, and has the original
delete the copy afterwards. The icon is read from the .ico next to the
executable. The command returns as soon as the worker is started.

Example:
  icopatch self set
  icopatch self remove`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"set", "add", "remove"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelf(cmd, args)
		},
	}
	return cmd
}

func runSelf(cmd *cobra.Command, args []string) error {
	var group relaunch.Operation
	switch args[0] {
	case "set":
		group = relaunch.OpSetIcon
	case "add":
		group = relaunch.OpAddIcon
	case "remove":
		group = relaunch.OpRemoveIcon
	default:
		return fmt.Errorf("unknown self operation %q (want set, add or remove)", args[0])
	}

	state, err := newOrchestrator().Request(cmd.Context(), group)
	if err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"operation": group.String(),
			"state":     state.String(),
			"success":   true,
		})
	}
	printInfo("✓ Worker started for %s\n", group)
	return nil
}
