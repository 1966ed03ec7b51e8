package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/icopatch/pkg/exeicon"
)

var (
	removeBackup bool
	removeDryRun bool
)

func init() {
	cmd := newRemoveCmd()
	cmd.Flags().BoolVar(&removeBackup, "backup", false, "Create backup")
	cmd.Flags().BoolVar(&removeDryRun, "dry-run", false, "Count what would be removed without writing")
	rootCmd.AddCommand(cmd)
}

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <exe>",
		Short: "Remove every icon from an executable",
		Long: `The remove command deletes every icon group and icon image with a resource
id below the scan ceiling (--ceiling, default 1000). Ids at or above the
ceiling are left in place.

Example:
  icopatch remove app.exe
  icopatch remove app.exe --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(args)
		},
	}
	return cmd
}

func runRemove(args []string) error {
	exePath := args[0]

	opts, err := operationOptions(removeBackup, removeDryRun)
	if err != nil {
		return err
	}

	removed, err := exeicon.RemoveIcons(exePath, opts)
	if err != nil {
		return fmt.Errorf("failed to remove icons: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"exe":     exePath,
			"removed": removed,
			"dry_run": removeDryRun,
			"success": true,
		})
	}

	printInfo("\nRemoving icons from %s:\n", exePath)
	printInfo("  Resources: %d\n", removed)
	if removeDryRun {
		printInfo("\nDry run: no changes written\n")
		return nil
	}
	printInfo("\n✓ Icons removed successfully\n")
	return nil
}
