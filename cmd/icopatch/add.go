package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/icopatch/pkg/exeicon"
)

var (
	addIcon   string
	addSizes  []int
	addBackup bool
	addDryRun bool
)

func init() {
	cmd := newAddCmd()
	cmd.Flags().StringVar(&addIcon, "icon", "", "Icon or image file (default: <exe> with .ico extension)")
	cmd.Flags().IntSliceVar(&addSizes, "sizes", nil, "Sizes to render when --icon is not an .ico file")
	cmd.Flags().BoolVar(&addBackup, "backup", false, "Create backup")
	cmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Stage the changes without writing")
	rootCmd.AddCommand(cmd)
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <exe>",
		Short: "Add an icon group to an executable",
		Long: `The add command writes a new icon group at the first run of free resource
ids, leaving existing icons untouched, and prints the new group id.

Example:
  icopatch add app.exe --icon document.ico
  icopatch add app.exe --icon document.ico --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args)
		},
	}
	return cmd
}

func runAdd(args []string) error {
	exePath := args[0]

	opts, err := operationOptions(addBackup, addDryRun)
	if err != nil {
		return err
	}
	dir, iconPath, err := loadIcon(exePath, addIcon, addSizes)
	if err != nil {
		return fmt.Errorf("failed to load icon: %w", err)
	}

	groupID, err := exeicon.AddIconDirectory(exePath, dir, opts)
	if err != nil {
		return fmt.Errorf("failed to add icon: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"exe":     exePath,
			"icon":    iconPath,
			"group":   groupID,
			"images":  dir.Len(),
			"dry_run": addDryRun,
			"success": true,
		})
	}

	printInfo("\nAdding icon to %s:\n", exePath)
	printInfo("  Icon: %s\n", iconPath)
	printInfo("  Group: %d\n", groupID)
	printInfo("  Images: %d-%d\n", groupID+1, int(groupID)+dir.Len())
	if addDryRun {
		printInfo("\nDry run: no changes written\n")
		return nil
	}
	printInfo("\n✓ Icon added successfully\n")
	return nil
}
