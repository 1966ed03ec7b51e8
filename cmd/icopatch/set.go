package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/icopatch/pkg/exeicon"
)

var (
	setIcon   string
	setSizes  []int
	setBackup bool
	setDryRun bool
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setIcon, "icon", "", "Icon or image file (default: <exe> with .ico extension)")
	cmd.Flags().IntSliceVar(&setSizes, "sizes", nil, "Sizes to render when --icon is not an .ico file")
	cmd.Flags().BoolVar(&setBackup, "backup", false, "Create backup")
	cmd.Flags().BoolVar(&setDryRun, "dry-run", false, "Stage the changes without writing")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <exe>",
		Short: "Replace the primary icon of an executable",
		Long: `The set command writes an icon group at resource id 1 and its images at
ids 2..N+1, replacing whatever occupied those ids.

Example:
  icopatch set app.exe
  icopatch set app.exe --icon brand.ico --backup
  icopatch set app.exe --icon logo.png --sizes 16,32,48,256`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	exePath := args[0]

	opts, err := operationOptions(setBackup, setDryRun)
	if err != nil {
		return err
	}
	dir, iconPath, err := loadIcon(exePath, setIcon, setSizes)
	if err != nil {
		return fmt.Errorf("failed to load icon: %w", err)
	}

	printVerbose("Setting %d image(s) from %s\n", dir.Len(), iconPath)
	if err := exeicon.SetIconDirectory(exePath, dir, opts); err != nil {
		return fmt.Errorf("failed to set icon: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"exe":     exePath,
			"icon":    iconPath,
			"group":   exeicon.PrimaryGroupID,
			"images":  dir.Len(),
			"dry_run": setDryRun,
			"success": true,
		})
	}

	printInfo("\nSetting icon in %s:\n", exePath)
	printInfo("  Icon: %s\n", iconPath)
	printInfo("  Group: %d\n", exeicon.PrimaryGroupID)
	printInfo("  Images: %d\n", dir.Len())
	if setDryRun {
		printInfo("\nDry run: no changes written\n")
		return nil
	}
	printInfo("\n✓ Icon set successfully\n")
	if setBackup {
		printInfo("Backup created: %s.bak\n", exePath)
	}
	return nil
}
