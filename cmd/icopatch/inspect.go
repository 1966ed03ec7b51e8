package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/icopatch/ico"
	"github.com/joshuapare/icopatch/ico/group"
)

var inspectFirstID uint16

func init() {
	cmd := newInspectCmd()
	cmd.Flags().Uint16Var(&inspectFirstID, "first-id", 1, "Resource id the first image would be written at")
	rootCmd.AddCommand(cmd)
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.ico>",
		Short: "Show the directory of an icon file",
		Long: `The inspect command parses an icon container and prints each directory
entry together with the group record entry it converts to.

Example:
  icopatch inspect app.ico
  icopatch inspect app.ico --first-id 2 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
	return cmd
}

type inspectEntry struct {
	Index      int    `json:"index"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ColorCount uint8  `json:"color_count"`
	Planes     uint16 `json:"planes"`
	BitCount   uint16 `json:"bit_count"`
	Size       uint32 `json:"size"`
	Offset     uint32 `json:"offset"`
	ResourceID uint16 `json:"resource_id"`
}

func runInspect(args []string) error {
	icoPath := args[0]

	dir, err := ico.ParseFile(icoPath)
	if err != nil {
		return fmt.Errorf("failed to parse icon: %w", err)
	}
	entries := make([]inspectEntry, 0, dir.Len())
	var ids []uint16
	if dir.Len() > 0 {
		rec, err := group.Convert(dir, inspectFirstID)
		if err != nil {
			return fmt.Errorf("failed to convert icon: %w", err)
		}
		ids = rec.IDs()
	}
	for i, e := range dir.Entries {
		w, h := e.Size()
		entries = append(entries, inspectEntry{
			Index:      i,
			Width:      w,
			Height:     h,
			ColorCount: e.ColorCount,
			Planes:     e.Planes,
			BitCount:   e.BitCount,
			Size:       e.BytesInRes,
			Offset:     e.ImageOffset,
			ResourceID: ids[i],
		})
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":    icoPath,
			"count":   dir.Len(),
			"entries": entries,
		})
	}

	printInfo("\nIcon file: %s\n", icoPath)
	printInfo("  Images: %d\n\n", dir.Len())
	for _, e := range entries {
		printInfo("  [%d] %3dx%-3d %2d bpp %3d colors %8d bytes @%-8d -> RT_ICON %d\n",
			e.Index, e.Width, e.Height, e.BitCount, e.ColorCount, e.Size, e.Offset, e.ResourceID)
	}
	return nil
}
