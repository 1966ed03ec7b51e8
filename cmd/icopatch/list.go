package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/icopatch/pkg/exeicon"
)

func init() {
	rootCmd.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <exe>",
		Short: "List the icon groups of an executable",
		Long: `The list command decodes every numeric icon group in an executable and
shows the images each one references.

Example:
  icopatch list app.exe
  icopatch list app.exe --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args)
		},
	}
	return cmd
}

type listImage struct {
	ID         uint16 `json:"id"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ColorCount uint8  `json:"color_count"`
	BitCount   uint16 `json:"bit_count"`
	Size       uint32 `json:"size"`
	Present    bool   `json:"present"`
}

type listGroup struct {
	ID     uint16      `json:"id"`
	Images []listImage `json:"images"`
	Error  string      `json:"error,omitempty"`
}

func runList(args []string) error {
	exePath := args[0]

	opts, err := operationOptions(false, false)
	if err != nil {
		return err
	}

	printVerbose("Reading resources: %s\n", exePath)
	groups, err := exeicon.ListIcons(exePath, opts)
	if err != nil {
		return fmt.Errorf("failed to list icons: %w", err)
	}

	if jsonOut {
		out := make([]listGroup, 0, len(groups))
		for _, g := range groups {
			lg := listGroup{ID: g.ID, Images: []listImage{}}
			if g.Err != nil {
				lg.Error = g.Err.Error()
			}
			for _, img := range g.Images {
				lg.Images = append(lg.Images, listImage(img))
			}
			out = append(out, lg)
		}
		return printJSON(map[string]interface{}{
			"exe":    exePath,
			"groups": out,
		})
	}

	if len(groups) == 0 {
		printInfo("No icon groups in %s\n", exePath)
		return nil
	}

	printInfo("\nIcon groups in %s:\n", exePath)
	for _, g := range groups {
		if g.Err != nil {
			printInfo("\n  Group %d: unreadable (%v)\n", g.ID, g.Err)
			continue
		}
		printInfo("\n  Group %d (%d images)\n", g.ID, len(g.Images))
		for _, img := range g.Images {
			missing := ""
			if !img.Present {
				missing = "  [missing]"
			}
			printInfo("    #%-4d %3dx%-3d %2d bpp %8d bytes%s\n",
				img.ID, img.Width, img.Height, img.BitCount, img.Size, missing)
		}
	}
	return nil
}
