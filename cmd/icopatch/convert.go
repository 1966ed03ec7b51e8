package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/icopatch/internal/imaging"
)

var (
	convertOutput string
	convertSizes  []int
)

func init() {
	cmd := newConvertCmd()
	cmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output .ico path (required)")
	cmd.Flags().IntSliceVar(&convertSizes, "sizes", imaging.DefaultSizes, "Edge lengths to render")
	cmd.MarkFlagRequired("output")
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <image>",
		Short: "Build a multi-size .ico from an image",
		Long: `The convert command renders a PNG, JPEG or GIF image at each requested size
and writes the results as one icon container.

Example:
  icopatch convert logo.png -o app.ico
  icopatch convert logo.png -o app.ico --sizes 16,32,48`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args)
		},
	}
	return cmd
}

func runConvert(args []string) error {
	src := args[0]

	printVerbose("Decoding %s\n", src)
	img, err := imaging.DecodeFile(src)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	dir, err := imaging.Build(img, convertSizes)
	if err != nil {
		return fmt.Errorf("failed to build icon: %w", err)
	}
	if err := imaging.WriteFile(convertOutput, dir); err != nil {
		return fmt.Errorf("failed to write icon: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"source":  src,
			"output":  convertOutput,
			"images":  dir.Len(),
			"success": true,
		})
	}
	printInfo("✓ Wrote %s (%d images)\n", convertOutput, dir.Len())
	return nil
}
