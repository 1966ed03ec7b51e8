package main

import (
	"fmt"

	"github.com/joshuapare/icopatch/ico"
	"github.com/joshuapare/icopatch/internal/format"
	"github.com/joshuapare/icopatch/internal/imaging"
	"github.com/joshuapare/icopatch/relaunch"
)

// loadIcon reads the icon for exePath. An empty iconPath means the .ico
// next to the executable. Non-.ico sources are rendered at sizes.
func loadIcon(exePath, iconPath string, sizes []int) (*ico.Directory, string, error) {
	if iconPath == "" {
		iconPath = relaunch.IconPath(exePath, format.IconExt)
	}
	if imaging.IsContainer(iconPath) {
		dir, err := ico.ParseFile(iconPath)
		return dir, iconPath, err
	}

	printVerbose("Rendering %s at sizes %v\n", iconPath, sizes)
	img, err := imaging.DecodeFile(iconPath)
	if err != nil {
		return nil, iconPath, fmt.Errorf("failed to read image %s: %w", iconPath, err)
	}
	dir, err := imaging.Build(img, sizes)
	return dir, iconPath, err
}
