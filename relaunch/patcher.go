package relaunch

import (
	"fmt"

	"github.com/joshuapare/icopatch/pkg/exeicon"
	"github.com/joshuapare/icopatch/pkg/types"
)

// IconPatcher runs hop operations through package exeicon.
type IconPatcher struct {
	Options *exeicon.Options
}

func (p IconPatcher) Patch(op Operation, exePath, icoPath string) error {
	switch op {
	case OpSetIcon:
		return exeicon.SetIcon(exePath, icoPath, p.Options)
	case OpAddIcon:
		_, err := exeicon.AddIcon(exePath, icoPath, p.Options)
		return err
	case OpRemoveIcon:
		_, err := exeicon.RemoveIcons(exePath, p.Options)
		return err
	default:
		return types.New(types.ErrKindState, "patch", exePath, fmt.Sprintf("%s is not a patch operation", op), nil)
	}
}
