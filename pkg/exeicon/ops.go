package exeicon

import (
	"fmt"

	"github.com/joshuapare/icopatch/ico"
	"github.com/joshuapare/icopatch/ico/group"
	"github.com/joshuapare/icopatch/internal/format"
	"github.com/joshuapare/icopatch/internal/logger"
	"github.com/joshuapare/icopatch/pkg/types"
	"github.com/joshuapare/icopatch/rsrc"
)

// PrimaryGroupID is the id SetIcon writes its group record at.
const PrimaryGroupID = 1

// SetIcon replaces the primary icon of exePath with the container at icoPath.
//
// Example:
//
//	err := exeicon.SetIcon("app.exe", "app.ico", nil)
func SetIcon(exePath, icoPath string, opts *Options) error {
	dir, err := ico.ParseFile(icoPath)
	if err != nil {
		logger.Error("cannot parse icon file", "op", "set", "ico", icoPath, "err", err)
		return err
	}
	return SetIconDirectory(exePath, dir, opts)
}

// SetIconDirectory is SetIcon for an already parsed container.
func SetIconDirectory(exePath string, dir *ico.Directory, opts *Options) error {
	if err := checkImages("set icon", dir); err != nil {
		return err
	}
	rec, err := group.Convert(dir, PrimaryGroupID+1)
	if err != nil {
		return err
	}

	return patch("set", exePath, opts, func(s *rsrc.Session) error {
		logger.Info("writing icon group", "exe", exePath, "group", PrimaryGroupID, "images", dir.Len())
		return writeGroup(s, PrimaryGroupID, rec, dir)
	})
}

// AddIcon writes the container at icoPath as a new icon group and returns
// the group id. Existing icons are left untouched.
//
// Example:
//
//	id, err := exeicon.AddIcon("app.exe", "extra.ico", nil)
func AddIcon(exePath, icoPath string, opts *Options) (uint16, error) {
	dir, err := ico.ParseFile(icoPath)
	if err != nil {
		logger.Error("cannot parse icon file", "op", "add", "ico", icoPath, "err", err)
		return 0, err
	}
	return AddIconDirectory(exePath, dir, opts)
}

// AddIconDirectory is AddIcon for an already parsed container.
func AddIconDirectory(exePath string, dir *ico.Directory, opts *Options) (uint16, error) {
	if err := checkImages("add icon", dir); err != nil {
		return 0, err
	}

	var groupID uint16
	err := patch("add", exePath, opts, func(s *rsrc.Session) error {
		g, err := rsrc.NextFreeBlock(s.Snapshot(), dir.Len()+1, s.Options().ScanCeiling)
		if err != nil {
			return err
		}
		rec, err := group.Convert(dir, g+1)
		if err != nil {
			return err
		}
		logger.Info("writing icon group", "exe", exePath, "group", g, "images", dir.Len())
		groupID = g
		return writeGroup(s, g, rec, dir)
	})
	if err != nil {
		return 0, err
	}
	return groupID, nil
}

// RemoveIcons deletes every RT_GROUP_ICON and RT_ICON resource below the
// scan ceiling and returns how many resources were removed.
//
// Example:
//
//	n, err := exeicon.RemoveIcons("app.exe", nil)
func RemoveIcons(exePath string, opts *Options) (int, error) {
	var removed int
	err := patch("remove", exePath, opts, func(s *rsrc.Session) error {
		n, err := s.RemoveAllIcons()
		removed = n
		logger.Info("removing icon resources", "exe", exePath, "count", n, "ceiling", s.Options().ScanCeiling)
		return err
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// patch runs fn inside a session on exePath and commits, or discards for
// dry runs. A failing fn discards the session.
func patch(op, exePath string, opts *Options, fn func(*rsrc.Session) error) error {
	o := opts.resolved()

	// Create backup if requested
	if o.CreateBackup && !o.DryRun {
		backupPath := exePath + ".bak"
		if err := copyFile(exePath, backupPath); err != nil {
			return types.New(types.ErrKindResourceSession, op, exePath,
				"failed to create backup at "+backupPath, err)
		}
		logger.Debug("created backup", "path", backupPath)
	}

	s, err := rsrc.Begin(exePath, &o.Options)
	if err != nil {
		logger.Error("cannot begin resource session", "op", op, "exe", exePath, "err", err)
		return err
	}

	if err := fn(s); err != nil {
		logger.Error("icon operation failed", "op", op, "exe", exePath, "err", err)
		if derr := s.Discard(); derr != nil {
			logger.Warn("discard after failure", "exe", exePath, "err", derr)
		}
		return err
	}

	// Dry run? Don't commit
	if o.DryRun {
		logger.Info("dry run, discarding changes", "op", op, "exe", exePath, "pending", s.Pending())
		return s.Discard()
	}

	if err := s.Commit(); err != nil {
		logger.Error("cannot commit resource session", "op", op, "exe", exePath, "err", err)
		return err
	}
	logger.Info("icon operation committed", "op", op, "exe", exePath)
	return nil
}

func writeGroup(s *rsrc.Session, id uint16, rec *group.Record, dir *ico.Directory) error {
	if err := s.WriteGroup(id, rec); err != nil {
		return err
	}
	for i, e := range rec.Entries {
		if err := s.WriteImage(e.ID, dir.Images[i]); err != nil {
			return err
		}
	}
	return nil
}

func checkImages(op string, dir *ico.Directory) error {
	if dir == nil || dir.Len() == 0 {
		return types.New(types.ErrKindFormat, op, "", "icon container has no images", format.ErrNoImages)
	}
	if len(dir.Images) != len(dir.Entries) {
		return types.New(types.ErrKindFormat, op, "",
			fmt.Sprintf("%d entries but %d images", len(dir.Entries), len(dir.Images)), nil)
	}
	return nil
}
