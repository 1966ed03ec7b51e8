package rsrc

import (
	"errors"
	"fmt"
	"os"

	"github.com/tc-hib/winres"
)

// Store loads and persists the resource tree of an executable.
type Store interface {
	Load(path string) (*winres.ResourceSet, error)
	Save(path string, rs *winres.ResourceSet) error
}

// ExeStore reads and writes PE files on disk.
type ExeStore struct{}

// Load parses the resource section of the executable at path. An image
// without a resource section yields an empty set.
func (ExeStore) Load(path string) (*winres.ResourceSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rs, err := winres.LoadFromEXE(f)
	if errors.Is(err, winres.ErrNoResources) {
		return &winres.ResourceSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("not a valid executable image: %w", err)
	}
	return rs, nil
}

// Save replaces the resource section of the executable at path with rs.
// The new image is written to <path>.tmp and renamed over the original, so
// a failure leaves the target untouched.
func (ExeStore) Save(path string, rs *winres.ResourceSet) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	info, err := src.Stat()
	if err != nil {
		src.Close()
		return err
	}

	tempPath := path + ".tmp"
	dst, err := os.OpenFile(tempPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		src.Close()
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	writeErr := rs.WriteToEXE(dst, src, winres.ForceCheckSum())
	closeErr := dst.Close()
	src.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tempPath)
		if writeErr != nil {
			return fmt.Errorf("failed to write executable: %w", writeErr)
		}
		return fmt.Errorf("failed to write executable: %w", closeErr)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace executable: %w", err)
	}
	return nil
}
