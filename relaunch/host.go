package relaunch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// OSHost implements Host on the real file system.
type OSHost struct{}

func (OSHost) Executable() (string, error) { return os.Executable() }

func (OSHost) CopyExclusive(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy data: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

func (OSHost) Remove(path string) error { return os.Remove(path) }

func (OSHost) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ExecSpawner starts detached child processes with os/exec.
type ExecSpawner struct{}

func (ExecSpawner) Start(path string, args []string) error {
	cmd := exec.Command(path, args...)
	cmd.SysProcAttr = detachedAttr()
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
