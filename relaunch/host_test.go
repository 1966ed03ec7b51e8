package relaunch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/icopatch/relaunch"
)

func TestOSHost_CopyExclusive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tool.exe")
	dst := filepath.Join(dir, "tool.exe.1.exe")
	require.NoError(t, os.WriteFile(src, []byte("MZ"), 0o755))

	var h relaunch.OSHost
	require.NoError(t, h.CopyExclusive(src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "MZ", string(data))

	// A second copy onto the same name must fail and keep the first.
	require.NoError(t, os.WriteFile(src, []byte("MZ2"), 0o755))
	assert.Error(t, h.CopyExclusive(src, dst))
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "MZ", string(data))

	assert.Error(t, h.CopyExclusive(filepath.Join(dir, "none.exe"), filepath.Join(dir, "x.exe")))
}

func TestOSHost_Remove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tmp.exe")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var h relaunch.OSHost
	require.NoError(t, h.Remove(path))
	assert.NoFileExists(t, path)
	assert.Error(t, h.Remove(path))
}

func TestOSHost_Sleep(t *testing.T) {
	var h relaunch.OSHost
	require.NoError(t, h.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.Sleep(ctx, time.Hour), context.Canceled)
}

func TestOSHost_Executable(t *testing.T) {
	exe, err := relaunch.OSHost{}.Executable()
	require.NoError(t, err)
	assert.NotEmpty(t, exe)
}
