package relaunch_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/icopatch/internal/testutil"
	"github.com/joshuapare/icopatch/pkg/exeicon"
	"github.com/joshuapare/icopatch/pkg/types"
	"github.com/joshuapare/icopatch/relaunch"
	"github.com/joshuapare/icopatch/rsrc"
	"github.com/joshuapare/icopatch/rsrc/rsrctest"
)

func TestIconPatcher(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "tool.exe")
	ico := testutil.WriteFile(t, dir, "tool.ico", testutil.IconContainer(testutil.Square(16, 64)))

	store := rsrctest.NewMemStore()
	store.Put(exe, rsrctest.IconSet([]uint16{1}, []uint16{2}))
	opts := exeicon.DefaultOptions()
	opts.Store = store
	p := relaunch.IconPatcher{Options: &opts}

	require.NoError(t, p.Patch(relaunch.OpAddIcon, exe, ico))
	require.NoError(t, p.Patch(relaunch.OpSetIcon, exe, ico))

	s, err := rsrc.Begin(exe, &opts.Options)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 3}, s.Snapshot().Groups())
	require.NoError(t, s.Discard())

	require.NoError(t, p.Patch(relaunch.OpRemoveIcon, exe, ""))
	s, err = rsrc.Begin(exe, &opts.Options)
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot().Groups())
	require.NoError(t, s.Discard())

	assert.ErrorIs(t, p.Patch(relaunch.OpDelete, exe, ico), types.ErrState)
}
