package exeicon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tc-hib/winres"

	"github.com/joshuapare/icopatch/ico"
	"github.com/joshuapare/icopatch/ico/group"
	"github.com/joshuapare/icopatch/pkg/exeicon"
	"github.com/joshuapare/icopatch/pkg/types"
	"github.com/joshuapare/icopatch/rsrc"
	"github.com/joshuapare/icopatch/rsrc/rsrctest"
)

func TestListIcons(t *testing.T) {
	f := newFixture(t, nil, nil)
	require.NoError(t, exeicon.SetIcon(f.exe, f.icon, f.opts()))
	_, err := exeicon.AddIcon(f.exe, f.icon, f.opts())
	require.NoError(t, err)

	groups, err := exeicon.ListIcons(f.exe, f.opts())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, uint16(1), groups[0].ID)
	assert.Equal(t, uint16(4), groups[1].ID)
	require.NoError(t, groups[0].Err)
	require.Len(t, groups[0].Images, 2)

	img := groups[0].Images[1]
	assert.Equal(t, uint16(3), img.ID)
	assert.Equal(t, 32, img.Width)
	assert.Equal(t, 32, img.Height)
	assert.Equal(t, uint16(32), img.BitCount)
	assert.Equal(t, uint32(1128), img.Size)
	assert.True(t, img.Present)
}

func TestListIcons_MalformedAndDangling(t *testing.T) {
	f := newFixture(t, nil, nil)
	dir, err := ico.ParseFile(f.icon)
	require.NoError(t, err)
	rec, err := group.Convert(dir, 2)
	require.NoError(t, err)
	data, err := rec.MarshalBinary()
	require.NoError(t, err)

	// Group 1 references images 2 and 3 but only 2 exists. Group 7 holds
	// a one-byte payload, too short for a record.
	rs := rsrctest.IconSet([]uint16{7}, []uint16{2})
	require.NoError(t, rs.Set(winres.RT_GROUP_ICON, winres.ID(1), rsrctest.LangEnglishUS, data))
	f.store.Put(f.exe, rs)

	groups, err := exeicon.ListIcons(f.exe, f.opts())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	require.NoError(t, groups[0].Err)
	require.Len(t, groups[0].Images, 2)
	assert.True(t, groups[0].Images[0].Present)
	assert.False(t, groups[0].Images[1].Present)

	assert.Equal(t, uint16(7), groups[1].ID)
	assert.ErrorIs(t, groups[1].Err, types.ErrFormat)
	assert.Empty(t, groups[1].Images)
}

func TestListIcons_IgnoresNativeBackend(t *testing.T) {
	f := newFixture(t, []uint16{1}, []uint16{2})
	opts := f.opts()
	opts.Backend = rsrc.BackendNative

	groups, err := exeicon.ListIcons(f.exe, opts)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Error(t, groups[0].Err)
}
