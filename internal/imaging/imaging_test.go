package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/icopatch/ico"
	"github.com/joshuapare/icopatch/internal/testutil"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFit_KeepsAspect(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	dst := Fit(solid(100, 50, red), 32)

	assert.Equal(t, image.Rect(0, 0, 32, 32), dst.Bounds())
	center := dst.NRGBAAt(16, 16)
	assert.InDelta(t, 255, center.R, 2)
	assert.InDelta(t, 255, center.A, 2)
	// Letterboxed rows stay transparent.
	assert.Equal(t, uint8(0), dst.NRGBAAt(16, 0).A)
	assert.Equal(t, uint8(0), dst.NRGBAAt(16, 31).A)
}

func TestBuild_Sizes(t *testing.T) {
	dir, err := Build(solid(64, 64, color.NRGBA{B: 255, A: 255}), []int{32, 16, 32, 256})
	require.NoError(t, err)
	require.Equal(t, 3, dir.Len())

	var edges []int
	for _, e := range dir.Entries {
		w, h := e.Size()
		assert.Equal(t, w, h)
		edges = append(edges, w)
	}
	assert.Equal(t, []int{16, 32, 256}, edges)
	assert.Equal(t, uint8(0), dir.Entries[2].Width, "256 is stored as 0")

	data, err := dir.MarshalBinary()
	require.NoError(t, err)
	back, err := ico.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, dir.Images, back.Images)
}

func TestBuild_DefaultSizes(t *testing.T) {
	dir, err := Build(solid(8, 8, color.NRGBA{G: 255, A: 255}), nil)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultSizes), dir.Len())
}

func TestBuild_Rejects(t *testing.T) {
	src := solid(8, 8, color.NRGBA{A: 255})
	_, err := Build(src, []int{0})
	assert.Error(t, err)
	_, err = Build(src, []int{512})
	assert.Error(t, err)
	_, err = Build(image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil)
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, solid(20, 10, color.NRGBA{R: 9, A: 255})))

	img, err := Decode(bytes.NewReader(pngBuf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())

	dir, err := Build(img, []int{48})
	require.NoError(t, err)
	data, err := dir.MarshalBinary()
	require.NoError(t, err)
	img, err = Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())

	_, err = Decode(bytes.NewReader([]byte("plain text")))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir, err := Build(solid(16, 16, color.NRGBA{A: 255}), []int{16})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out.ico")

	require.NoError(t, WriteFile(path, dir))
	back, err := ico.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, back.Len())
	assert.NoFileExists(t, path+".tmp")

	src := testutil.WriteFile(t, t.TempDir(), "in.png", nil)
	_, err = DecodeFile(src)
	assert.Error(t, err)
	assert.True(t, IsContainer(path))
	assert.False(t, IsContainer(src))
}
