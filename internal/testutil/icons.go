// Package testutil builds icon container fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/icopatch/internal/format"
)

// ImageSpec describes one directory entry of a synthetic container.
// Payload bytes are filled with Fill so tests can tell images apart.
type ImageSpec struct {
	Width      uint8
	Height     uint8
	ColorCount uint8
	Planes     uint16
	BitCount   uint16
	Size       int
	Fill       byte
}

// Square returns a 32bpp spec of the given edge and payload size. Fill is
// derived from the edge so every size in a container is distinct.
func Square(edge uint8, size int) ImageSpec {
	return ImageSpec{Width: edge, Height: edge, Planes: 1, BitCount: 32, Size: size, Fill: edge}
}

// IconContainer encodes specs as a well-formed icon container: header,
// directory, then payloads packed back to back in directory order.
func IconContainer(specs ...ImageSpec) []byte {
	dirEnd := format.IconHeaderSize + len(specs)*format.IconEntrySize
	total := dirEnd
	for _, s := range specs {
		total += s.Size
	}

	b := make([]byte, total)
	format.PutU16(b, format.IconHeaderReservedOffset, 0)
	format.PutU16(b, format.IconHeaderTypeOffset, format.TypeIcon)
	format.PutU16(b, format.IconHeaderCountOffset, uint16(len(specs)))

	off := dirEnd
	for i, s := range specs {
		e := b[format.IconHeaderSize+i*format.IconEntrySize:]
		e[format.IconEntryWidthOffset] = s.Width
		e[format.IconEntryHeightOffset] = s.Height
		e[format.IconEntryColorCountOffset] = s.ColorCount
		format.PutU16(e, format.IconEntryPlanesOffset, s.Planes)
		format.PutU16(e, format.IconEntryBitCountOffset, s.BitCount)
		format.PutU32(e, format.IconEntryBytesOffset, uint32(s.Size))
		format.PutU32(e, format.IconEntryImageOffset, uint32(off))
		for j := 0; j < s.Size; j++ {
			b[off+j] = s.Fill
		}
		off += s.Size
	}
	return b
}

// WriteFile writes data to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
