package ico

import (
	"fmt"

	"github.com/joshuapare/icopatch/internal/buf"
	"github.com/joshuapare/icopatch/internal/format"
	"github.com/joshuapare/icopatch/internal/mmfile"
	"github.com/joshuapare/icopatch/pkg/types"
)

// ParseFile maps the container at path and parses it. Payloads are copied
// out of the mapping before it is released.
func ParseFile(path string) (*Directory, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, types.New(types.ErrKindFormat, "open", path, "cannot read icon file", err)
	}
	defer release()

	dir, err := parse(data)
	if err != nil {
		if te, ok := err.(*types.Error); ok {
			te.Path = path
		}
		return nil, err
	}
	return dir, nil
}

// Parse decodes an icon container held in memory. The returned Directory
// does not alias data.
func Parse(data []byte) (*Directory, error) {
	return parse(data)
}

func parse(data []byte) (*Directory, error) {
	if len(data) < format.IconHeaderSize {
		return nil, formatErr(fmt.Sprintf("header needs %d bytes, have %d", format.IconHeaderSize, len(data)), format.ErrTruncated)
	}

	reserved := format.ReadU16(data, format.IconHeaderReservedOffset)
	typ := format.ReadU16(data, format.IconHeaderTypeOffset)
	count := int(format.ReadU16(data, format.IconHeaderCountOffset))

	if typ != format.TypeIcon {
		return nil, formatErr(fmt.Sprintf("container type %d", typ), format.ErrBadType)
	}
	if _, err := buf.CheckListBounds(len(data), format.IconHeaderSize, count, format.IconEntrySize); err != nil {
		return nil, formatErr(fmt.Sprintf("directory of %d entries", count), fmt.Errorf("%w: %w", format.ErrTruncated, err))
	}

	// Count is known up front, so both slices are sized once.
	dir := &Directory{
		Reserved: reserved,
		Type:     typ,
		Entries:  make([]Entry, count),
		Images:   make([][]byte, count),
	}
	for i := range count {
		e := decodeEntry(data[format.IconHeaderSize+i*format.IconEntrySize:])
		if e.BytesInRes == 0 {
			return nil, formatErr(fmt.Sprintf("entry %d", i), format.ErrEmptyImage)
		}
		src, ok := buf.Slice(data, int(e.ImageOffset), int(e.BytesInRes))
		if !ok {
			return nil, formatErr(fmt.Sprintf("entry %d: [%d, +%d) exceeds len=%d", i, e.ImageOffset, e.BytesInRes, len(data)), format.ErrOutOfBounds)
		}
		img := make([]byte, len(src))
		copy(img, src)
		dir.Entries[i] = e
		dir.Images[i] = img
	}
	return dir, nil
}

func decodeEntry(b []byte) Entry {
	return Entry{
		Width:       b[format.IconEntryWidthOffset],
		Height:      b[format.IconEntryHeightOffset],
		ColorCount:  b[format.IconEntryColorCountOffset],
		Reserved:    b[format.IconEntryReservedOffset],
		Planes:      format.ReadU16(b, format.IconEntryPlanesOffset),
		BitCount:    format.ReadU16(b, format.IconEntryBitCountOffset),
		BytesInRes:  format.ReadU32(b, format.IconEntryBytesOffset),
		ImageOffset: format.ReadU32(b, format.IconEntryImageOffset),
	}
}

func formatErr(msg string, cause error) *types.Error {
	return types.New(types.ErrKindFormat, "parse", "", msg, cause)
}
