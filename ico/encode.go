package ico

import (
	"fmt"
	"math"

	"github.com/joshuapare/icopatch/internal/format"
)

// MarshalBinary encodes the directory as a container. Image offsets and
// sizes are recomputed from Images; the other entry fields are written as-is.
func (d *Directory) MarshalBinary() ([]byte, error) {
	if len(d.Entries) != len(d.Images) {
		return nil, fmt.Errorf("ico: %d entries but %d images", len(d.Entries), len(d.Images))
	}
	if len(d.Entries) > math.MaxUint16 {
		return nil, fmt.Errorf("ico: %d entries exceed container limit", len(d.Entries))
	}

	dirEnd := format.IconHeaderSize + len(d.Entries)*format.IconEntrySize
	total := uint64(dirEnd)
	for _, img := range d.Images {
		total += uint64(len(img))
	}
	if total > math.MaxUint32 {
		return nil, fmt.Errorf("ico: container of %d bytes exceeds 32-bit offsets", total)
	}

	typ := d.Type
	if typ == 0 {
		typ = format.TypeIcon
	}
	out := make([]byte, total)
	format.PutU16(out, format.IconHeaderReservedOffset, d.Reserved)
	format.PutU16(out, format.IconHeaderTypeOffset, typ)
	format.PutU16(out, format.IconHeaderCountOffset, uint16(len(d.Entries)))

	off := dirEnd
	for i, e := range d.Entries {
		b := out[format.IconHeaderSize+i*format.IconEntrySize:]
		b[format.IconEntryWidthOffset] = e.Width
		b[format.IconEntryHeightOffset] = e.Height
		b[format.IconEntryColorCountOffset] = e.ColorCount
		b[format.IconEntryReservedOffset] = e.Reserved
		format.PutU16(b, format.IconEntryPlanesOffset, e.Planes)
		format.PutU16(b, format.IconEntryBitCountOffset, e.BitCount)
		format.PutU32(b, format.IconEntryBytesOffset, uint32(len(d.Images[i])))
		format.PutU32(b, format.IconEntryImageOffset, uint32(off))
		off += copy(out[off:], d.Images[i])
	}
	return out, nil
}

// Append adds the entries and images of other to d, in order.
func (d *Directory) Append(other *Directory) {
	d.Entries = append(d.Entries, other.Entries...)
	d.Images = append(d.Images, other.Images...)
}
