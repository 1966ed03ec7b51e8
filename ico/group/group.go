// Package group converts parsed icon containers into RT_GROUP_ICON resource
// records and decodes such records back.
//
// The container entry and the group entry look alike but are not byte
// compatible. Entry below spells out the 14 on-disk bytes of a group entry
// field by field, in the order the conversion fills them:
//
//	Offset  Size  Entry field        Standard GRPICONDIRENTRY view
//	------  ----  -----------------  -----------------------------
//	 0x00    1    Width              width
//	 0x01    1    Height             height
//	 0x02    1    ColorCount         colorCount
//	 0x03    1    Reserved           reserved
//	 0x04    1    Planes             planes (low byte)
//	 0x05    1    ColorPlane = 0     planes (high byte)
//	 0x06    2    ByteSize           bitCount
//	 0x08    2    ReservedByteSize   bytesInRes (low word)
//	 0x0A    2    Reserved2          bytesInRes (high word)
//	 0x0C    2    ID                 id
//
// So ByteSize receives the container's bit depth and ReservedByteSize the
// container's payload size; copying the container entry straight across
// yields a record that icon viewers mis-render.
package group

import (
	"bytes"
	"fmt"
	"math"

	"github.com/lunixbochs/struc"

	"github.com/joshuapare/icopatch/ico"
	"github.com/joshuapare/icopatch/internal/format"
	"github.com/joshuapare/icopatch/pkg/types"
)

// Entry is one group record entry. See the package doc for the layout.
type Entry struct {
	Width            uint8  `struc:"uint8"`
	Height           uint8  `struc:"uint8"`
	ColorCount       uint8  `struc:"uint8"`
	Reserved         uint8  `struc:"uint8"`
	Planes           uint8  `struc:"uint8"`
	ColorPlane       uint8  `struc:"uint8"`
	ByteSize         uint16 `struc:"uint16,little"`
	ReservedByteSize uint16 `struc:"uint16,little"`
	Reserved2        uint16 `struc:"uint16,little"`
	ID               uint16 `struc:"uint16,little"`
}

// BitCount returns the bit depth as a standard reader sees it.
func (e Entry) BitCount() uint16 { return e.ByteSize }

// ImageSize returns the payload size as a standard reader sees it.
func (e Entry) ImageSize() uint32 {
	return uint32(e.ReservedByteSize) | uint32(e.Reserved2)<<16
}

type header struct {
	Reserved uint16 `struc:"uint16,little"`
	Type     uint16 `struc:"uint16,little"`
	Count    uint16 `struc:"uint16,little"`
}

// Record is an RT_GROUP_ICON resource payload.
type Record struct {
	Reserved uint16
	Type     uint16
	Entries  []Entry
}

// Convert builds the group record for dir. Entry i references the RT_ICON
// resource firstID+i, so callers pass the id the first image will be
// written at; 1 gives the conventional 1-based numbering.
func Convert(dir *ico.Directory, firstID uint16) (*Record, error) {
	if firstID == 0 {
		return nil, types.New(types.ErrKindFormat, "convert", "", "image ids start at 1", nil)
	}
	if int(firstID)+dir.Len()-1 > math.MaxUint16 {
		return nil, types.New(types.ErrKindFormat, "convert", "",
			fmt.Sprintf("%d images starting at id %d overflow 16-bit ids", dir.Len(), firstID), nil)
	}

	rec := &Record{
		Reserved: 0,
		Type:     format.TypeIcon,
		Entries:  make([]Entry, dir.Len()),
	}
	for i, src := range dir.Entries {
		rec.Entries[i] = Entry{
			Width:            src.Width,
			Height:           src.Height,
			ColorCount:       src.ColorCount,
			Reserved:         src.Reserved,
			Planes:           uint8(src.Planes),
			ColorPlane:       0,
			ByteSize:         src.BitCount,
			ReservedByteSize: uint16(src.BytesInRes),
			Reserved2:        uint16(src.BytesInRes >> 16),
			ID:               firstID + uint16(i),
		}
	}
	return rec, nil
}

// IDs returns the RT_ICON ids referenced by the record, in entry order.
func (r *Record) IDs() []uint16 {
	ids := make([]uint16, len(r.Entries))
	for i, e := range r.Entries {
		ids[i] = e.ID
	}
	return ids
}

// MarshalBinary encodes the record as stored in the resource section.
func (r *Record) MarshalBinary() ([]byte, error) {
	if len(r.Entries) > math.MaxUint16 {
		return nil, fmt.Errorf("group: %d entries exceed record limit", len(r.Entries))
	}
	var out bytes.Buffer
	out.Grow(format.GroupHeaderSize + len(r.Entries)*format.GroupEntrySize)

	h := header{Reserved: r.Reserved, Type: r.Type, Count: uint16(len(r.Entries))}
	if err := struc.Pack(&out, &h); err != nil {
		return nil, fmt.Errorf("group: pack header: %w", err)
	}
	for i := range r.Entries {
		if err := struc.Pack(&out, &r.Entries[i]); err != nil {
			return nil, fmt.Errorf("group: pack entry %d: %w", i, err)
		}
	}
	return out.Bytes(), nil
}

// ParseRecord decodes an RT_GROUP_ICON payload.
func ParseRecord(b []byte) (*Record, error) {
	if len(b) < format.GroupHeaderSize {
		return nil, types.New(types.ErrKindFormat, "parse group", "",
			fmt.Sprintf("header needs %d bytes, have %d", format.GroupHeaderSize, len(b)), format.ErrTruncated)
	}
	r := bytes.NewReader(b)
	var h header
	if err := struc.Unpack(r, &h); err != nil {
		return nil, types.New(types.ErrKindFormat, "parse group", "", "header", err)
	}
	need := format.GroupHeaderSize + int(h.Count)*format.GroupEntrySize
	if len(b) < need {
		return nil, types.New(types.ErrKindFormat, "parse group", "",
			fmt.Sprintf("%d entries need %d bytes, have %d", h.Count, need, len(b)), format.ErrTruncated)
	}

	rec := &Record{Reserved: h.Reserved, Type: h.Type, Entries: make([]Entry, h.Count)}
	for i := range rec.Entries {
		if err := struc.Unpack(r, &rec.Entries[i]); err != nil {
			return nil, types.New(types.ErrKindFormat, "parse group", "", fmt.Sprintf("entry %d", i), err)
		}
	}
	return rec, nil
}
