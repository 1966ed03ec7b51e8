// Package format houses the on-disk layouts shared by the icon container
// parser and the resource group codec. Offsets are relative to the start of
// the structure they describe; all integers are little-endian.
package format

// Icon container header (ICONDIR).
//
//	Offset  Size  Description
//	------  ----  -----------------------------------------
//	 0x00    2    Reserved (0)
//	 0x02    2    Resource type (1 = icon, 2 = cursor)
//	 0x04    2    Number of directory entries
const (
	IconHeaderReservedOffset = 0x00
	IconHeaderTypeOffset     = 0x02
	IconHeaderCountOffset    = 0x04
	IconHeaderSize           = 0x06
)

// Icon container directory entry (ICONDIRENTRY), IconEntrySize bytes each,
// packed immediately after the header.
//
//	Offset  Size  Description
//	------  ----  -----------------------------------------
//	 0x00    1    Width in pixels (0 means 256)
//	 0x01    1    Height in pixels (0 means 256)
//	 0x02    1    Palette color count (0 if >= 8bpp)
//	 0x03    1    Reserved
//	 0x04    2    Color planes
//	 0x06    2    Bits per pixel
//	 0x08    4    Size of the image payload in bytes
//	 0x0C    4    File offset of the image payload
const (
	IconEntryWidthOffset      = 0x00
	IconEntryHeightOffset     = 0x01
	IconEntryColorCountOffset = 0x02
	IconEntryReservedOffset   = 0x03
	IconEntryPlanesOffset     = 0x04
	IconEntryBitCountOffset   = 0x06
	IconEntryBytesOffset      = 0x08
	IconEntryImageOffset      = 0x0C
	IconEntrySize             = 0x10
)

// Resource group record (GRPICONDIR) header and entry sizes. The header
// mirrors IconHeader; entries drop the file offset and carry a 16-bit
// resource id instead.
const (
	GroupHeaderSize = 0x06
	GroupEntrySize  = 0x0E
)

// Container type values.
const (
	TypeIcon   = 1
	TypeCursor = 2
)

// Resource type ids (winuser.h).
const (
	RTIcon      = 3
	RTGroupIcon = 14
)

// LangEnglishUS is MAKELANGID(LANG_ENGLISH, SUBLANG_ENGLISH_US).
const LangEnglishUS = 0x0409

// IconExt is the conventional extension of an icon container file.
const IconExt = ".ico"
