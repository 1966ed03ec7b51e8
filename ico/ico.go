package ico

// Entry is one decoded directory entry of an icon container.
type Entry struct {
	Width       uint8 // 0 means 256
	Height      uint8 // 0 means 256
	ColorCount  uint8
	Reserved    uint8
	Planes      uint16
	BitCount    uint16
	BytesInRes  uint32
	ImageOffset uint32
}

// Size returns the pixel dimensions, expanding the 0 = 256 convention.
func (e Entry) Size() (w, h int) {
	w, h = int(e.Width), int(e.Height)
	if w == 0 {
		w = 256
	}
	if h == 0 {
		h = 256
	}
	return w, h
}

// Directory is a parsed icon container. Images[i] holds the payload
// described by Entries[i] and is owned by the Directory.
type Directory struct {
	Reserved uint16
	Type     uint16
	Entries  []Entry
	Images   [][]byte
}

// Len returns the number of images in the directory.
func (d *Directory) Len() int { return len(d.Entries) }
