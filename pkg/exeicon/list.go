package exeicon

import (
	"github.com/joshuapare/icopatch/ico/group"
	"github.com/joshuapare/icopatch/rsrc"
)

// GroupInfo describes one RT_GROUP_ICON resource.
type GroupInfo struct {
	ID     uint16
	Images []ImageInfo
	Err    error // set when the record could not be decoded
}

// ImageInfo describes one entry of a group record.
type ImageInfo struct {
	ID         uint16
	Width      int
	Height     int
	ColorCount uint8
	BitCount   uint16
	Size       uint32
	Present    bool // the referenced RT_ICON exists
}

// ListIcons decodes every numeric icon group of exePath in id order. The
// executable is never modified; the portable backend is always used.
func ListIcons(exePath string, opts *Options) ([]GroupInfo, error) {
	o := opts.resolved()
	o.Backend = rsrc.BackendPortable

	s, err := rsrc.Begin(exePath, &o.Options)
	if err != nil {
		return nil, err
	}
	defer s.Discard()

	snap := s.Snapshot()
	var out []GroupInfo
	for _, id := range snap.Groups() {
		info := GroupInfo{ID: id}
		data, _ := s.Read(rsrc.KindGroup, id)
		rec, err := group.ParseRecord(data)
		if err != nil {
			info.Err = err
			out = append(out, info)
			continue
		}
		for _, e := range rec.Entries {
			w, h := int(e.Width), int(e.Height)
			if w == 0 {
				w = 256
			}
			if h == 0 {
				h = 256
			}
			info.Images = append(info.Images, ImageInfo{
				ID:         e.ID,
				Width:      w,
				Height:     h,
				ColorCount: e.ColorCount,
				BitCount:   e.BitCount(),
				Size:       e.ImageSize(),
				Present:    snap.Has(rsrc.KindIcon, e.ID),
			})
		}
		out = append(out, info)
	}
	return out, nil
}
