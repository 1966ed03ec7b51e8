//go:build windows

package rsrc

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procBeginUpdateResourceW = modkernel32.NewProc("BeginUpdateResourceW")
	procUpdateResourceW      = modkernel32.NewProc("UpdateResourceW")
	procEndUpdateResourceW   = modkernel32.NewProc("EndUpdateResourceW")
)

// nativeApplier holds an update handle from BeginUpdateResourceW. Staged
// changes are replayed into it on commit; EndUpdateResourceW then writes or
// discards them as one unit.
type nativeApplier struct {
	h uintptr
}

func newNativeApplier(path string) (applier, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	h, _, callErr := procBeginUpdateResourceW.Call(uintptr(unsafe.Pointer(p)), 0)
	if h == 0 {
		return nil, fmt.Errorf("BeginUpdateResourceW: %w", callErr)
	}
	return &nativeApplier{h: h}, nil
}

func (a *nativeApplier) commit(s *Session) error {
	for _, k := range s.order {
		c := s.stage[k]
		for lang := range s.index[k] {
			if !c.remove && lang == c.lang {
				continue
			}
			if err := a.update(k.kind, k.id, lang, nil); err != nil {
				a.end(true)
				return err
			}
		}
		if c.remove {
			continue
		}
		if err := a.update(k.kind, k.id, c.lang, c.data); err != nil {
			a.end(true)
			return err
		}
	}
	return a.end(false)
}

func (a *nativeApplier) abandon() error { return a.end(true) }

// update with empty data deletes the resource.
func (a *nativeApplier) update(kind Kind, id, lang uint16, data []byte) error {
	var ptr uintptr
	if len(data) > 0 {
		ptr = uintptr(unsafe.Pointer(&data[0]))
	}
	r, _, err := procUpdateResourceW.Call(a.h, uintptr(kind), uintptr(id), uintptr(lang), ptr, uintptr(len(data)))
	if r == 0 {
		return fmt.Errorf("UpdateResourceW %s %d lang 0x%04x: %w", kind, id, lang, err)
	}
	return nil
}

func (a *nativeApplier) end(discard bool) error {
	var d uintptr
	if discard {
		d = 1
	}
	r, _, err := procEndUpdateResourceW.Call(a.h, d)
	if r == 0 {
		return fmt.Errorf("EndUpdateResourceW: %w", err)
	}
	return nil
}
