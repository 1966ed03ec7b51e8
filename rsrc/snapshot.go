package rsrc

import (
	"fmt"
	"math"
	"slices"

	"github.com/joshuapare/icopatch/internal/format"
	"github.com/joshuapare/icopatch/pkg/types"
)

// Kind is the resource type of an icon resource.
type Kind uint16

const (
	KindIcon  Kind = format.RTIcon      // RT_ICON
	KindGroup Kind = format.RTGroupIcon // RT_GROUP_ICON
)

func (k Kind) String() string {
	switch k {
	case KindIcon:
		return "RT_ICON"
	case KindGroup:
		return "RT_GROUP_ICON"
	default:
		return fmt.Sprintf("RT_%d", uint16(k))
	}
}

// Snapshot is an immutable view of which numeric icon ids exist.
type Snapshot struct {
	groups map[uint16]struct{}
	icons  map[uint16]struct{}
}

// NewSnapshot builds a snapshot from explicit id lists.
func NewSnapshot(groups, icons []uint16) Snapshot {
	s := Snapshot{
		groups: make(map[uint16]struct{}, len(groups)),
		icons:  make(map[uint16]struct{}, len(icons)),
	}
	for _, id := range groups {
		s.groups[id] = struct{}{}
	}
	for _, id := range icons {
		s.icons[id] = struct{}{}
	}
	return s
}

// Has reports whether a resource of kind exists at id.
func (s Snapshot) Has(kind Kind, id uint16) bool {
	switch kind {
	case KindGroup:
		_, ok := s.groups[id]
		return ok
	case KindIcon:
		_, ok := s.icons[id]
		return ok
	default:
		return false
	}
}

// Used reports whether id is taken by either kind.
func (s Snapshot) Used(id uint16) bool {
	return s.Has(KindGroup, id) || s.Has(KindIcon, id)
}

// Groups returns the RT_GROUP_ICON ids in ascending order.
func (s Snapshot) Groups() []uint16 { return sortedKeys(s.groups) }

// Icons returns the RT_ICON ids in ascending order.
func (s Snapshot) Icons() []uint16 { return sortedKeys(s.icons) }

func sortedKeys(m map[uint16]struct{}) []uint16 {
	out := make([]uint16, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// NextFreeID returns the lowest id in [1, ceiling) used by neither kind.
func NextFreeID(s Snapshot, ceiling int) (uint16, error) {
	return NextFreeBlock(s, 1, ceiling)
}

// NextFreeBlock returns the lowest g in [1, ceiling) such that ids
// g..g+size-1 are all unused. AddIcon asks for a block of one group plus
// its images so nothing already present gets overwritten.
func NextFreeBlock(s Snapshot, size, ceiling int) (uint16, error) {
	if size < 1 {
		return 0, types.New(types.ErrKindResourceSession, "allocate", "", fmt.Sprintf("invalid block size %d", size), nil)
	}
	ceiling = min(ceiling, math.MaxUint16+1)
	for g := 1; g < ceiling; g++ {
		if g+size-1 > math.MaxUint16 {
			break
		}
		free := true
		for id := g; id < g+size; id++ {
			if s.Used(uint16(id)) {
				// Restart after the collision.
				g = id
				free = false
				break
			}
		}
		if free {
			return uint16(g), nil
		}
	}
	return 0, types.New(types.ErrKindResourceSession, "allocate", "",
		fmt.Sprintf("no %d free ids below %d", size, ceiling), nil)
}
