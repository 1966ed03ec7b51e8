// Package rsrctest provides an in-memory rsrc.Store for tests.
package rsrctest

import (
	"io/fs"
	"sync"

	"github.com/tc-hib/winres"
)

// LangEnglishUS is the language fixtures are written under.
const LangEnglishUS = 0x0409

// MemStore keeps resource sets keyed by path. Load of an unknown path fails
// like opening a missing file.
type MemStore struct {
	mu      sync.Mutex
	files   map[string]*winres.ResourceSet
	saves   int
	LoadErr error // returned by every Load when set
	SaveErr error // returned by every Save when set
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string]*winres.ResourceSet)}
}

// Put registers rs as the current resources of path.
func (m *MemStore) Put(path string, rs *winres.ResourceSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = rs
}

// Get returns the current resources of path.
func (m *MemStore) Get(path string) *winres.ResourceSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[path]
}

// Saves returns how many successful Save calls happened.
func (m *MemStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemStore) Load(path string) (*winres.ResourceSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	rs, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return rs, nil
}

func (m *MemStore) Save(path string, rs *winres.ResourceSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.files[path] = rs
	m.saves++
	return nil
}

// IconSet builds a resource set holding an RT_GROUP_ICON at every id in
// groups and an RT_ICON at every id in icons, plus an RT_MANIFEST so tests
// can check unrelated resources survive. Payloads are one byte: the id.
func IconSet(groups, icons []uint16) *winres.ResourceSet {
	rs := &winres.ResourceSet{}
	for _, id := range groups {
		rs.Set(winres.RT_GROUP_ICON, winres.ID(id), LangEnglishUS, []byte{byte(id)})
	}
	for _, id := range icons {
		rs.Set(winres.RT_ICON, winres.ID(id), LangEnglishUS, []byte{byte(id)})
	}
	rs.Set(winres.RT_MANIFEST, winres.ID(1), 0, []byte("<assembly/>"))
	return rs
}

// Langs returns the languages present for a numeric resource.
func Langs(rs *winres.ResourceSet, typeID winres.ID, id uint16) []uint16 {
	var out []uint16
	rs.Walk(func(t, r winres.Identifier, lang uint16, _ []byte) bool {
		if t == winres.Identifier(typeID) && r == winres.Identifier(winres.ID(id)) {
			out = append(out, lang)
		}
		return true
	})
	return out
}
