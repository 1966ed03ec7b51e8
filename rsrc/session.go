package rsrc

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/tc-hib/winres"

	"github.com/joshuapare/icopatch/ico/group"
	"github.com/joshuapare/icopatch/pkg/types"
)

type key struct {
	kind Kind
	id   uint16
}

// change is a staged update. remove marks a zero-length update (deletion
// of every language at the id); otherwise data replaces every language
// with a single entry under lang.
type change struct {
	data   []byte
	lang   uint16
	remove bool
}

// applier moves staged changes into the target.
type applier interface {
	commit(s *Session) error
	abandon() error
}

// Session is an open transactional update against one executable.
type Session struct {
	path  string
	opts  Options
	base  *winres.ResourceSet
	index map[key]map[uint16][]byte // numeric icon resources in base, by language
	stage map[key]change
	order []key
	apply applier
	done  bool
}

var openSessions = struct {
	sync.Mutex
	paths map[string]struct{}
}{paths: make(map[string]struct{})}

func acquire(path string) bool {
	openSessions.Lock()
	defer openSessions.Unlock()
	if _, busy := openSessions.paths[path]; busy {
		return false
	}
	openSessions.paths[path] = struct{}{}
	return true
}

func release(path string) {
	openSessions.Lock()
	delete(openSessions.paths, path)
	openSessions.Unlock()
}

// Begin opens a session against target. It fails with ErrKindResourceSession
// if the target cannot be read as an executable image, if the backend cannot
// open it for update, or if this process already has a session on it.
func Begin(target string, opts *Options) (*Session, error) {
	o := opts.withDefaults()

	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, sessionErr("begin", target, "cannot resolve path", err)
	}
	if !acquire(abs) {
		return nil, sessionErr("begin", target, "a session is already open on this file", nil)
	}

	base, err := o.Store.Load(target)
	if err != nil {
		release(abs)
		return nil, sessionErr("begin", target, "cannot open target for resource update", err)
	}

	s := &Session{
		path:  abs,
		opts:  o,
		base:  base,
		index: indexIcons(base),
		stage: make(map[key]change),
	}

	switch o.Backend {
	case BackendPortable:
		s.apply = storeApplier{store: o.Store, path: target}
	case BackendNative:
		a, err := newNativeApplier(target)
		if err != nil {
			release(abs)
			return nil, sessionErr("begin", target, "cannot begin native resource update", err)
		}
		s.apply = a
	default:
		release(abs)
		return nil, sessionErr("begin", target, fmt.Sprintf("unknown backend %d", o.Backend), nil)
	}
	return s, nil
}

func indexIcons(rs *winres.ResourceSet) map[key]map[uint16][]byte {
	idx := make(map[key]map[uint16][]byte)
	rs.Walk(func(typeID, resID winres.Identifier, langID uint16, data []byte) bool {
		k, ok := iconKey(typeID, resID)
		if !ok {
			return true
		}
		if idx[k] == nil {
			idx[k] = make(map[uint16][]byte)
		}
		idx[k][langID] = data
		return true
	})
	return idx
}

// iconKey maps a winres identifier pair to a key when it names a numeric
// RT_ICON or RT_GROUP_ICON resource. Named resources are never touched.
func iconKey(typeID, resID winres.Identifier) (key, bool) {
	t, ok := typeID.(winres.ID)
	if !ok {
		return key{}, false
	}
	kind := Kind(t)
	if kind != KindIcon && kind != KindGroup {
		return key{}, false
	}
	id, ok := resID.(winres.ID)
	if !ok {
		return key{}, false
	}
	return key{kind: kind, id: uint16(id)}, true
}

// Path returns the absolute path of the target.
func (s *Session) Path() string { return s.path }

// Options returns the effective options of the session.
func (s *Session) Options() Options { return s.opts }

// WriteGroup inserts or replaces the RT_GROUP_ICON resource at id.
func (s *Session) WriteGroup(id uint16, rec *group.Record) error {
	if err := s.check("write group"); err != nil {
		return err
	}
	data, err := rec.MarshalBinary()
	if err != nil {
		return sessionErr("write group", s.path, fmt.Sprintf("cannot encode group %d", id), err)
	}
	return s.put(key{KindGroup, id}, change{data: data, lang: s.opts.Lang})
}

// WriteImage inserts or replaces the RT_ICON resource at id. The session
// takes ownership of data.
func (s *Session) WriteImage(id uint16, data []byte) error {
	if err := s.check("write image"); err != nil {
		return err
	}
	if len(data) == 0 {
		return sessionErr("write image", s.path, fmt.Sprintf("image %d is empty", id), nil)
	}
	return s.put(key{KindIcon, id}, change{data: data, lang: s.opts.Lang})
}

// RemoveAllIcons marks every RT_GROUP_ICON and RT_ICON resource with an id
// in [1, ScanCeiling) for deletion and returns how many were marked.
func (s *Session) RemoveAllIcons() (int, error) {
	if err := s.check("remove icons"); err != nil {
		return 0, err
	}
	removed := 0
	for id := 1; id < s.opts.ScanCeiling && id <= 0xFFFF; id++ {
		for _, kind := range [...]Kind{KindGroup, KindIcon} {
			k := key{kind, uint16(id)}
			if !s.exists(k) {
				continue
			}
			if err := s.put(k, change{remove: true}); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// Read returns the payload at id as the session currently sees it. When
// several languages exist, the configured language wins, then the lowest.
func (s *Session) Read(kind Kind, id uint16) ([]byte, bool) {
	k := key{kind, id}
	if c, ok := s.stage[k]; ok {
		if c.remove {
			return nil, false
		}
		return c.data, true
	}
	langs := s.index[k]
	if len(langs) == 0 {
		return nil, false
	}
	if data, ok := langs[s.opts.Lang]; ok {
		return data, true
	}
	first := true
	var best uint16
	for lang := range langs {
		if first || lang < best {
			best, first = lang, false
		}
	}
	return langs[best], true
}

// Snapshot returns the ids that exist with staged changes applied.
func (s *Session) Snapshot() Snapshot {
	var groups, icons []uint16
	seen := make(map[key]struct{}, len(s.index)+len(s.stage))
	add := func(k key) {
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		if !s.exists(k) {
			return
		}
		if k.kind == KindGroup {
			groups = append(groups, k.id)
		} else {
			icons = append(icons, k.id)
		}
	}
	for k := range s.index {
		add(k)
	}
	for _, k := range s.order {
		add(k)
	}
	return NewSnapshot(groups, icons)
}

// Pending returns the number of staged changes.
func (s *Session) Pending() int { return len(s.order) }

// Commit writes every staged change to the target and ends the session.
// On error nothing has been written.
func (s *Session) Commit() error {
	if err := s.check("commit"); err != nil {
		return err
	}
	s.done = true
	defer release(s.path)

	if err := s.apply.commit(s); err != nil {
		return sessionErr("commit", s.path, "cannot commit resource update", err)
	}
	return nil
}

// Discard drops every staged change and ends the session.
func (s *Session) Discard() error {
	if err := s.check("discard"); err != nil {
		return err
	}
	s.done = true
	defer release(s.path)

	if err := s.apply.abandon(); err != nil {
		return sessionErr("discard", s.path, "cannot discard resource update", err)
	}
	return nil
}

func (s *Session) check(op string) error {
	if s == nil || s.done {
		path := ""
		if s != nil {
			path = s.path
		}
		return types.New(types.ErrKindState, op, path, "session already ended", nil)
	}
	return nil
}

func (s *Session) exists(k key) bool {
	if c, ok := s.stage[k]; ok {
		return !c.remove
	}
	return len(s.index[k]) > 0
}

func (s *Session) put(k key, c change) error {
	if k.id == 0 {
		return sessionErr("update", s.path, fmt.Sprintf("%s id 0 is invalid", k.kind), nil)
	}
	if _, ok := s.stage[k]; !ok {
		s.order = append(s.order, k)
	}
	s.stage[k] = c
	return nil
}

// result builds the resource tree the target should end up with.
func (s *Session) result() (*winres.ResourceSet, error) {
	out := &winres.ResourceSet{}
	var err error
	s.base.Walk(func(typeID, resID winres.Identifier, langID uint16, data []byte) bool {
		if k, ok := iconKey(typeID, resID); ok {
			if _, staged := s.stage[k]; staged {
				return true
			}
		}
		err = out.Set(typeID, resID, langID, data)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	for _, k := range s.order {
		c := s.stage[k]
		if c.remove {
			continue
		}
		if err := out.Set(winres.ID(k.kind), winres.ID(k.id), c.lang, c.data); err != nil {
			return nil, fmt.Errorf("set %s %d: %w", k.kind, k.id, err)
		}
	}
	return out, nil
}

type storeApplier struct {
	store Store
	path  string
}

func (a storeApplier) commit(s *Session) error {
	rs, err := s.result()
	if err != nil {
		return err
	}
	return a.store.Save(a.path, rs)
}

func (storeApplier) abandon() error { return nil }

func sessionErr(op, path, msg string, cause error) *types.Error {
	return types.New(types.ErrKindResourceSession, op, path, msg, cause)
}
