// Package rsrc edits the icon resources of a PE executable through a
// transactional session.
//
// # Session lifecycle
//
//	s, err := rsrc.Begin("app.exe", nil)
//	if err != nil {
//	    return err // ErrKindResourceSession: missing, locked, not a PE image
//	}
//	if err := s.WriteGroup(1, rec); err != nil {
//	    s.Discard()
//	    return err
//	}
//	for i, img := range dir.Images {
//	    s.WriteImage(rec.Entries[i].ID, img)
//	}
//	return s.Commit()
//
// Writes are staged in memory and land together on Commit, or not at all
// on Discard. A session must end with exactly one of the two; there is no
// finalizer. Within one process at most one session may be open per target
// path; nothing guards against other processes.
//
// # Backends
//
// BackendPortable loads the resource tree with tc-hib/winres, rebuilds it
// with the staged changes applied and rewrites the executable through a
// temporary file that is renamed over the target. It runs on any OS.
//
// BackendNative replays the staged changes through the Windows resource
// update API (BeginUpdateResourceW, UpdateResourceW, EndUpdateResourceW) and
// is only available on Windows.
//
// # Identifier scans
//
// RemoveAllIcons and the allocation helpers only consider ids below
// Options.ScanCeiling (1000 by default). Icons at or above the ceiling are
// neither removed nor treated as occupied starting points.
package rsrc
