// Package ico decodes icon container (.ico) files into a directory of
// entries plus the raw image payloads they reference.
//
// Payloads are treated as opaque blobs: the PE resource section stores the
// same encoded bitmap (or PNG) bytes a container does, so patching only
// re-frames the directory metadata and never transcodes pixels.
//
//	dir, err := ico.ParseFile("app.ico")
//	if err != nil {
//	    return err // *types.Error with Kind ErrKindFormat
//	}
//	for i, e := range dir.Entries {
//	    fmt.Println(e.Width, e.Height, len(dir.Images[i]))
//	}
package ico
