// Package types holds the error vocabulary shared by every icopatch package.
//
// Errors are classified by ErrKind so callers can branch on intent rather
// than message text:
//
//	if types.IsKind(err, types.ErrKindFormat) {
//	    // the .ico file is malformed; nothing was written
//	}
package types
