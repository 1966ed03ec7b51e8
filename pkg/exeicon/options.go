package exeicon

import "github.com/joshuapare/icopatch/rsrc"

// Options controls a high-level icon operation.
type Options struct {
	// Options configures the underlying resource session (language,
	// scan ceiling, backend, store).
	rsrc.Options

	// CreateBackup creates a .bak file before modifying the executable.
	// The backup is created at <exePath>.bak. Ignored for dry runs.
	CreateBackup bool

	// DryRun stages every change and then discards the session.
	DryRun bool
}

// DefaultOptions returns the options used when an operation is given nil.
func DefaultOptions() Options {
	return Options{Options: rsrc.DefaultOptions()}
}

func (o *Options) resolved() Options {
	if o == nil {
		return DefaultOptions()
	}
	return *o
}
