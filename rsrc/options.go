package rsrc

import "github.com/joshuapare/icopatch/internal/format"

// DefaultScanCeiling bounds identifier scans: ids 1..DefaultScanCeiling-1
// are examined.
const DefaultScanCeiling = 1000

// Backend selects how staged changes reach the executable.
type Backend int

const (
	// BackendPortable rewrites the file with tc-hib/winres.
	BackendPortable Backend = iota
	// BackendNative uses the Windows resource update API.
	BackendNative
)

// String returns the flag spelling of the backend.
func (b Backend) String() string {
	switch b {
	case BackendPortable:
		return "portable"
	case BackendNative:
		return "native"
	default:
		return "unknown"
	}
}

// ParseBackend is the inverse of Backend.String.
func ParseBackend(s string) (Backend, bool) {
	switch s {
	case "portable", "":
		return BackendPortable, true
	case "native":
		return BackendNative, true
	default:
		return 0, false
	}
}

// Options configures a session. Zero Lang, zero ScanCeiling and nil Store
// select their defaults.
type Options struct {
	// Lang is the language id new resources are written under. Zero
	// selects 0x0409 (English, United States) unless NeutralLang is set.
	Lang uint16

	// NeutralLang writes resources under LANG_NEUTRAL (0) and overrides
	// Lang.
	NeutralLang bool

	// ScanCeiling is the exclusive upper bound of identifier scans.
	// Default: DefaultScanCeiling.
	ScanCeiling int

	// Backend selects the commit strategy. Default: BackendPortable.
	Backend Backend

	// Store loads the current resources and, for the portable backend,
	// persists the result. Default: ExeStore{}.
	Store Store
}

// DefaultOptions returns the options used when Begin is given nil.
func DefaultOptions() Options {
	return Options{
		Lang:        format.LangEnglishUS,
		ScanCeiling: DefaultScanCeiling,
		Backend:     BackendPortable,
		Store:       ExeStore{},
	}
}

func (o *Options) withDefaults() Options {
	d := DefaultOptions()
	if o == nil {
		return d
	}
	out := *o
	switch {
	case out.NeutralLang:
		out.Lang = 0
	case out.Lang == 0:
		out.Lang = d.Lang
	}
	if out.ScanCeiling <= 0 {
		out.ScanCeiling = d.ScanCeiling
	}
	if out.Store == nil {
		out.Store = d.Store
	}
	return out
}
