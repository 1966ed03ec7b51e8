//go:build !windows

package rsrc

import (
	"errors"
	"runtime"
)

var errNativeUnavailable = errors.New("native resource update API requires windows, running on " + runtime.GOOS)

func newNativeApplier(string) (applier, error) {
	return nil, errNativeUnavailable
}
