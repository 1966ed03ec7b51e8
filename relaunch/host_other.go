//go:build !unix && !windows

package relaunch

import "syscall"

func detachedAttr() *syscall.SysProcAttr { return nil }
