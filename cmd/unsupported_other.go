//go:build !linux

package cmd

import (
	"runtime"

	"grimm.is/pflask/internal/errors"
)

func errUnsupported(name string) error {
	return errors.Errorf(errors.KindSyscall, "%s is not supported on %s", name, runtime.GOOS)
}

// RunNetif is only available on linux.
func RunNetif(opts *Options) error { return errUnsupported("netif") }

// RunLoopback is only available on linux.
func RunLoopback(opts *Options) error { return errUnsupported("loopback") }

// RunCheck is only available on linux.
func RunCheck(opts *Options) error { return errUnsupported("check") }
