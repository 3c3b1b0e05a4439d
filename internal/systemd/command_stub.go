//go:build !linux
// +build !linux

package systemd

import (
	"fmt"
	"runtime"
)

// ErrNotSupported is returned when systemctl operations are attempted on
// non-Linux systems.
var ErrNotSupported = fmt.Errorf("systemd operations not supported on %s", runtime.GOOS)

// Run executes a command (stub for non-Linux).
func (r *RealCommandRunner) Run(name string, args ...string) error {
	return ErrNotSupported
}

// Output executes a command and returns its output (stub for non-Linux).
func (r *RealCommandRunner) Output(name string, args ...string) ([]byte, error) {
	return nil, ErrNotSupported
}
