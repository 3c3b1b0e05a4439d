//go:build !linux
// +build !linux

package acme

import "os"

// dirGroup is a stub for non-Linux builds; unit compilation targets
// systemd hosts, so the group only matters on Linux.
func dirGroup(info os.FileInfo) (string, error) {
	return "", nil
}
