//go:build linux
// +build linux

package acme

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"syscall"
)

// dirGroup resolves the owning group name of a certificate directory.
func dirGroup(info os.FileInfo) (string, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "", fmt.Errorf("no ownership info for %s", info.Name())
	}
	grp, err := user.LookupGroupId(strconv.FormatUint(uint64(stat.Gid), 10))
	if err != nil {
		return "", err
	}
	return grp.Name, nil
}
