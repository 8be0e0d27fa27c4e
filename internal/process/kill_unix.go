//go:build !windows

package process

import (
	"errors"
	"syscall"
)

// KillTree sends SIGKILL to the process group led by pid, taking Chrome's
// renderer and GPU helpers down with it. A group that is already gone is
// not an error. pid <= 0 is ignored: -0 would signal our own group.
func KillTree(pid int) error {
	if pid <= 0 {
		return nil
	}
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}
	return nil
}
