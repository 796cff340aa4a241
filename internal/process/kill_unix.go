//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid so that
// renderer and GPU helper children die with the browser.
// Best-effort: the launcher's own Kill runs afterwards as a fallback.
func KillProcessGroup(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	return syscall.Kill(-pid, syscall.SIGKILL)
}
