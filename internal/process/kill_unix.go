//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the whole process group of pid so that
// Chrome renderer and GPU helpers die with the browser.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the rod launcher's own Kill runs as well.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
