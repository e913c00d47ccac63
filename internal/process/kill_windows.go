//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills pid and its child tree using taskkill.
// /F = force kill, /T = terminate child processes.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the rod launcher's own Kill runs as well.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
