//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree force-kills pid and every child it spawned.
func KillTree(pid int) {
	// Errors are ignored: the process may already be gone.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}
