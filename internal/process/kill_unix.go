//go:build !windows

package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid, which takes the
// browser's renderer and GPU helpers down with it.
func KillTree(pid int) {
	// Errors are ignored: the process may already be gone.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
