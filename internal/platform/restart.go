package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Relaunch starts a detached copy of the current executable with the same
// arguments and working directory. It does not exit the current process;
// the caller is expected to quit once Relaunch returns nil.
func Relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("restart: locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return fmt.Errorf("restart: resolve executable: %w", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = os.Environ()
	if wd, err := os.Getwd(); err == nil {
		cmd.Dir = wd
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("restart: spawn replacement process: %w", err)
	}
	// The child is intentionally not waited on; it outlives this process.
	return cmd.Process.Release()
}
