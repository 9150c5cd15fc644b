//go:build windows

// Package process terminates browser process trees.
package process

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// taskkillNotFound is the taskkill exit status for an unknown PID.
const taskkillNotFound = 128

// KillTree force-kills pid and its child processes with taskkill.
// A process that has already exited is not an error.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == taskkillNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("killing process tree %d: %w", pid, err)
	}
	return nil
}
