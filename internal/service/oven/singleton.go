package oven

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"
)

// executableBase is the controller binary name; platform helpers append
// the extension when needed.
const executableBase = "ovenctl"

// ErrAlreadyRunning indicates another controller instance owns the panel.
var ErrAlreadyRunning = errors.New("another ovenctl instance is already running")

// ensureSingleInstance scans the process table for another live controller.
func ensureSingleInstance() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	self := os.Getpid()
	name := executableName()

	for _, process := range processes {
		if process.Pid() == self {
			continue
		}

		if process.Executable() == name {
			return fmt.Errorf("pid %d: %w", process.Pid(), ErrAlreadyRunning)
		}
	}

	return nil
}

// executableName returns the platform-specific controller binary name.
func executableName() string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return executableBase + ".exe"
	}

	return executableBase
}
