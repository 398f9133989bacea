package system

import (
	"os"
	"slices"

	"github.com/mitchellh/go-ps"
)

// Process is a running program.
type Process struct {
	// PID is the process id.
	PID int
	// Executable is the program name.
	Executable string
}

// RunningProcesses returns the processes whose executable matches one of names.
// The current process is never reported.
func RunningProcesses(names ...string) ([]Process, error) {
	processList, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	thisProcessID := os.Getpid()

	var found []Process

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if !slices.Contains(names, process.Executable()) {
			continue
		}

		found = append(found, Process{
			PID:        process.Pid(),
			Executable: process.Executable(),
		})
	}

	return found, nil
}
