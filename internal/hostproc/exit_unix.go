//go:build !windows

// Package hostproc contains host-process helpers: the default exit
// action used when a host does not supply one, and a process snapshot
// for debug and health surfaces.
package hostproc

import (
	"os"

	"golang.org/x/sys/unix"
)

// Exit terminates the current process. SIGTERM first, so the host's own
// shutdown handlers get a chance to run; hard exit if the signal cannot
// be delivered.
func Exit() {
	if err := unix.Kill(os.Getpid(), unix.SIGTERM); err != nil {
		os.Exit(0)
	}
}
