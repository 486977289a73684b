//go:build windows

package hostproc

import "os"

// Exit terminates the current process. Windows has no SIGTERM
// equivalent worth pretending about; exit directly.
func Exit() {
	os.Exit(0)
}
