//go:build !windows

package depot

import (
	"os"
	"syscall"
)

// ReconfigureSignal is the platform's SIGHUP-equivalent reconfiguration
// signal.
func ReconfigureSignal() os.Signal {
	return syscall.SIGHUP
}
