//go:build windows

package depot

import "os"

// ReconfigureSignal has no real equivalent on Windows; os.Interrupt is
// used so the watcher goroutine still compiles and runs, even though
// nothing sends it in practice.
func ReconfigureSignal() os.Signal {
	return os.Interrupt
}
