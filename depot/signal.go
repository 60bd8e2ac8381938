package depot

import (
	"fmt"
	"io"
	"os"
	"os/signal"
)

// WatchSignal blocks forever, waking on every delivery of sig and
// writing a snapshot of state's inventory and neighbours to w. It
// never terminates until the process exits; call it in
// its own goroutine.
//
// Snapshots go through Inventory.SnapshotSortedNonzero and
// Neighbours.SnapshotSorted, the same synchronized path every mutating
// operation uses, so the dump reflects some consistent sequential
// ordering of completed mutations.
func WatchSignal(w io.Writer, state *State, sig os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sig)
	for range ch {
		DumpSnapshot(w, state)
	}
}

// DumpSnapshot writes one "Goods:"/"Neighbours:" dump of state to w.
func DumpSnapshot(w io.Writer, state *State) {
	fmt.Fprintln(w, "Goods:")
	for _, g := range state.Inventory.SnapshotSortedNonzero() {
		fmt.Fprintf(w, "%s %d\n", g.Name, g.Qty)
	}
	fmt.Fprintln(w, "Neighbours:")
	for _, p := range state.Neighbours.SnapshotSorted() {
		fmt.Fprintln(w, p.Name)
	}
}
