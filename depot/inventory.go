package depot

import (
	"sort"
	"sync"
)

// Good is a single named commodity and its signed quantity. Quantity
// may be negative: a Withdraw on a good the depot has never heard of
// leaves a negative balance rather than being rejected.
type Good struct {
	Name string
	Qty  int64
}

// Inventory is the depot's ordered set of goods, uniquely keyed by
// name. All mutating and reading operations take the same lock,
// keeping every field access inside a single mutex domain.
type Inventory struct {
	mu     sync.Mutex
	order  []string
	byName map[string]int64
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		byName: make(map[string]int64),
	}
}

// Seed inserts or increments a good at startup. Unlike Deliver, Seed
// accepts a zero quantity, since a seeded good may legitimately start at 0.
func (inv *Inventory) Seed(name string, qty int32) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.addLocked(name, int64(qty))
}

// Deliver adds n (n > 0) to good's quantity, creating the record if
// absent.
func (inv *Inventory) Deliver(good string, n int64) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.addLocked(good, n)
}

// Withdraw subtracts n (n > 0) from good's quantity, creating a
// negative record if the good was previously unknown.
func (inv *Inventory) Withdraw(good string, n int64) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.addLocked(good, -n)
}

func (inv *Inventory) addLocked(good string, delta int64) {
	if _, ok := inv.byName[good]; !ok {
		inv.order = append(inv.order, good)
	}
	inv.byName[good] += delta
}

// SnapshotSortedNonzero returns a copy of every good with a nonzero
// quantity, ordered lexicographically by name.
func (inv *Inventory) SnapshotSortedNonzero() []Good {
	inv.mu.Lock()
	names := make([]string, len(inv.order))
	copy(names, inv.order)
	qty := make(map[string]int64, len(inv.byName))
	for k, v := range inv.byName {
		qty[k] = v
	}
	inv.mu.Unlock()

	sort.Strings(names)
	out := make([]Good, 0, len(names))
	for _, name := range names {
		if q := qty[name]; q != 0 {
			out = append(out, Good{Name: name, Qty: q})
		}
	}
	return out
}
