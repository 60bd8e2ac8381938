package depot

import (
	"sort"
	"sync"
)

// LineWriter is the outgoing half of a peer session: writing a line is
// safe to call concurrently from any goroutine (in particular, a
// Transfer handler running on a different session than the one that
// admitted the peer).
type LineWriter interface {
	WriteLine(line string) error
}

// LineReader is the incoming half of a peer session. It is retained on
// the Peer record for data-model fidelity but is only
// ever read by the session goroutine that owns the connection; no
// other code calls it.
type LineReader interface {
	ReadLine() (string, error)
}

// Peer is a single admitted neighbour: a depot known by name and
// listening port, reachable through the outbound half of the TCP
// session established at handshake time.
type Peer struct {
	Name string
	Port Port
	tx   LineWriter
	rx   LineReader
}

// Neighbours is the depot's registry of admitted peers, keyed jointly
// by name and by port: a record is admitted only if neither key
// collides with an existing record.
type Neighbours struct {
	mu      sync.Mutex
	byName  map[string]*Peer
	byPort  map[Port]*Peer
	ordered []*Peer
}

// NewNeighbours returns an empty neighbour registry.
func NewNeighbours() *Neighbours {
	return &Neighbours{
		byName: make(map[string]*Peer),
		byPort: make(map[Port]*Peer),
	}
}

// TryAdmit inserts a new peer record if neither name nor port collides
// with an existing one. Returns the admitted Peer and true on success,
// or (nil, false) if admission was refused.
func (n *Neighbours) TryAdmit(name string, port Port, tx LineWriter, rx LineReader) (*Peer, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.byName[name]; ok {
		return nil, false
	}
	if _, ok := n.byPort[port]; ok {
		return nil, false
	}

	p := &Peer{Name: name, Port: port, tx: tx, rx: rx}
	n.byName[name] = p
	n.byPort[port] = p
	n.ordered = append(n.ordered, p)
	return p, true
}

// FindTxByName looks up a peer's outbound line writer by name. The
// returned writer may be used after this call returns without holding
// any lock: the registry's mutex guards only the map lookup, never the
// write itself, so a slow or blocked peer socket can never stall
// another session's lookup.
func (n *Neighbours) FindTxByName(name string) (LineWriter, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p, ok := n.byName[name]
	if !ok {
		return nil, false
	}
	return p.tx, true
}

// SnapshotSorted returns a copy of every admitted peer, ordered
// lexicographically by name.
func (n *Neighbours) SnapshotSorted() []Peer {
	n.mu.Lock()
	out := make([]Peer, len(n.ordered))
	for i, p := range n.ordered {
		out[i] = *p
	}
	n.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
