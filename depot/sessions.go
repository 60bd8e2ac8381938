package depot

import "sync"

// Sessions is a concurrency-safe registry of the sessions currently
// live on one depot process, inbound and outbound alike. It tracks
// every open connection so operator tooling can list active sessions
// without reaching into the neighbour table — a session exists before
// any neighbour record is admitted.
type Sessions struct {
	mu     sync.Mutex
	nextID int
	live   map[int]*Session
}

// NewSessions returns an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{live: make(map[int]*Session)}
}

func (r *Sessions) add(s *Session) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.live[id] = s
	return id
}

func (r *Sessions) remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
}

// SessionView is a read-only snapshot of one live session, safe to
// copy and hold after the registry's lock has been released.
type SessionView struct {
	ID         int
	RemoteAddr string
	Outbound   bool
	Handshaken bool
}

// Snapshot returns a point-in-time view of every live session.
func (r *Sessions) Snapshot() []SessionView {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]SessionView, 0, len(r.live))
	for id, s := range r.live {
		out = append(out, SessionView{
			ID:         id,
			RemoteAddr: s.conn.RemoteAddr(),
			Outbound:   s.outbound,
			Handshaken: s.handshakeReceived(),
		})
	}
	return out
}
