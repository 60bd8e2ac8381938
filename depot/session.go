package depot

import (
	"fmt"
	"sync"
)

// sessionLogger is the narrow slice of the logger package a session
// needs; kept as an interface so depot has no import-time dependency
// on the logger package's concrete type.
type sessionLogger interface {
	Printf(format string, args ...interface{})
}

// noopLogger discards everything; used when a session is run without
// an attached logger (e.g. in tests).
type noopLogger struct{}

func (noopLogger) Printf(string, ...interface{}) {}

// Session is a single connection's state machine: handshake flags plus
// the per-connection defer log.
type Session struct {
	id       int
	state    *State
	conn     Conn
	dial     Dialer
	sessions *Sessions
	log      sessionLogger
	outbound bool

	defers *DeferLog

	mu         sync.Mutex
	imSent     bool
	imReceived bool
}

// RunSession drives one connection end to end: it sends this depot's
// own IM line, then reads and dispatches lines until EOF, a transport
// error, or a handshake violation, closing the connection before it
// returns. It is the same function for inbound (accepted) and
// outbound (Connect-dialed) sockets.
func RunSession(conn Conn, state *State, dial Dialer, sessions *Sessions, log sessionLogger, outbound bool) {
	if log == nil {
		log = noopLogger{}
	}
	s := &Session{
		state:    state,
		conn:     conn,
		dial:     dial,
		sessions: sessions,
		log:      log,
		outbound: outbound,
		defers:   NewDeferLog(),
	}
	s.run()
}

func (s *Session) run() {
	if s.sessions != nil {
		s.id = s.sessions.add(s)
		defer s.sessions.remove(s.id)
	}
	defer s.conn.Close()

	im := fmt.Sprintf("IM:%d:%s", s.state.ListenPort, s.state.SelfName)
	if err := s.conn.WriteLine(im); err != nil {
		return
	}
	s.mu.Lock()
	s.imSent = true
	s.mu.Unlock()

	s.log.Printf("session %d: handshake sent to %s", s.id, s.conn.RemoteAddr())

	msgCount := 0
	for {
		line, err := s.conn.ReadLine()
		if line == "" && err != nil {
			break
		}

		s.mu.Lock()
		handshakeComplete := s.imSent && s.imReceived
		s.mu.Unlock()

		if msgCount > 1 && !handshakeComplete {
			break
		}

		args, sepCount := Lex(line)
		verb := args[0]

		if msgCount <= 1 && !handshakeComplete && verb != "IM" {
			// Tolerated pre-handshake noise: ignored, not dispatched.
			msgCount++
			if err != nil {
				break
			}
			continue
		}

		dispatch(s, args, sepCount)
		msgCount++

		if err != nil {
			break
		}
	}

	s.log.Printf("session %d: closed (%s)", s.id, s.conn.RemoteAddr())
}

// markHandshaken records a successfully admitted IM from the peer.
func (s *Session) markHandshaken() {
	s.mu.Lock()
	s.imReceived = true
	s.mu.Unlock()
}

// handshakeReceived reports whether this session has admitted its
// peer's IM.
func (s *Session) handshakeReceived() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imReceived
}
