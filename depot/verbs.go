package depot

import "fmt"

// dispatch routes one already-lexed line to its verb handler. Every
// handler is a no-op on any failed precondition: malformed lines,
// unknown verbs, and semantic no-ops are all silently dropped per
// no error ever reaches the peer or a log.
func dispatch(s *Session, args []string, sepCount int) {
	switch args[0] {
	case "IM":
		handleIM(s, args, sepCount)
	case "Connect":
		handleConnect(s, args, sepCount)
	case "Deliver":
		handleDeliver(s, args, sepCount)
	case "Withdraw":
		handleWithdraw(s, args, sepCount)
	case "Transfer":
		handleTransfer(s, args, sepCount)
	case "Defer":
		handleDefer(s, args, sepCount)
	case "Execute":
		handleExecute(s, args, sepCount)
	default:
		// Unrecognized verb: no-op.
	}
}

// handleIM admits the peer that sent it as a neighbour, provided this
// session hasn't already completed a handshake and the peer's name
// and port don't collide with an existing neighbour.
func handleIM(s *Session, args []string, sepCount int) {
	if sepCount != 2 || len(args) != 3 {
		return
	}
	if s.handshakeReceived() {
		return
	}
	port, ok := ParsePositiveInt(args[1])
	if !ok {
		return
	}
	p, ok := ValidPort(port)
	if !ok {
		return
	}
	name := args[2]
	if !ValidName(name) {
		return
	}

	if _, admitted := s.state.Neighbours.TryAdmit(name, p, s.conn, s.conn); !admitted {
		return
	}
	s.markHandshaken()
	s.log.Printf("session %d: admitted neighbour %s:%d", s.id, name, p)
}

// handleConnect dials the given port on a new goroutine; on success
// the new connection becomes a session actor identical in shape to an
// accepted one. Dial failure silently aborts.
func handleConnect(s *Session, args []string, sepCount int) {
	if sepCount != 1 || len(args) != 2 {
		return
	}
	if !s.handshakeReceived() {
		return
	}
	portNum, ok := ParsePositiveInt(args[1])
	if !ok {
		return
	}
	port, ok := ValidPort(portNum)
	if !ok {
		return
	}
	if s.dial == nil {
		return
	}

	dial := s.dial
	state := s.state
	sessions := s.sessions
	log := s.log
	go func() {
		conn, err := dial(port)
		if err != nil {
			return
		}
		RunSession(conn, state, dial, sessions, log, true)
	}()
}

// handleDeliver adds qty units of good to the inventory, creating the
// record if absent.
func handleDeliver(s *Session, args []string, sepCount int) {
	qty, good, ok := parseQtyGood(args, sepCount)
	if !ok {
		return
	}
	s.state.Inventory.Deliver(good, qty)
}

// handleWithdraw subtracts qty units of good from the inventory,
// inserting a negative record if the good was previously unknown.
func handleWithdraw(s *Session, args []string, sepCount int) {
	qty, good, ok := parseQtyGood(args, sepCount)
	if !ok {
		return
	}
	s.state.Inventory.Withdraw(good, qty)
}

func parseQtyGood(args []string, sepCount int) (qty int64, good string, ok bool) {
	if sepCount != 2 || len(args) != 3 {
		return 0, "", false
	}
	n, valid := ParsePositiveInt(args[1])
	if !valid {
		return 0, "", false
	}
	if !ValidName(args[2]) {
		return 0, "", false
	}
	return int64(n), args[2], true
}

// handleTransfer withdraws qty units of good locally and dispatches a
// Deliver to the named neighbour's outbound connection. The inventory
// mutation and the neighbour lookup each take their own lock; the
// socket write happens with no lock held.
func handleTransfer(s *Session, args []string, sepCount int) {
	if sepCount != 3 || len(args) != 4 {
		return
	}
	n, ok := ParsePositiveInt(args[1])
	if !ok {
		return
	}
	good := args[2]
	if !ValidName(good) {
		return
	}
	dest := args[3]

	tx, ok := s.state.Neighbours.FindTxByName(dest)
	if !ok {
		return
	}

	s.state.Inventory.Withdraw(good, int64(n))
	_ = tx.WriteLine(fmt.Sprintf("Deliver:%d:%s", n, good))
}

// handleDefer appends a reconstructed command line to this session's
// defer log under key, to be replayed on a matching Execute.
func handleDefer(s *Session, args []string, sepCount int) {
	if len(args) < 2 {
		return
	}
	key, ok := ParsePositiveInt(args[1])
	if !ok {
		return
	}

	var inner []string
	switch {
	case sepCount == 4 && len(args) == 5:
		inner = args[2:5]
	case sepCount == 5 && len(args) == 6:
		inner = args[2:6]
	default:
		return
	}

	line := inner[0]
	for _, a := range inner[1:] {
		line += ":" + a
	}
	s.defers.Append(key, line)
}

// handleExecute replays, in original insertion order, every deferred
// command recorded under key that hasn't already been executed.
func handleExecute(s *Session, args []string, sepCount int) {
	if sepCount != 1 || len(args) != 2 {
		return
	}
	key, ok := ParsePositiveInt(args[1])
	if !ok {
		return
	}

	for _, line := range s.defers.Execute(key) {
		replayArgs, replaySep := Lex(line)
		dispatch(s, replayArgs, replaySep)
	}
}
