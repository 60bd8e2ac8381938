package depot

// DeferredCommand is a recorded protocol line, stored under an integer
// key until an Execute for that key replays it.
type DeferredCommand struct {
	Key      int
	Line     string
	executed bool
}

// DeferLog is a per-session, append-only sequence of deferred command
// records. It is owned exclusively by one session and needs no lock:
// the per-session defer log is never shared across sessions.
type DeferLog struct {
	records []*DeferredCommand
}

// NewDeferLog returns an empty defer log.
func NewDeferLog() *DeferLog {
	return &DeferLog{}
}

// Append records a new, not-yet-executed command under key.
func (d *DeferLog) Append(key int, line string) {
	d.records = append(d.records, &DeferredCommand{Key: key, Line: line})
}

// Execute returns, in original insertion order, the lines of every
// record matching key that has not yet been executed, marking each as
// executed before returning. A second call with no intervening Append
// for that key returns an empty slice.
func (d *DeferLog) Execute(key int) []string {
	var lines []string
	for _, rec := range d.records {
		if rec.Key == key && !rec.executed {
			rec.executed = true
			lines = append(lines, rec.Line)
		}
	}
	return lines
}
