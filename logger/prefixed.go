package logger

import "fmt"

// Prefixed is a lightweight view onto the global logger that tags
// every message it logs with a fixed prefix, such as a depot's name.
type Prefixed struct {
	prefix string
}

// NewPrefixed returns a Prefixed logger writing through the global
// logger with every message tagged "[prefix] ...".
func NewPrefixed(prefix string) Prefixed {
	return Prefixed{prefix: prefix}
}

// Printf logs a formatted, prefixed message through the global logger.
func (p Prefixed) Printf(format string, args ...interface{}) {
	Printf("[%s] %s", p.prefix, fmt.Sprintf(format, args...))
}
