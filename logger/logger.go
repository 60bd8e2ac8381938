// Package logger provides the process-wide logger a depot's session
// goroutines and accept loop share. Init must be called once, early
// in the process lifetime, before any other logger function runs.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger writes tagged, newline-terminated lines to every attached
// output. A depot process runs exactly one, initialized by
// cmd/root.go at startup with the depot's own name as the tag every
// session and the accept loop log through. The signal watcher does not
// log; it writes its dumps straight to stdout.
type Logger struct {
	mu      sync.Mutex
	outputs []io.Writer
	prefix  string
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Init initializes the global logger. writeToStdout attaches process
// stdout as an output; a depot never writes lifecycle events to
// stdout itself (stdout is reserved for the listening port line and
// signal-driven dumps), so cmd/root.go always passes false. extra
// attaches any further sinks, such as a buffer a test wants to assert
// against. Only the first call in a process has any effect.
func Init(prefix string, writeToStdout bool, extra ...io.Writer) {
	once.Do(func() {
		l := &Logger{prefix: prefix, outputs: extra}
		if writeToStdout {
			l.outputs = append(l.outputs, os.Stdout)
		}
		globalLogger = l
	})
}

// Printf logs a formatted message through the global logger, tagged
// with the prefix given to Init. Before Init has run it falls back to
// the standard log package so a stray early call is still visible
// rather than silently dropped.
func Printf(format string, v ...interface{}) {
	if globalLogger == nil {
		log.Printf(format, v...)
		return
	}

	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	msg := strings.TrimSuffix(fmt.Sprintf(format, v...), "\n")
	if globalLogger.prefix != "" {
		msg = fmt.Sprintf("[%s] %s", globalLogger.prefix, msg)
	}
	for _, output := range globalLogger.outputs {
		fmt.Fprintln(output, msg)
	}
}
