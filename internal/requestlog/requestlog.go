package requestlog

import (
	"fmt"
	"os"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Logger appends timestamped lines to a single log file. It is best-effort
// by contract: write failures are swallowed and never reported to callers.
type Logger struct {
	enabled bool
	path    string
}

func New(enabled bool, path string) *Logger {
	return &Logger{
		enabled: enabled,
		path:    path,
	}
}

// Log appends "[YYYY-MM-DD HH:MM:SS] <message>" to the log file, creating it
// if absent. A no-op when logging is disabled. Lines are appended in call
// order and never rewritten.
func (l *Logger) Log(message string) {
	if l == nil || !l.enabled {
		return
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "[%s] %s\n", time.Now().Format(timestampLayout), message)
}

// Logf is Log with fmt.Sprintf formatting.
func (l *Logger) Logf(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}
	l.Log(fmt.Sprintf(format, args...))
}
