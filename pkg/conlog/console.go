package conlog

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// The package-level sink mirrors the console surface scripts expect:
// four severities taking arbitrary values, space-joined into one line.

var (
	stdMu sync.Mutex
	std   = New(LevelInfo, nil)
)

// SetLevel replaces the package-level sink with one at the given level,
// keeping the current writer semantics (stderr by default).
func SetLevel(level Level) {
	stdMu.Lock()
	defer stdMu.Unlock()
	std = New(level, stdOut)
}

// SetOutput redirects the package-level sink to w.
func SetOutput(w io.Writer) {
	stdMu.Lock()
	defer stdMu.Unlock()
	stdOut = w
	std = New(stdLevel(), w)
}

var stdOut io.Writer

func stdLevel() Level {
	if l, ok := std.(*consoleLogger); ok {
		return l.level
	}
	return LevelInfo
}

func current() Logger {
	stdMu.Lock()
	defer stdMu.Unlock()
	return std
}

// Log writes values at info severity.
func Log(values ...any) {
	current().Infof("%s", join(values))
}

// Warn writes values at warn severity.
func Warn(values ...any) {
	current().Warnf("%s", join(values))
}

// Error writes values at error severity.
func Error(values ...any) {
	current().Errorf("%s", join(values))
}

// Debug writes values at debug severity; suppressed unless the sink
// level is raised to LevelDebug.
func Debug(values ...any) {
	current().Debugf("%s", join(values))
}

func join(values []any) string {
	return strings.TrimSuffix(fmt.Sprintln(values...), "\n")
}
