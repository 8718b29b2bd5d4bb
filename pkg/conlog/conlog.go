package conlog

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/itchyny/timefmt-go"
	"github.com/mattn/go-isatty"
)

// Level represents the severity level for logs.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level. Unknown strings fall back to
// LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "INFO", "LOG":
		return LevelInfo
	case "DEBUG":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger is the structured logging interface used across the toolkit.
type Logger interface {
	// Debugf, Infof, Warnf, Errorf log formatted messages at respective levels.
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// With returns a child logger augmented with the provided fields.
	With(fields map[string]any) Logger
}

// ANSI colors per level; applied only when the writer is a terminal.
var levelColors = map[Level]string{
	LevelError: "\x1b[31m",
	LevelWarn:  "\x1b[33m",
	LevelInfo:  "\x1b[32m",
	LevelDebug: "\x1b[36m",
}

const colorReset = "\x1b[0m"

// textFormatter emits compact single-line text logs.
// Format: [LEVEL] ts msg key1=val1 key2=val2 ...
type textFormatter struct {
	timestampFormat string // strftime format; empty disables timestamps
	color           bool
}

func newTextFormatter(color bool) *textFormatter {
	return &textFormatter{
		timestampFormat: "%Y-%m-%d %H:%M:%S",
		color:           color,
	}
}

func (f *textFormatter) format(ts time.Time, level Level, msg string, fields map[string]any) []byte {
	var b strings.Builder
	b.Grow(128)

	if f.color {
		b.WriteString(levelColors[level])
	}
	b.WriteByte('[')
	b.WriteString(level.String())
	b.WriteByte(']')
	if f.color {
		b.WriteString(colorReset)
	}
	b.WriteByte(' ')

	if f.timestampFormat != "" {
		b.WriteString(timefmt.Format(ts, f.timestampFormat))
		b.WriteByte(' ')
	}

	// Message first for readability
	b.WriteString(msg)

	// Sort field keys for deterministic output
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(safeSprint(fields[k]))
		}
	}

	b.WriteByte('\n')
	return []byte(b.String())
}

func safeSprint(v any) string {
	switch t := v.(type) {
	case string:
		// Quote if contains whitespace
		if strings.IndexFunc(t, func(r rune) bool { return r <= ' ' }) >= 0 {
			return fmt.Sprintf("%q", t)
		}
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// consoleLogger is a thread-safe logger implementation supporting With() context.
type consoleLogger struct {
	out       io.Writer
	level     Level
	formatter *textFormatter

	// baseFields are the context fields attached to this logger.
	baseFields map[string]any

	// mu serializes writes to the writer and protects baseFields during write.
	mu *sync.Mutex
}

// New creates a console logger writing to w at the given level. If w is
// nil, os.Stderr is used. Level coloring is enabled when w is a
// terminal.
func New(level Level, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &consoleLogger{
		out:        w,
		level:      level,
		formatter:  newTextFormatter(writerIsTerminal(w)),
		baseFields: make(map[string]any),
		mu:         &sync.Mutex{},
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// nopLogger discards all output.
type nopLogger struct{}

func (l *nopLogger) Debugf(format string, args ...any) {}
func (l *nopLogger) Infof(format string, args ...any)  {}
func (l *nopLogger) Warnf(format string, args ...any)  {}
func (l *nopLogger) Errorf(format string, args ...any) {}
func (l *nopLogger) With(fields map[string]any) Logger { return l }

// NewNop returns a logger that discards all output.
func NewNop() Logger {
	return &nopLogger{}
}

func (l *consoleLogger) enabled(level Level) bool {
	return level <= l.level
}

func (l *consoleLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	// Shallow copy of base fields to avoid parent mutation
	newFields := make(map[string]any, len(l.baseFields)+len(fields))
	for k, v := range l.baseFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &consoleLogger{
		out:        l.out,
		level:      l.level,
		formatter:  l.formatter,
		baseFields: newFields,
		mu:         l.mu, // share same lock and writer
	}
}

func (l *consoleLogger) Debugf(format string, args ...any) {
	l.logf(LevelDebug, format, args...)
}

func (l *consoleLogger) Infof(format string, args ...any) {
	l.logf(LevelInfo, format, args...)
}

func (l *consoleLogger) Warnf(format string, args ...any) {
	l.logf(LevelWarn, format, args...)
}

func (l *consoleLogger) Errorf(format string, args ...any) {
	l.logf(LevelError, format, args...)
}

func (l *consoleLogger) logf(level Level, format string, args ...any) {
	if !l.enabled(level) {
		return
	}
	// Format message only when enabled
	msg := fmt.Sprintf(format, args...)

	// Snapshot fields to avoid mutation races by callers
	fields := make(map[string]any, len(l.baseFields))
	for k, v := range l.baseFields {
		fields[k] = v
	}

	ts := time.Now()
	line := l.formatter.format(ts, level, msg, fields)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(line)
}
