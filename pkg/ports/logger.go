package ports

import "strings"

// LogLevel orders log messages by severity. A logger prints messages at or
// above its own level.
type LogLevel int

const (
	LevelDebug LogLevel = iota // per-packet and per-frame details
	LevelInfo                  // session lifecycle
	LevelWarn                  // recoverable problems, e.g. ignored streams
	LevelError                 // failures that abort an operation
	LevelQuiet                 // nothing is printed
)

var levelNames = [...]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelQuiet: "quiet",
}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// LookupLogLevel resolves a level name case-insensitively. "warning" is
// accepted as an alias of "warn".
func LookupLogLevel(s string) (LogLevel, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return LevelWarn, true
	}
	for l, name := range levelNames {
		if name == s {
			return LogLevel(l), true
		}
	}
	return LevelInfo, false
}

// ParseLogLevel is LookupLogLevel with unknown names mapped to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	l, _ := LookupLogLevel(s)
	return l
}

// Logger is a leveled printf-style logger. Messages are l10n keys;
// implementations may translate them before formatting.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that tags messages with component.
	WithComponent(component string) Logger
}
