// Package notice surfaces transient, user-visible operation results
// (the equivalent of toast messages): every auth and task mutation
// reports success or failure here, independent of the notification feed.
package notice

import (
	"sync"
	"time"
)

// Level classifies a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is a single transient message shown to the user.
type Notice struct {
	Level   Level
	Message string
	At      time.Time
}

// Recorder receives notices emitted by store operations.
type Recorder interface {
	Notify(level Level, message string)
}

// Log is an in-memory Recorder that keeps notices in emission order.
type Log struct {
	mu      sync.Mutex
	notices []Notice
}

// NewLog creates an empty notice log.
func NewLog() *Log {
	return &Log{}
}

// Notify appends a notice.
func (l *Log) Notify(level Level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = append(l.notices, Notice{
		Level:   level,
		Message: message,
		At:      time.Now(),
	})
}

// All returns a copy of every recorded notice, oldest first.
func (l *Log) All() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Notice, len(l.notices))
	copy(out, l.notices)
	return out
}

// Latest returns the most recent notice, or nil if none was recorded.
func (l *Log) Latest() *Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.notices) == 0 {
		return nil
	}
	n := l.notices[len(l.notices)-1]
	return &n
}

// Discard is a Recorder that drops every notice.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Notify(Level, string) {}
