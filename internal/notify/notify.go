// Package notify carries user-facing notifications as data. Rendering is left
// to whoever drains them.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Level of a notification
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a short titled message, analogous to a toast
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       Level     `json:"level"`
	Time        time.Time `json:"time"`
}

// Info builds an informational notification stamped with the current time
func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: LevelInfo, Time: time.Now()}
}

// Error builds an error notification stamped with the current time
func Error(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: LevelError, Time: time.Now()}
}

// Notifier receives notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Discard drops every notification
var Discard Notifier = NotifierFunc(func(Notification) {})

// Multi fans a notification out to every notifier in order
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, target := range m {
		target.Notify(n)
	}
}

// LogNotifier writes notifications to a zap logger
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(n Notification) {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("description", n.Description),
	}
	if n.Level == LevelError {
		l.logger.Warn("Notification", fields...)
		return
	}
	l.logger.Info("Notification", fields...)
}

// Buffer keeps the most recent notifications up to a fixed capacity.
// Older entries are dropped first.
type Buffer struct {
	mu       sync.Mutex
	capacity int
	entries  []Notification
}

// DefaultBufferSize is used when NewBuffer is given a non-positive capacity
const DefaultBufferSize = 50

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &Buffer{capacity: capacity}
}

func (b *Buffer) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, n)
	if over := len(b.entries) - b.capacity; over > 0 {
		b.entries = append([]Notification(nil), b.entries[over:]...)
	}
}

// Recent returns a copy of the buffered notifications, oldest first
func (b *Buffer) Recent() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Notification{}, b.entries...)
}

// Drain returns the buffered notifications and empties the buffer
func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.entries
	b.entries = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Len reports how many notifications are buffered
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
