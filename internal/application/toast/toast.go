// Package toast implements the transient notification queue shown by the web UI.
package toast

import "time"

// Severity classifies a toast for presentation.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Options describe a toast to enqueue. Every field is optional except Message,
// and even Message is not enforced.
type Options struct {
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Type    Severity `json:"type"`
	// Duration in milliseconds. nil uses the queue default; 0 or negative
	// disables auto-dismiss.
	Duration *int `json:"duration"`
}

// Toast is one entry of the queue.
type Toast struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Severity  `json:"type"`
	Visible   bool      `json:"show"`
	Duration  int       `json:"duration"` // milliseconds
	CreatedAt time.Time `json:"created"`
}

// EventType names a queue change.
type EventType string

const (
	EventAdded   EventType = "added"
	EventHidden  EventType = "hidden"
	EventRemoved EventType = "removed"
)

// Event signals a queue change to subscribers.
type Event struct {
	Type  EventType `json:"type"`
	Toast Toast     `json:"toast"`
}

// Clock tells the time and schedules deferred callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback registered with a Clock.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns the Clock backed by time.AfterFunc.
func RealClock() Clock { return realClock{} }
