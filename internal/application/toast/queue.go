package toast

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultDuration = 3000 * time.Millisecond
	DefaultLinger   = 300 * time.Millisecond

	subscriberBuffer = 32

	// maxDelayMS is the largest millisecond count a time.Duration can hold.
	maxDelayMS = math.MaxInt64 / int64(time.Millisecond)
)

// Config configures a Queue. Zero values fall back to the package defaults.
type Config struct {
	DefaultDuration time.Duration
	Linger          time.Duration
	Clock           Clock
	Logger          *zerolog.Logger
}

// Queue is the ordered set of toasts currently on screen. Callers share one
// Queue per application; it is safe for concurrent use, and deferred
// callbacks are serialized with direct calls through the same lock.
type Queue struct {
	mu sync.Mutex

	items []Toast
	seq   uint64

	timers   map[uint64]Timer
	timerSeq uint64

	subscribers []chan Event
	closed      bool

	defaultMS int
	linger    time.Duration
	clock     Clock
	logger    *zerolog.Logger
}

// NewQueue creates an empty Queue.
func NewQueue(cfg Config) *Queue {
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = DefaultDuration
	}
	if cfg.Linger <= 0 {
		cfg.Linger = DefaultLinger
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock()
	}
	if cfg.Logger == nil {
		l := log.With().Str("component", "toast").Logger()
		cfg.Logger = &l
	}
	return &Queue{
		timers:    make(map[uint64]Timer),
		defaultMS: int(cfg.DefaultDuration / time.Millisecond),
		linger:    cfg.Linger,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
	}
}

// Enqueue appends a toast built from opts and returns its id. Missing fields
// are defaulted; nothing is rejected. A positive duration schedules Dismiss.
// Enqueue on a closed Queue does nothing and returns 0.
func (q *Queue) Enqueue(opts Options) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		q.logger.Debug().Str("message", opts.Message).Msg("enqueue on closed queue ignored")
		return 0
	}

	q.seq++
	t := Toast{
		ID:        q.seq,
		Title:     opts.Title,
		Message:   opts.Message,
		Type:      opts.Type,
		Visible:   true,
		Duration:  q.defaultMS,
		CreatedAt: q.clock.Now().UTC(),
	}
	if !t.Type.Valid() {
		t.Type = SeverityInfo
	}
	if opts.Duration != nil {
		t.Duration = *opts.Duration
	}

	q.items = append(q.items, t)
	q.notifyLocked(Event{Type: EventAdded, Toast: t})

	if t.Duration > 0 {
		id := t.ID
		q.scheduleLocked(msDelay(t.Duration), func() { q.dismissLocked(id) })
	}
	return t.ID
}

// Success enqueues a success toast.
func (q *Queue) Success(message, title string) uint64 {
	return q.Enqueue(Options{Message: message, Title: title, Type: SeveritySuccess})
}

// Error enqueues an error toast.
func (q *Queue) Error(message, title string) uint64 {
	return q.Enqueue(Options{Message: message, Title: title, Type: SeverityError})
}

// Warning enqueues a warning toast.
func (q *Queue) Warning(message, title string) uint64 {
	return q.Enqueue(Options{Message: message, Title: title, Type: SeverityWarning})
}

// Info enqueues an info toast.
func (q *Queue) Info(message, title string) uint64 {
	return q.Enqueue(Options{Message: message, Title: title, Type: SeverityInfo})
}

// Dismiss hides the toast with the given id and removes it after the linger
// period. Unknown or already hidden ids are ignored.
func (q *Queue) Dismiss(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.dismissLocked(id)
}

func (q *Queue) dismissLocked(id uint64) {
	i := q.indexLocked(id)
	if i < 0 || !q.items[i].Visible {
		return
	}
	q.items[i].Visible = false
	q.notifyLocked(Event{Type: EventHidden, Toast: q.items[i]})

	q.scheduleLocked(q.linger, func() { q.removeLocked(id) })
}

// removeLocked resolves the toast by id again: the queue may have shifted
// since the removal was scheduled.
func (q *Queue) removeLocked(id uint64) {
	i := q.indexLocked(id)
	if i < 0 {
		return
	}
	t := q.items[i]
	q.items = append(q.items[:i], q.items[i+1:]...)
	q.notifyLocked(Event{Type: EventRemoved, Toast: t})
}

func (q *Queue) indexLocked(id uint64) int {
	for i := range q.items {
		if q.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (q *Queue) scheduleLocked(d time.Duration, fn func()) {
	key := q.timerSeq
	q.timerSeq++
	q.timers[key] = q.clock.AfterFunc(d, func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.closed {
			return
		}
		delete(q.timers, key)
		fn()
	})
}

// List returns a snapshot of the queue in display order.
func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.items))
	copy(out, q.items)
	return out
}

// Get returns the toast with the given id.
func (q *Queue) Get(id uint64) (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if i := q.indexLocked(id); i >= 0 {
		return q.items[i], true
	}
	return Toast{}, false
}

// Len returns the number of toasts in the queue, hidden ones included.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Subscribe returns a channel receiving queue changes. Events are dropped
// for subscribers that fall behind.
func (q *Queue) Subscribe() <-chan Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if q.closed {
		close(ch)
		return ch
	}
	q.subscribers = append(q.subscribers, ch)
	return ch
}

// Unsubscribe removes and closes a subscription.
func (q *Queue) Unsubscribe(ch <-chan Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, sub := range q.subscribers {
		if sub == ch {
			q.subscribers = append(q.subscribers[:i], q.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

func (q *Queue) notifyLocked(event Event) {
	for _, ch := range q.subscribers {
		select {
		case ch <- event:
		default:
			q.logger.Warn().Uint64("toast_id", event.Toast.ID).Str("event", string(event.Type)).Msg("subscriber full, event dropped")
		}
	}
}

// Close stops every pending timer and closes all subscriber channels.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true

	for key, t := range q.timers {
		t.Stop()
		delete(q.timers, key)
	}
	for _, ch := range q.subscribers {
		close(ch)
	}
	q.subscribers = nil
	q.logger.Debug().Int("pending", len(q.items)).Msg("toast queue closed")
}

// msDelay converts a positive millisecond duration, saturating instead of
// overflowing into a negative delay.
func msDelay(ms int) time.Duration {
	if int64(ms) >= maxDelayMS {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms) * time.Millisecond
}
