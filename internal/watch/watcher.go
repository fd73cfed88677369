// Package watch polls the stored goals document and reports changes made by
// any savr process.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/theirongolddev/savr/internal/logging"
	"github.com/theirongolddev/savr/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Source is the read side of the document store.
type Source interface {
	DocumentUpdatedAt(ctx context.Context) (time.Time, bool, error)
	LoadDocument(ctx context.Context) ([]model.SavingsGoal, error)
}

// Config controls the watcher runtime behavior.
type Config struct {
	Interval     time.Duration
	EventsBuffer int
	Logger       *logrus.Logger
}

// Snapshot is a compact state of the whole goals document.
type Snapshot struct {
	At           time.Time                          `json:"at"`
	Goals        int                                `json:"goals"`
	Completed    int                                `json:"completed"`
	Transactions int                                `json:"transactions"`
	Saved        map[model.Currency]decimal.Decimal `json:"saved"`
}

// Delta captures snapshot differences between polls. Saved only lists
// currencies whose total changed.
type Delta struct {
	Goals        int                                `json:"goals"`
	Completed    int                                `json:"completed"`
	Transactions int                                `json:"transactions"`
	Saved        map[model.Currency]decimal.Decimal `json:"saved,omitempty"`
}

// IsZero reports whether no counted value changed.
func (d Delta) IsZero() bool {
	return d.Goals == 0 &&
		d.Completed == 0 &&
		d.Transactions == 0 &&
		len(d.Saved) == 0
}

// EventType names why an Event was emitted.
type EventType string

const (
	EventSnapshot     EventType = "snapshot"
	EventGoalsChanged EventType = "goals_changed"
)

// Event is emitted for the first poll and whenever the document changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status describes the watcher's progress.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Watcher polls a Source and publishes change events.
type Watcher struct {
	cfg Config
	src Source

	mu           sync.RWMutex
	startedAt    time.Time
	lastPollAt   time.Time
	lastModified time.Time
	pollCount    int64
	lastError    string
	hasSnapshot  bool
	snapshot     Snapshot
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a watcher over src.
func New(src Source, cfg Config) *Watcher {
	if cfg.Interval < 500*time.Millisecond {
		cfg.Interval = 2 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	return &Watcher{
		cfg:       cfg,
		src:       src,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run polls until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	// Seed initial snapshot so status is useful immediately.
	w.pollOnce(ctx)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.pollOnce(ctx)
		}
	}
}

func (w *Watcher) pollOnce(ctx context.Context) {
	ld := logging.NewLogData(w.cfg.Logger)
	endTimer := ld.AddTiming("poll")

	modified, _, err := w.src.DocumentUpdatedAt(ctx)
	if err != nil {
		w.recordError(err)
		endTimer()
		ld.Log().WithError(err).Warn("Watch.Poll.Error")
		return
	}

	w.mu.RLock()
	unchanged := w.hasSnapshot && modified.Equal(w.lastModified)
	w.mu.RUnlock()
	if unchanged {
		w.mu.Lock()
		w.lastPollAt = time.Now()
		w.pollCount++
		w.mu.Unlock()
		return
	}

	goals, err := w.src.LoadDocument(ctx)
	if err != nil {
		w.recordError(err)
		endTimer()
		ld.Log().WithError(err).Warn("Watch.Poll.Error")
		return
	}

	now := time.Now()
	snap := snapshotFromGoals(goals, now)

	w.mu.Lock()
	prev := w.snapshot
	prevExists := w.hasSnapshot

	w.hasSnapshot = true
	w.snapshot = snap
	w.lastModified = modified
	w.lastPollAt = now
	w.pollCount++
	w.lastError = ""

	w.nextEventID++
	ev := Event{
		ID:        w.nextEventID,
		Type:      EventSnapshot,
		Timestamp: now,
		Snapshot:  snap,
	}
	if prevExists {
		ev.Type = EventGoalsChanged
		ev.Delta = diffSnapshots(prev, snap)
	}
	w.mu.Unlock()

	w.publishEvent(ev)

	endTimer()
	ld.AddData("event", ev.Type)
	ld.AddData("goals", snap.Goals)
	ld.Log().Debug("Watch.Poll.Complete")
}

func (w *Watcher) recordError(err error) {
	w.mu.Lock()
	w.lastError = err.Error()
	w.lastPollAt = time.Now()
	w.pollCount++
	w.mu.Unlock()
}

func snapshotFromGoals(goals []model.SavingsGoal, at time.Time) Snapshot {
	snap := Snapshot{
		At:    at,
		Goals: len(goals),
		Saved: make(map[model.Currency]decimal.Decimal),
	}
	for _, g := range goals {
		cur := g.Currency.OrDefault()
		snap.Saved[cur] = snap.Saved[cur].Add(g.CurrentAmount)
		snap.Transactions += len(g.Transactions)
		if g.IsComplete() {
			snap.Completed++
		}
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	d := Delta{
		Goals:        curr.Goals - prev.Goals,
		Completed:    curr.Completed - prev.Completed,
		Transactions: curr.Transactions - prev.Transactions,
	}

	seen := make(map[model.Currency]bool)
	for cur := range curr.Saved {
		seen[cur] = true
	}
	for cur := range prev.Saved {
		seen[cur] = true
	}
	for cur := range seen {
		change := curr.Saved[cur].Sub(prev.Saved[cur])
		if change.IsZero() {
			continue
		}
		if d.Saved == nil {
			d.Saved = make(map[model.Currency]decimal.Decimal)
		}
		d.Saved[cur] = change
	}
	return d
}

func (w *Watcher) publishEvent(ev Event) {
	w.mu.Lock()
	w.events = append(w.events, ev)
	if len(w.events) > w.cfg.EventsBuffer {
		w.events = w.events[len(w.events)-w.cfg.EventsBuffer:]
	}

	for _, ch := range w.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	w.mu.Unlock()
}

// Subscribe returns a channel of subsequent events and a cancel func that
// closes it.
func (w *Watcher) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	w.mu.Lock()
	w.nextSubID++
	id := w.nextSubID
	w.subs[id] = ch
	w.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			close(ch)
			w.mu.Unlock()
		})
	}
}

// Events returns the retained events, oldest first.
func (w *Watcher) Events() []Event {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]Event, len(w.events))
	copy(out, w.events)
	return out
}

// Status returns a point-in-time view of the watcher.
func (w *Watcher) Status() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return Status{
		StartedAt:       w.startedAt,
		LastPollAt:      w.lastPollAt,
		PollIntervalSec: int(w.cfg.Interval / time.Second),
		PollCount:       w.pollCount,
		Summary:         w.snapshot,
		LastError:       w.lastError,
		EventCount:      len(w.events),
		SubscriberCount: len(w.subs),
	}
}
