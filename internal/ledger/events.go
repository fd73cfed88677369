package ledger

import (
	"sync"
	"time"
)

// EventType names the mutation that produced an Event.
type EventType string

const (
	EventGoalAdded        EventType = "goal_added"
	EventGoalUpdated      EventType = "goal_updated"
	EventGoalDeleted      EventType = "goal_deleted"
	EventTransactionAdded EventType = "transaction_added"
	EventReloaded         EventType = "reloaded"
)

// Event is published after a mutation has been persisted. Subscribers
// should re-read Goals rather than patch their own copies.
type Event struct {
	ID        int64     `json:"id"`
	Type      EventType `json:"type"`
	GoalID    string    `json:"goal_id"`
	Revision  int64     `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

// Subscribe returns a channel that receives every subsequent Event and a
// cancel func that closes it. Slow subscribers miss events instead of
// blocking writers.
func (l *Ledger) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	l.mu.Lock()
	l.nextSubID++
	id := l.nextSubID
	l.subs[id] = ch
	l.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			close(ch)
			l.mu.Unlock()
		})
	}
	return ch, cancel
}

// Recent returns the most recent events, oldest first.
func (l *Ledger) Recent() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	events := make([]Event, len(l.events))
	copy(events, l.events)
	return events
}

// publishLocked must be called with l.mu held for writing.
func (l *Ledger) publishLocked(ev Event) {
	l.events = append(l.events, ev)
	if len(l.events) > l.eventsBuffer {
		l.events = l.events[len(l.events)-l.eventsBuffer:]
	}

	for _, ch := range l.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
