// Package ledger owns the collection of savings goals and the mutations that
// keep their balances consistent with their transaction history.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/savr/internal/apperrors"
	"github.com/theirongolddev/savr/internal/logging"
	"github.com/theirongolddev/savr/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Storage loads and saves the whole goals document.
type Storage interface {
	LoadDocument(ctx context.Context) ([]model.SavingsGoal, error)
	SaveDocument(ctx context.Context, goals []model.SavingsGoal) error
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock replaces the wall clock used for creation and transaction times.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDFunc replaces the id generator for goals and transactions.
func WithIDFunc(fn func() string) Option {
	return func(l *Ledger) { l.newID = fn }
}

// WithLogger sets the logger used for mutation logs.
func WithLogger(logger *logrus.Logger) Option {
	return func(l *Ledger) { l.log = logger }
}

// WithEventBuffer sets how many recent events Recent retains.
func WithEventBuffer(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.eventsBuffer = n
		}
	}
}

// Ledger is the authoritative in-memory goal collection. Mutations run one at
// a time and persist the full collection before they become visible; reads
// return copies and may run concurrently with a write.
type Ledger struct {
	storage Storage
	now     func() time.Time
	newID   func() string
	log     *logrus.Logger

	writeMu sync.Mutex // held across compute + SaveDocument

	mu           sync.RWMutex
	goals        []model.SavingsGoal
	revision     int64
	eventsBuffer int
	nextEventID  int64
	events       []Event
	nextSubID    int
	subs         map[int]chan Event
}

// Open loads the goals document from storage and returns a ready Ledger.
func Open(ctx context.Context, storage Storage, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		storage:      storage,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
		log:          logging.Discard(),
		eventsBuffer: 100,
		subs:         make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(l)
	}

	goals, err := storage.LoadDocument(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	l.goals = l.normalize(goals)

	return l, nil
}

// Reload replaces the in-memory collection with the stored document, for
// when another process has written it. Subscribers receive an
// EventReloaded. On a load error the current state is kept.
func (l *Ledger) Reload(ctx context.Context) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	goals, err := l.storage.LoadDocument(ctx)
	if err != nil {
		l.log.WithError(err).Error("Ledger.Reload.Error")
		return fmt.Errorf("reloading goals: %w", err)
	}
	goals = l.normalize(goals)

	l.mu.Lock()
	l.goals = goals
	l.revision++
	l.nextEventID++
	ev := Event{
		ID:        l.nextEventID,
		Type:      EventReloaded,
		Revision:  l.revision,
		Timestamp: l.now(),
	}
	l.publishLocked(ev)
	l.mu.Unlock()

	l.log.WithFields(logrus.Fields{
		"goals":    len(goals),
		"revision": ev.Revision,
	}).Info("Ledger.Reload.Complete")
	return nil
}

// normalize fills nil transaction lists and warns when a stored balance
// disagrees with its replayed history. Stored balances are kept as-is.
func (l *Ledger) normalize(goals []model.SavingsGoal) []model.SavingsGoal {
	for i := range goals {
		if goals[i].Transactions == nil {
			goals[i].Transactions = []model.Transaction{}
		}
		if want := Balance(goals[i].Transactions); !want.Equal(goals[i].CurrentAmount) {
			l.log.WithFields(logrus.Fields{
				"goal_id": goals[i].ID,
				"stored":  goals[i].CurrentAmount.String(),
				"replay":  want.String(),
			}).Warn("Ledger.Load.BalanceMismatch")
		}
	}
	return goals
}

// Apply returns the balance after txn is recorded against current. The
// result is floored at zero: an oversized withdrawal empties the goal.
func Apply(current decimal.Decimal, txn model.Transaction) decimal.Decimal {
	return decimal.Max(decimal.Zero, current.Add(txn.Signed()))
}

// Balance replays txns from zero in order.
func Balance(txns []model.Transaction) decimal.Decimal {
	bal := decimal.Zero
	for _, t := range txns {
		bal = Apply(bal, t)
	}
	return bal
}

// Goals returns a copy of every goal in stored order.
func (l *Ledger) Goals() []model.SavingsGoal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneAll(l.goals)
}

// Goal returns the goal with the given id.
func (l *Ledger) Goal(id string) (model.SavingsGoal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := indexOf(l.goals, id); i >= 0 {
		return l.goals[i].Clone(), nil
	}
	return model.SavingsGoal{}, fmt.Errorf("goal %s: %w", id, apperrors.ErrNotFound)
}

// Find resolves a full id or a unique id prefix.
func (l *Ledger) Find(idOrPrefix string) (model.SavingsGoal, error) {
	if idOrPrefix == "" {
		return model.SavingsGoal{}, fmt.Errorf("empty goal id: %w", apperrors.ErrNotFound)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := indexOf(l.goals, idOrPrefix); i >= 0 {
		return l.goals[i].Clone(), nil
	}

	match := -1
	for i, g := range l.goals {
		if strings.HasPrefix(g.ID, idOrPrefix) {
			if match >= 0 {
				return model.SavingsGoal{}, fmt.Errorf("goal %s: %w", idOrPrefix, apperrors.ErrAmbiguous)
			}
			match = i
		}
	}
	if match < 0 {
		return model.SavingsGoal{}, fmt.Errorf("goal %s: %w", idOrPrefix, apperrors.ErrNotFound)
	}
	return l.goals[match].Clone(), nil
}

// Revision counts committed writes since Open.
func (l *Ledger) Revision() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}

// AddGoal creates a goal with a zero balance and no transactions.
func (l *Ledger) AddGoal(ctx context.Context, d model.GoalDraft) (model.SavingsGoal, error) {
	g := model.SavingsGoal{
		ID:            l.newID(),
		Name:          d.Name,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    d.TargetDate,
		Currency:      d.Currency.OrDefault(),
		ImageURI:      d.ImageURI,
		CreatedAt:     l.now(),
		Transactions:  []model.Transaction{},
	}

	err := l.commit(ctx, "AddGoal", EventGoalAdded, g.ID, func(goals []model.SavingsGoal) ([]model.SavingsGoal, error) {
		if indexOf(goals, g.ID) >= 0 {
			return nil, fmt.Errorf("duplicate goal id %s", g.ID)
		}
		return append(goals, g), nil
	})
	if err != nil {
		return model.SavingsGoal{}, err
	}
	return g.Clone(), nil
}

// UpdateGoal replaces the supplied fields of the goal with the given id.
// Balance and transactions cannot be changed here.
func (l *Ledger) UpdateGoal(ctx context.Context, id string, u model.GoalUpdate) (model.SavingsGoal, error) {
	var updated model.SavingsGoal
	err := l.commit(ctx, "UpdateGoal", EventGoalUpdated, id, func(goals []model.SavingsGoal) ([]model.SavingsGoal, error) {
		i := indexOf(goals, id)
		if i < 0 {
			return nil, fmt.Errorf("updating goal %s: %w", id, apperrors.ErrNotFound)
		}
		goals[i] = u.Apply(goals[i])
		updated = goals[i]
		return goals, nil
	})
	if err != nil {
		return model.SavingsGoal{}, err
	}
	return updated.Clone(), nil
}

// DeleteGoal removes the goal and all of its transactions.
func (l *Ledger) DeleteGoal(ctx context.Context, id string) error {
	return l.commit(ctx, "DeleteGoal", EventGoalDeleted, id, func(goals []model.SavingsGoal) ([]model.SavingsGoal, error) {
		i := indexOf(goals, id)
		if i < 0 {
			return nil, fmt.Errorf("deleting goal %s: %w", id, apperrors.ErrNotFound)
		}
		return append(goals[:i], goals[i+1:]...), nil
	})
}

// AddTransaction appends a transaction to the goal and adjusts its balance.
// A withdrawal larger than the balance leaves the goal at zero.
func (l *Ledger) AddTransaction(ctx context.Context, goalID string, d model.TransactionDraft) (model.Transaction, error) {
	txn := model.Transaction{
		ID:          l.newID(),
		GoalID:      goalID,
		Amount:      d.Amount,
		Type:        d.Type,
		Description: d.Description,
		Date:        d.Date,
	}
	if txn.Date.IsZero() {
		txn.Date = l.now()
	}

	err := l.commit(ctx, "AddTransaction", EventTransactionAdded, goalID, func(goals []model.SavingsGoal) ([]model.SavingsGoal, error) {
		i := indexOf(goals, goalID)
		if i < 0 {
			return nil, fmt.Errorf("adding transaction to goal %s: %w", goalID, apperrors.ErrNotFound)
		}
		g := goals[i]
		for _, existing := range g.Transactions {
			if existing.ID == txn.ID {
				return nil, fmt.Errorf("duplicate transaction id %s", txn.ID)
			}
		}
		g.CurrentAmount = Apply(g.CurrentAmount, txn)
		g.Transactions = append(g.Transactions, txn)
		goals[i] = g
		return goals, nil
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

// commit runs mutate on a private copy of the collection, persists the
// result and only then makes it visible. A failed write leaves the ledger at
// its last persisted state.
func (l *Ledger) commit(
	ctx context.Context,
	op string,
	evType EventType,
	goalID string,
	mutate func([]model.SavingsGoal) ([]model.SavingsGoal, error),
) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	ld := logging.NewLogData(l.log)
	ld.AddData("goal_id", goalID)

	l.mu.RLock()
	working := cloneAll(l.goals)
	l.mu.RUnlock()

	next, err := mutate(working)
	if err != nil {
		ld.Log().WithError(err).Debugf("Ledger.%s.Rejected", op)
		return err
	}

	endTimer := ld.AddTiming("persist")
	err = l.storage.SaveDocument(ctx, next)
	endTimer()
	if err != nil {
		ld.Log().WithError(err).Errorf("Ledger.%s.Error", op)
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrPersistence, err)
	}

	l.mu.Lock()
	l.goals = next
	l.revision++
	l.nextEventID++
	ev := Event{
		ID:        l.nextEventID,
		Type:      evType,
		GoalID:    goalID,
		Revision:  l.revision,
		Timestamp: l.now(),
	}
	l.publishLocked(ev)
	l.mu.Unlock()

	ld.AddData("revision", ev.Revision)
	ld.Log().Infof("Ledger.%s.Complete", op)
	return nil
}

func indexOf(goals []model.SavingsGoal, id string) int {
	for i, g := range goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(goals []model.SavingsGoal) []model.SavingsGoal {
	out := make([]model.SavingsGoal, len(goals))
	for i, g := range goals {
		out[i] = g.Clone()
	}
	return out
}
