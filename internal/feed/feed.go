// Package feed keeps the live set of active orders: the store snapshot merged
// with orders that only exist locally, pushed to subscribers on every change.
package feed

import (
	"context"
	"sort"
	"sync"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"go.uber.org/zap"
)

type Origin int

const (
	// Persisted orders were read back from the store.
	Persisted Origin = iota
	// Local orders have not been confirmed by the store yet, or there is no store.
	Local
)

func (o Origin) String() string {
	if o == Local {
		return "local"
	}
	return "persisted"
}

type Entry struct {
	Order  model.Order
	Origin Origin
}

func (e Entry) IsLocal() bool {
	return e.Origin == Local
}

// Source returns the active orders held by the store.
type Source interface {
	FindActive(ctx context.Context) ([]model.Order, error)
}

type Feed struct {
	source Source
	logger logger.ZapLogger

	mu        sync.RWMutex
	persisted map[string]model.Order
	local     map[string]model.Order

	subMu   sync.Mutex
	subs    map[int]func([]Entry)
	nextSub int
}

// New creates a feed. A nil source keeps every order local.
func New(source Source, log logger.ZapLogger) *Feed {
	return &Feed{
		source:    source,
		logger:    log,
		persisted: make(map[string]model.Order),
		local:     make(map[string]model.Order),
		subs:      make(map[int]func([]Entry)),
	}
}

// HasStore reports whether orders are backed by a durable store.
func (f *Feed) HasStore() bool {
	return f.source != nil
}

// Run loads the initial snapshot and reloads on every change notification
// until ctx is done or changes is closed.
func (f *Feed) Run(ctx context.Context, changes <-chan string) error {
	if err := f.Reload(ctx); err != nil {
		f.logger.Error("Initial order feed load failed", zap.Error(err))
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case id, ok := <-changes:
			if !ok {
				return nil
			}
			f.logger.Debug("Order change notification", zap.String("order_id", id))
			if err := f.Reload(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				f.logger.Error("Order feed reload failed", zap.Error(err))
			}
		}
	}
}

// Reload replaces the persisted set with the store snapshot and drops local
// entries the store now confirms. The previous state is kept on error.
func (f *Feed) Reload(ctx context.Context) error {
	if f.source == nil {
		return nil
	}
	orders, err := f.source.FindActive(ctx)
	if err != nil {
		return err
	}

	persisted := make(map[string]model.Order, len(orders))
	for _, o := range orders {
		persisted[o.ID] = o
	}

	f.mu.Lock()
	f.persisted = persisted
	for id := range f.local {
		if _, ok := persisted[id]; ok {
			delete(f.local, id)
		}
	}
	f.mu.Unlock()

	f.publish()
	return nil
}

// AddLocal inserts or replaces an unconfirmed order.
func (f *Feed) AddLocal(o model.Order) {
	f.mu.Lock()
	f.local[o.ID] = clone(o)
	f.mu.Unlock()
	f.publish()
}

func (f *Feed) DropLocal(id string) {
	f.mu.Lock()
	_, ok := f.local[id]
	delete(f.local, id)
	f.mu.Unlock()
	if ok {
		f.publish()
	}
}

// ApplyPersisted records a confirmed write ahead of the next reload.
// Orders leaving the active set are removed.
func (f *Feed) ApplyPersisted(o model.Order) {
	f.mu.Lock()
	delete(f.local, o.ID)
	if o.Status.IsTerminal() {
		delete(f.persisted, o.ID)
	} else {
		f.persisted[o.ID] = clone(o)
	}
	f.mu.Unlock()
	f.publish()
}

// ApplyLocal updates an unconfirmed order; terminal orders leave the set.
func (f *Feed) ApplyLocal(o model.Order) {
	f.mu.Lock()
	if o.Status.IsTerminal() {
		delete(f.local, o.ID)
	} else {
		f.local[o.ID] = clone(o)
	}
	f.mu.Unlock()
	f.publish()
}

func (f *Feed) Get(id string) (Entry, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if o, ok := f.persisted[id]; ok {
		return Entry{Order: clone(o), Origin: Persisted}, true
	}
	if o, ok := f.local[id]; ok {
		return Entry{Order: clone(o), Origin: Local}, true
	}
	return Entry{}, false
}

// Snapshot returns the merged live set ordered by creation time.
func (f *Feed) Snapshot() []Entry {
	f.mu.RLock()
	entries := make([]Entry, 0, len(f.persisted)+len(f.local))
	for _, o := range f.persisted {
		entries = append(entries, Entry{Order: o, Origin: Persisted})
	}
	for id, o := range f.local {
		if _, ok := f.persisted[id]; ok {
			continue
		}
		entries = append(entries, Entry{Order: o, Origin: Local})
	}
	f.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Order, entries[j].Order
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return entries
}

// Subscribe calls cb with the current set and again after every change until
// the returned function is called. cb receives the whole set, not a diff.
func (f *Feed) Subscribe(cb func([]Entry)) (unsubscribe func()) {
	f.subMu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = cb
	f.subMu.Unlock()

	cb(f.Snapshot())

	var once sync.Once
	return func() {
		once.Do(func() {
			f.subMu.Lock()
			delete(f.subs, id)
			f.subMu.Unlock()
		})
	}
}

// Watch delivers the latest set on the returned channel, dropping
// intermediate sets a slow reader missed. The channel closes with ctx.
func (f *Feed) Watch(ctx context.Context) <-chan []Entry {
	out := make(chan []Entry)
	signal := make(chan struct{}, 1)

	var mu sync.Mutex
	var latest []Entry
	unsubscribe := f.Subscribe(func(entries []Entry) {
		mu.Lock()
		latest = entries
		mu.Unlock()
		select {
		case signal <- struct{}{}:
		default:
		}
	})

	go func() {
		defer close(out)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				mu.Lock()
				entries := latest
				mu.Unlock()
				select {
				case out <- entries:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func (f *Feed) publish() {
	f.subMu.Lock()
	callbacks := make([]func([]Entry), 0, len(f.subs))
	for _, cb := range f.subs {
		callbacks = append(callbacks, cb)
	}
	f.subMu.Unlock()
	if len(callbacks) == 0 {
		return
	}

	entries := f.Snapshot()
	for _, cb := range callbacks {
		cb(entries)
	}
}

// clone detaches the item slice so callers can edit an order without touching the feed.
func clone(o model.Order) model.Order {
	o.Items = append(model.OrderItems(nil), o.Items...)
	return o
}
