// internal/store/memory.go
//
// In-memory session store for jumble games.
//
// Characteristics:
//   - Entries are keyed by the opaque session id carried in the player's cookie.
//   - Concurrency-safe via a mutex; Update runs a read-modify-write of one
//     entry while holding it, so two requests on the same session never race.
//   - Entries not read or written for longer than the TTL are treated as
//     missing and removed by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/robalobadob/vocab/internal/game"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Entry is what the server keeps per session id: the game record plus the
// bookkeeping needed to report results.
type Entry struct {
	Session   game.Session
	Daily     string    // date key when the round is the daily puzzle
	StartedAt time.Time // when the round started
	Attempts  int       // attempts checked this round
	Recorded  bool      // result already written
}

// Store defines the persistence interface for sessions.
type Store interface {
	// Save creates or replaces the entry for id.
	Save(ctx context.Context, id string, e Entry) error

	// Get returns a copy of the entry for id, or ErrNotFound.
	Get(ctx context.Context, id string) (Entry, error)

	// Update loads the entry for id, passes it to fn and stores the result
	// unless fn fails. It returns ErrNotFound for unknown ids.
	Update(ctx context.Context, id string, fn func(Entry) (Entry, error)) (Entry, error)
}

type item struct {
	entry   Entry
	touched time.Time
}

// Memory is a map-based Store with idle expiry.
type Memory struct {
	mu    sync.Mutex
	items map[string]item
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore constructs an in-memory Store. A ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *Memory {
	return &Memory{items: make(map[string]item), ttl: ttl, now: time.Now}
}

// Save adds or replaces the entry.
func (m *Memory) Save(ctx context.Context, id string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = item{entry: clone(e), touched: m.now()}
	return nil
}

// Get looks up an entry by id. A read counts as activity and resets the
// idle timer.
func (m *Memory) Get(ctx context.Context, id string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.live(id)
	if !ok {
		return Entry{}, ErrNotFound
	}
	it.touched = m.now()
	m.items[id] = it
	return clone(it.entry), nil
}

// Update applies fn to the entry under the store lock.
func (m *Memory) Update(ctx context.Context, id string, fn func(Entry) (Entry, error)) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.live(id)
	if !ok {
		return Entry{}, ErrNotFound
	}
	next, err := fn(clone(it.entry))
	if err != nil {
		return Entry{}, err
	}
	m.items[id] = item{entry: clone(next), touched: m.now()}
	return clone(next), nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, it := range m.items {
		if m.expired(it) {
			delete(m.items, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Run sweeps every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

// live returns the item for id if it exists and has not expired.
// Callers hold m.mu.
func (m *Memory) live(id string) (item, bool) {
	it, ok := m.items[id]
	if !ok {
		return item{}, false
	}
	if m.expired(it) {
		delete(m.items, id)
		return item{}, false
	}
	return it, true
}

func (m *Memory) expired(it item) bool {
	return m.ttl > 0 && m.now().Sub(it.touched) > m.ttl
}

// clone copies the matches slice so callers never share backing arrays with
// the stored entry.
func clone(e Entry) Entry {
	e.Session.Matches = slices.Clone(e.Session.Matches)
	return e
}
