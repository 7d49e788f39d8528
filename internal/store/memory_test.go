package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocab/internal/game"
)

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)

	e := Entry{Session: game.Session{Jumble: "tac", TargetCount: 1, Matches: []string{}}}
	require.NoError(t, m.Save(ctx, "a", e))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, e, got)

	_, err = m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)
	require.NoError(t, m.Save(ctx, "a", Entry{Session: game.Session{Jumble: "tac", TargetCount: 1, Matches: []string{"cat"}}}))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	got.Session.Matches[0] = "dog"

	again, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, again.Session.Matches)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)
	require.NoError(t, m.Save(ctx, "a", Entry{}))

	got, err := m.Update(ctx, "a", func(e Entry) (Entry, error) {
		e.Attempts++
		return e, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Attempts)

	boom := errors.New("boom")
	_, err = m.Update(ctx, "a", func(e Entry) (Entry, error) {
		e.Attempts = 100
		return e, boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Attempts)

	_, err = m.Update(ctx, "missing", func(e Entry) (Entry, error) { return e, nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSerializesWriters(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)
	require.NoError(t, m.Save(ctx, "a", Entry{}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Update(ctx, "a", func(e Entry) (Entry, error) {
				e.Attempts++
				return e, nil
			})
		}()
	}
	wg.Wait()

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 50, got.Attempts)
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(time.Hour)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Save(ctx, "old", Entry{}))
	now = now.Add(30 * time.Minute)
	require.NoError(t, m.Save(ctx, "new", Entry{}))

	now = now.Add(45 * time.Minute)
	_, err := m.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Get(ctx, "new")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 0, m.Len())
}

func TestGetRefreshesIdleTimer(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(time.Hour)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Save(ctx, "a", Entry{}))
	for i := 0; i < 3; i++ {
		now = now.Add(50 * time.Minute)
		_, err := m.Get(ctx, "a")
		require.NoError(t, err, "read %d", i)
	}

	assert.Equal(t, 0, m.Sweep())
	now = now.Add(61 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
}
