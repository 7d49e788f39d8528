package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	assert.Equal(t, "2026-10-15", DateKey(time.Date(2026, 10, 16, 5, 0, 0, 0, loc)))
}

func TestSeedStablePerDay(t *testing.T) {
	morning := time.Date(2026, 10, 16, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC)
	tomorrow := morning.Add(24 * time.Hour)

	assert.Equal(t, Seed(morning, "salt"), Seed(evening, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(tomorrow, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(morning, "pepper"))
	assert.GreaterOrEqual(t, Seed(morning, "salt"), int64(0))
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "data", "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestLeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	results := []Result{
		{SessionID: "a", Date: "2026-10-16", Target: 3, Attempts: 9, ElapsedMs: 5000},
		{SessionID: "b", Date: "2026-10-16", Target: 3, Attempts: 4, ElapsedMs: 2000},
		{SessionID: "c", Date: "2026-10-16", Target: 3, Attempts: 3, ElapsedMs: 2000},
		{SessionID: "d", Date: "2026-10-15", Target: 3, Attempts: 1, ElapsedMs: 10},
	}
	for _, r := range results {
		require.NoError(t, s.InsertResult(ctx, r))
	}

	rows, err := s.Leaderboard(ctx, "2026-10-16", 0)
	require.NoError(t, err)
	assert.Equal(t, []LBRow{
		{Rank: 1, Attempts: 3, ElapsedMs: 2000},
		{Rank: 2, Attempts: 4, ElapsedMs: 2000},
		{Rank: 3, Attempts: 9, ElapsedMs: 5000},
	}, rows)

	rows, err = s.Leaderboard(ctx, "2026-10-16", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestInsertResultIgnoresDuplicates(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	r := Result{SessionID: "a", Date: "2026-10-16", Target: 3, Attempts: 5, ElapsedMs: 100}
	require.NoError(t, s.InsertResult(ctx, r))
	r.ElapsedMs = 1
	require.NoError(t, s.InsertResult(ctx, r))

	rows, err := s.Leaderboard(ctx, "2026-10-16", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 100, rows[0].ElapsedMs)
}
