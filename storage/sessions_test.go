package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"file-chat/utils"

	"github.com/stretchr/testify/require"
)

func exerciseSessionStore(t *testing.T, store SessionStore) {
	t.Helper()
	req := require.New(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "unknown")
	req.NoError(err)
	req.False(ok)

	req.NoError(store.Set(ctx, "token-1", "alice"))
	username, ok, err := store.Get(ctx, "token-1")
	req.NoError(err)
	req.True(ok)
	req.Equal("alice", username)

	req.NoError(store.Set(ctx, "token-1", "alicia"))
	username, _, err = store.Get(ctx, "token-1")
	req.NoError(err)
	req.Equal("alicia", username)

	req.NoError(store.Set(ctx, "token-2", "alice"))
	req.NoError(store.Clear(ctx, "token-1"))

	_, ok, err = store.Get(ctx, "token-1")
	req.NoError(err)
	req.False(ok)

	username, ok, err = store.Get(ctx, "token-2")
	req.NoError(err)
	req.True(ok)
	req.Equal("alice", username)

	req.NoError(store.Clear(ctx, "never-set"))

	req.ErrorIs(store.Set(ctx, "", "alice"), ErrEmptyToken)
	req.ErrorIs(store.Set(ctx, "token-3", ""), ErrEmptyUsername)
}

func Test_Memory_Sessions(t *testing.T) {
	exerciseSessionStore(t, NewMemorySessions(time.Hour))
}

func Test_Memory_Sessions_Expire(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := NewMemorySessions(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	req.NoError(store.Set(ctx, "old", "alice"))
	now = now.Add(30 * time.Second)
	req.NoError(store.Set(ctx, "new", "bob"))
	now = now.Add(45 * time.Second)

	_, ok, err := store.Get(ctx, "old")
	req.NoError(err)
	req.False(ok)

	removed, err := store.DeleteExpired(ctx)
	req.NoError(err)
	req.Equal(1, removed)

	username, ok, err := store.Get(ctx, "new")
	req.NoError(err)
	req.True(ok)
	req.Equal("bob", username)
}

func Test_Badger_Sessions(t *testing.T) {
	store, err := OpenBadgerSessions(t.TempDir(), time.Hour)
	require.NoError(t, err)
	defer store.Close()

	exerciseSessionStore(t, store)
}

func Test_Badger_Sessions_Survive_Reopen(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	ctx := context.Background()

	store, err := OpenBadgerSessions(dir, time.Hour)
	req.NoError(err)
	req.NoError(store.Set(ctx, "token", "carol"))
	req.NoError(store.Close())

	store, err = OpenBadgerSessions(dir, time.Hour)
	req.NoError(err)
	defer store.Close()

	username, ok, err := store.Get(ctx, "token")
	req.NoError(err)
	req.True(ok)
	req.Equal("carol", username)
}

func Test_Badger_Sessions_Empty_Token(t *testing.T) {
	req := require.New(t)
	store, err := OpenBadgerSessions(t.TempDir(), time.Hour)
	req.NoError(err)
	defer store.Close()

	_, ok, err := store.Get(context.Background(), "")
	req.NoError(err)
	req.False(ok)
}

func Test_Postgres_Sessions(t *testing.T) {
	dsn := os.Getenv("CHAT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("CHAT_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := utils.SetupDatabase(ctx, dsn, slog.Default())
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "DELETE FROM chat_sessions WHERE token LIKE 'token-%'")
	require.NoError(t, err)

	store := NewPostgresSessions(db, time.Hour)
	defer store.Close()

	exerciseSessionStore(t, store)

	removed, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, removed, 0)
}
