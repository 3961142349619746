package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/bitecart/internal/common"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", "file:storage_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS session_state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM session_state;
`)
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "token", []byte("tok-1")))

	got, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), got)
}

func TestSQLiteRepository_SetOverwrites(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "token", []byte("old")))
	require.NoError(t, repo.Set(ctx, "token", []byte("new")))

	got, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got)
}

func TestSQLiteRepository_SetMany(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "token", []byte("old")))

	err := repo.SetMany(ctx, map[string][]byte{
		"token": []byte("tok-2"),
		"user":  []byte(`{"id":"u1"}`),
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-2"), got)

	got, err = repo.Get(ctx, "user")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"id":"u1"}`), got)
}

func TestSQLiteRepository_GetMissing(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "last_order", []byte(`{}`)))
	require.NoError(t, repo.Delete(ctx, "last_order"))

	_, err := repo.Get(ctx, "last_order")
	require.ErrorIs(t, err, common.ErrorNotFound)

	// deleting an absent key is not an error
	require.NoError(t, repo.Delete(ctx, "last_order"))
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "token", []byte("t")))
	require.NoError(t, repo.Set(ctx, "user", []byte(`{"id":"u1"}`)))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{"token", "user"} {
		_, err := repo.Get(ctx, key)
		require.ErrorIs(t, err, common.ErrorNotFound, "key %s must be gone", key)
	}
}

func TestOpen_AppliesMigrations(t *testing.T) {
	repo, db, err := Open(context.Background(), t.TempDir()+"/session.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "token", []byte("tok")))

	got, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok"), got)
}
