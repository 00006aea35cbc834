package dbx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openKV(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dbx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO kv(key, value) VALUES ('token', 'old')`)
	require.NoError(t, err)
	return db
}

func valueOf(t *testing.T, db *sql.DB) string {
	t.Helper()
	var v string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = 'token'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return ""
	}
	require.NoError(t, err)
	return v
}

// replace deletes and re-inserts, the way the credential store overwrites.
func replace(value string, fail error) func(ctx context.Context, tx DBTX) error {
	return func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO kv(key, value) VALUES ('token', ?)`, value); err != nil {
			return err
		}
		return fail
	}
}

func TestWithTx_Commit(t *testing.T) {
	db := openKV(t)

	require.NoError(t, WithTx(context.Background(), db, nil, replace("new", nil)))
	require.Equal(t, "new", valueOf(t, db))
}

func TestWithTx_ErrorKeepsPreviousValue(t *testing.T) {
	db := openKV(t)

	err := WithTx(context.Background(), db, nil, replace("new", errors.New("boom")))
	require.EqualError(t, err, "boom")
	require.Equal(t, "old", valueOf(t, db))
}

func TestWithTx_PanicKeepsPreviousValue(t *testing.T) {
	db := openKV(t)

	defer func() {
		require.Equal(t, "kaput", recover())
		require.Equal(t, "old", valueOf(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, replace("new", nil)(ctx, tx))
		panic("kaput")
	})
}

func TestWithTx_BeginFails(t *testing.T) {
	db := openKV(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.False(t, called)
}
