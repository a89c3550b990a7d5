package account

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"dashboard/internal/adapters/storage"
	domain "dashboard/internal/domain/account"
)

func TestSQLStore_SaveAndGetByEmail(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()
	ctx := context.Background()
	require.NoError(t, storage.InitDB(ctx, db, storage.DriverSQLite))

	s := NewSQLStore(db)
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	acct := domain.Account{ID: "a1", Name: "User", Email: "user@nextmail.com", PasswordHash: "hash"}
	require.NoError(t, s.Save(ctx, acct))

	got, err := s.GetByEmail(ctx, "user@nextmail.com")
	require.NoError(t, err)
	assert.Equal(t, acct, got)

	_, err = s.GetByEmail(ctx, "nobody@nextmail.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
