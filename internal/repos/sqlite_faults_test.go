package repos_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/npapon/jpa-project/internal/repos"
)

// A writer that cannot get the database lock reports Unavailable.
func TestUserRepo_LockedDatabaseIsUnavailable(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "locked.db") + "?_pragma=busy_timeout(0)"

	db, err := repos.OpenDB(repos.DriverSQLite, dsn, bcrypt.MinCost)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	other, err := sqlx.Open(repos.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })
	tx, err := other.Beginx()
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })
	_, err = tx.Exec(`INSERT INTO users(id,email,name,password_hash,created_at) VALUES('u-x','x@example.com','Xavier','h',CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	err = repos.NewUserRepo(db).Create(ctx, newUser("u-ada", "ada@example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, repos.ErrUnavailable)
	assert.Equal(t, repos.KindUnavailable, repos.KindOf(err))

	require.NoError(t, tx.Rollback())
	assert.NoError(t, repos.NewUserRepo(db).Create(ctx, newUser("u-ada", "ada@example.com")), "works once the lock is released")
}

func TestOpenDB_UnopenableFileIsUnavailable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "dir", "app.db")

	_, err := repos.OpenDB(repos.DriverSQLite, dsn, bcrypt.MinCost)
	require.Error(t, err)
	assert.ErrorIs(t, err, repos.ErrUnavailable)
}
