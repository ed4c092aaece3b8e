package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/npapon/jpa-project/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts u. A duplicate email surfaces as ErrConflict; the unique
// index is the only duplicate check.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		INSERT INTO users(id,email,name,password_hash,created_at)
		VALUES(?,?,?,?,?)`), u.ID, u.Email, u.Name, u.Hash, u.CreatedAt)
	return translate("users.create", err)
}

// ByEmail returns the user with exactly this email, or nil when there is none.
func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`
		SELECT id,email,name,password_hash,created_at
		FROM users
		WHERE email=?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("users.by_email", err)
	}
	return &u, nil
}

// ByID is used to refresh the account page from the session snapshot.
func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`
		SELECT id,email,name,password_hash,created_at
		FROM users
		WHERE id=?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("users.by_id", err)
	}
	return &u, nil
}
