package repos

import (
	"context"

	"github.com/npapon/jpa-project/internal/domain"

	"github.com/jmoiron/sqlx"
)

type MenuRepo struct{ db *sqlx.DB }

func NewMenuRepo(db *sqlx.DB) *MenuRepo { return &MenuRepo{db: db} }

// ListActive returns the active entries by ascending sort order. No rows is
// an empty, non-nil slice.
func (r *MenuRepo) ListActive(ctx context.Context) ([]domain.MenuItem, error) {
	out := []domain.MenuItem{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT id, label, href, sort_order, active
  FROM menu
  WHERE active = TRUE
  ORDER BY sort_order ASC, id ASC
`)
	if err != nil {
		return nil, translate("menu.list_active", err)
	}
	return out, nil
}
