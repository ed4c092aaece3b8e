package services

import (
	"context"

	"github.com/npapon/jpa-project/internal/domain"
)

type MenuStore interface {
	ListActive(ctx context.Context) ([]domain.MenuItem, error)
}

type MenuService struct {
	Menu MenuStore
}

func NewMenuService(menu MenuStore) *MenuService {
	return &MenuService{Menu: menu}
}

func (s *MenuService) Active(ctx context.Context) ([]domain.MenuItem, error) {
	return s.Menu.ListActive(ctx)
}
