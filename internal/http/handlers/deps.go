package handlers

import (
	"github.com/npapon/jpa-project/internal/config"
	"github.com/npapon/jpa-project/internal/repos"
	"github.com/npapon/jpa-project/internal/services"
	"github.com/npapon/jpa-project/internal/session"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	MenuHandler     *MenuHandler
	RegisterHandler *RegisterHandler
	AuthHandler     *AuthHandler
	AccountHandler  *AccountHandler
	HealthHandler   *HealthHandler
	Sessions        *session.Manager
}

func NewDeps(db *sqlx.DB, cfg config.Config, sessions *session.Manager) *Deps {
	userRepo := repos.NewUserRepo(db)
	menuRepo := repos.NewMenuRepo(db)

	registrationSvc := services.NewRegistrationService(userRepo, cfg.BcryptCost)
	authSvc := &services.AuthService{Users: userRepo}
	menuSvc := services.NewMenuService(menuRepo)

	return &Deps{
		MenuHandler:     &MenuHandler{Menu: menuSvc},
		RegisterHandler: &RegisterHandler{Registration: registrationSvc, Sessions: sessions},
		AuthHandler:     &AuthHandler{Auth: authSvc, Sessions: sessions},
		AccountHandler:  &AccountHandler{Users: userRepo, Sessions: sessions},
		HealthHandler:   &HealthHandler{DB: db},
		Sessions:        sessions,
	}
}
