package services

import (
	"context"
	"errors"

	"github.com/npapon/jpa-project/internal/domain"
	"github.com/npapon/jpa-project/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users UserStore
}

// Login checks the credentials. Store faults are returned as-is so callers can
// tell them apart from ErrBadCreds.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(ctx, validate.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return u, nil
}
