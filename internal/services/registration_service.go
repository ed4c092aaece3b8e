package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/npapon/jpa-project/internal/domain"
	"github.com/npapon/jpa-project/internal/repos"
	"github.com/npapon/jpa-project/internal/validate"
)

// UserStore is the persistence the registration and login flows need.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Reason int

const (
	Registered Reason = iota
	Invalid
	Conflict
	StoreFault
	// InternalFault is a failure before the store was contacted, such as hashing.
	InternalFault
)

func (r Reason) String() string {
	switch r {
	case Registered:
		return "registered"
	case Invalid:
		return "invalid"
	case Conflict:
		return "conflict"
	case InternalFault:
		return "internal_fault"
	default:
		return "store_fault"
	}
}

// RegistrationOutcome is the result of one registration attempt. User is set
// only when Reason is Registered; Form always holds the submission minus secrets.
type RegistrationOutcome struct {
	User   *domain.User
	Form   domain.Registration
	Errors map[string]string
	Reason Reason
	Err    error
}

func (o RegistrationOutcome) Succeeded() bool { return o.Reason == Registered }

type RegistrationService struct {
	Users      UserStore
	BcryptCost int
}

func NewRegistrationService(users UserStore, bcryptCost int) *RegistrationService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &RegistrationService{Users: users, BcryptCost: bcryptCost}
}

// Register validates the submission and persists a new user. Validation
// failures never reach the store. Nothing is retried.
func (s *RegistrationService) Register(ctx context.Context, form domain.Registration) RegistrationOutcome {
	form.Email = validate.NormalizeEmail(form.Email)
	form.Name = strings.TrimSpace(form.Name)
	out := RegistrationOutcome{Form: form.Redisplay()}

	if errs := validate.Struct(form); errs != nil {
		out.Reason = Invalid
		out.Errors = errs
		return out
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.BcryptCost)
	if err != nil {
		out.Reason = InternalFault
		out.Err = err
		out.Errors = map[string]string{"general": "Registration failed. Please try again."}
		return out
	}

	u := &domain.User{
		ID:        uuid.NewString(),
		Email:     form.Email,
		Name:      form.Name,
		Hash:      string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		out.Err = err
		if errors.Is(err, repos.ErrConflict) {
			out.Reason = Conflict
			out.Errors = map[string]string{"email": "This email address is already registered."}
		} else {
			out.Reason = StoreFault
			out.Errors = map[string]string{"general": "Registration failed. Please try again."}
		}
		return out
	}

	out.Reason = Registered
	out.User = u
	return out
}
