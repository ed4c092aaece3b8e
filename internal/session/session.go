package session

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"

	"github.com/npapon/jpa-project/internal/domain"
)

// Keys under which the handlers exchange state between requests.
const (
	KeyUser         = "user"
	KeyRegistration = "registration"
)

const CookieName = "sid"

// FailedRegistration is what a rejected sign-up leaves behind for redisplay.
type FailedRegistration struct {
	Form   domain.Registration
	Errors map[string]string
}

type Config struct {
	RedisAddr    string
	TTL          time.Duration
	CookieSecure bool
}

type Manager struct {
	store *session.Store
}

// New builds a Manager on redis when RedisAddr is set, in process memory otherwise.
func New(cfg Config) (*Manager, error) {
	var storage fiber.Storage
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, err
		}
		storage = NewRedisStorage(client, "jpa:sess:")
	}
	return NewWithStorage(storage, cfg), nil
}

// NewWithStorage uses storage directly; nil means fiber's memory storage.
func NewWithStorage(storage fiber.Storage, cfg Config) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	store := session.New(session.Config{
		Storage:        storage,
		Expiration:     ttl,
		KeyLookup:      "cookie:" + CookieName,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: "Lax",
	})
	store.RegisterType(domain.SessionUser{})
	store.RegisterType(FailedRegistration{})
	return &Manager{store: store}
}

func (m *Manager) SetUser(c *fiber.Ctx, u domain.SessionUser) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Delete(KeyRegistration)
	sess.Set(KeyUser, u)
	return sess.Save()
}

// Login stores u under a fresh session id.
func (m *Manager) Login(c *fiber.Ctx, u domain.SessionUser) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Delete(KeyRegistration)
	sess.Set(KeyUser, u)
	return sess.Save()
}

func (m *Manager) User(c *fiber.Ctx) (*domain.SessionUser, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil, err
	}
	u, ok := sess.Get(KeyUser).(domain.SessionUser)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *Manager) FlashRegistration(c *fiber.Ctx, f FailedRegistration) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(KeyRegistration, f)
	return sess.Save()
}

// PopRegistration returns the stored failed submission, if any, and clears it.
func (m *Manager) PopRegistration(c *fiber.Ctx) (*FailedRegistration, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil, err
	}
	f, ok := sess.Get(KeyRegistration).(FailedRegistration)
	if !ok {
		return nil, nil
	}
	sess.Delete(KeyRegistration)
	if err := sess.Save(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
