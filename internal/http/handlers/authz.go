package handlers

import (
	"github.com/npapon/jpa-project/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AttachUser puts the session user, if any, into Locals for templates and logs.
func AttachUser(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u, err := sessions.User(c); err == nil && u != nil {
			c.Locals("user", u)
			c.Locals("user_id", u.ID)
		}
		return c.Next()
	}
}

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := sessions.User(c)
		if err != nil {
			return err
		}
		if u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		c.Locals("user_id", u.ID)
		return c.Next()
	}
}
