package handlers

import (
	"errors"

	"github.com/npapon/jpa-project/internal/log"
	"github.com/npapon/jpa-project/internal/services"
	"github.com/npapon/jpa-project/internal/session"
	"github.com/npapon/jpa-project/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth     *services.AuthService
	Sessions *session.Manager
}

// GET /login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	data := fiber.Map{"Err": ""}
	// a fresh registration lands here with the new user already in session
	if u, err := h.Sessions.User(c); err == nil && u != nil {
		data["Email"] = u.Email
		data["Welcome"] = u.Name
	}
	return render(c, "login", data)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	fail := func(status int, msg string) error {
		c.Status(status)
		return render(c, "login", fiber.Map{"Err": msg, "Email": email})
	}

	if !validate.Email(email) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return fail(fiber.StatusUnauthorized, "Invalid email or password")
	}
	if pass == "" {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "empty_password"})
		return fail(fiber.StatusUnauthorized, "Invalid email or password")
	}

	u, err := h.Auth.Login(c.UserContext(), email, pass)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		log.Error(c, "auth.login.error", err, map[string]any{"email": email})
		return fail(storeStatus(err), "Sign-in is unavailable right now. Please try again.")
	}

	if err := h.Sessions.Login(c, u.Session()); err != nil {
		return err
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": u.Email, "user_id": u.ID})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if err := h.Sessions.Destroy(c); err != nil {
		return err
	}
	log.Audit(c, "auth.logout", map[string]any{"user_id": uid})
	return c.Redirect("/")
}
