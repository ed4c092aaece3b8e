package handlers

import (
	"github.com/npapon/jpa-project/internal/log"
	"github.com/npapon/jpa-project/internal/repos"
	"github.com/npapon/jpa-project/internal/session"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	Users    *repos.UserRepo
	Sessions *session.Manager
}

// GET /account (behind RequireUser)
func (h *AccountHandler) Show(c *fiber.Ctx) error {
	id, _ := c.Locals("user_id").(string)
	u, err := h.Users.ByID(c.UserContext(), id)
	if err != nil {
		log.Error(c, "account.load.error", err, nil)
		return c.Status(storeStatus(err)).Render("notfound", fiber.Map{"Message": "Your account is unavailable right now."})
	}
	if u == nil {
		// session outlived the account
		_ = h.Sessions.Destroy(c)
		return c.Redirect("/login")
	}
	return render(c, "account", fiber.Map{"Account": u})
}
