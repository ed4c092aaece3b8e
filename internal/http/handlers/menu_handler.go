package handlers

import (
	"github.com/npapon/jpa-project/internal/log"
	"github.com/npapon/jpa-project/internal/services"

	"github.com/gofiber/fiber/v2"
)

type MenuHandler struct {
	Menu *services.MenuService
}

// GET /
func (h *MenuHandler) Home(c *fiber.Ctx) error {
	items, err := h.Menu.Active(c.UserContext())
	if err != nil {
		log.Error(c, "menu.list.error", err, nil)
		return c.Status(storeStatus(err)).Render("notfound", fiber.Map{"Message": "The menu is unavailable right now."})
	}
	return render(c, "home", fiber.Map{"Menu": items})
}

// GET /api/v1/menu
func (h *MenuHandler) List(c *fiber.Ctx) error {
	items, err := h.Menu.Active(c.UserContext())
	if err != nil {
		log.Error(c, "menu.list.error", err, nil)
		return c.Status(storeStatus(err)).JSON(fiber.Map{"error": "menu unavailable"})
	}
	return c.JSON(fiber.Map{"items": items})
}
