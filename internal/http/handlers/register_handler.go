package handlers

import (
	"github.com/npapon/jpa-project/internal/domain"
	"github.com/npapon/jpa-project/internal/log"
	"github.com/npapon/jpa-project/internal/services"
	"github.com/npapon/jpa-project/internal/session"

	"github.com/gofiber/fiber/v2"
)

type RegisterHandler struct {
	Registration *services.RegistrationService
	Sessions     *session.Manager
}

// GET /register
func (h *RegisterHandler) Form(c *fiber.Ctx) error {
	data := fiber.Map{"Form": domain.Registration{}, "Errors": map[string]string{}}
	failed, err := h.Sessions.PopRegistration(c)
	if err != nil {
		return err
	}
	if failed != nil {
		data["Form"] = failed.Form
		data["Errors"] = failed.Errors
	}
	return render(c, "register", data)
}

// POST /register
func (h *RegisterHandler) Submit(c *fiber.Ctx) error {
	var form domain.Registration
	if err := c.BodyParser(&form); err != nil {
		log.Security(c, "auth.register.bad_body", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Invalid form submission."})
	}

	out := h.Registration.Register(c.UserContext(), form)
	if out.Succeeded() {
		if err := h.Sessions.SetUser(c, out.User.Session()); err != nil {
			return err
		}
		log.Audit(c, "auth.register.success", map[string]any{"email": out.User.Email, "user_id": out.User.ID})
		return c.Redirect("/login")
	}

	fields := map[string]any{"email": out.Form.Email, "reason": out.Reason.String()}
	if out.Reason == services.StoreFault || out.Reason == services.InternalFault {
		log.Error(c, "auth.register.error", out.Err, fields)
	} else {
		log.Security(c, "auth.register.fail", fields)
	}
	if err := h.Sessions.FlashRegistration(c, session.FailedRegistration{Form: out.Form, Errors: out.Errors}); err != nil {
		return err
	}
	return c.Redirect("/register")
}
