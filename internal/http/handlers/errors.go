package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/npapon/jpa-project/internal/log"
	"github.com/npapon/jpa-project/internal/repos"
)

const genericFailure = "Something went wrong. Please try again."

// ErrorHandler renders the error page for anything a handler returns.
// Client errors keep their fiber status and show the standard status text;
// everything else is logged and shown a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := genericFailure

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, repos.ErrUnavailable):
		code = fiber.StatusServiceUnavailable
	}

	if code < fiber.StatusInternalServerError {
		msg = utils.StatusMessage(code)
		log.Info(c, "http.client_error", map[string]any{"status": code})
	} else {
		log.Error(c, "server.error", err, map[string]any{"status": code})
	}

	if rerr := render(c.Status(code), "notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
