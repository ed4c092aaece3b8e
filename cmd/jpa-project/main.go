package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/sirupsen/logrus"

	"github.com/npapon/jpa-project/internal/config"
	"github.com/npapon/jpa-project/internal/http/handlers"
	applog "github.com/npapon/jpa-project/internal/log"
	"github.com/npapon/jpa-project/internal/repos"
	"github.com/npapon/jpa-project/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	logFile, err := applog.Configure(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		logrus.Warnf("[warn] could not configure logging (%s): %v", cfg.LogFile, err)
	} else {
		defer logFile.Close()
	}
	lg := applog.Logger()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN, cfg.BcryptCost)
	if err != nil {
		lg.Fatalf("database: %v", err)
	}
	defer db.Close()

	sessions, err := session.New(session.Config{
		RedisAddr:    cfg.RedisAddr,
		TTL:          cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
	})
	if err != nil {
		lg.Fatalf("sessions: %v", err)
	}

	// Templates & app
	engine := html.New(cfg.TemplatesDir, ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: lg.Writer()}))
	app.Use(helmet.New())
	app.Use(handlers.AttachUser(sessions))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		ContextKey:     "csrf",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	app.Static("/static", cfg.StaticDir)

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, sessions)

	app.Get("/", deps.MenuHandler.Home)
	app.Get("/api/v1/menu", deps.MenuHandler.List)

	// Registration & auth (form posts throttled)
	formLimiter := func(action string) fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        5,
			Expiration: 10 * time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, action, nil)
				return c.Status(fiber.StatusTooManyRequests).Render("notfound", fiber.Map{
					"Message": "Too many attempts. Please try again later.",
				})
			},
		})
	}
	app.Get("/register", deps.RegisterHandler.Form)
	app.Post("/register", formLimiter("rate.register.hit"), deps.RegisterHandler.Submit)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", formLimiter("rate.login.hit"), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	app.Get("/account", handlers.RequireUser(sessions), deps.AccountHandler.Show)

	// Health & 404
	app.Get("/healthz", deps.HealthHandler.Check)
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Infof("server stopped: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	lg.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		lg.Errorf("shutdown: %v", err)
	}
}
