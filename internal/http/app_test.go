package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/npapon/jpa-project/internal/config"
	"github.com/npapon/jpa-project/internal/http/handlers"
	applog "github.com/npapon/jpa-project/internal/log"
	"github.com/npapon/jpa-project/internal/repos"
	"github.com/npapon/jpa-project/internal/session"
)

const (
	seededEmail    = "alice@jpa-project.test"
	seededPassword = "Passw0rd!"
)

type appOptions struct {
	formLimit int
	sessions  *session.Manager
}

// newTestApp wires the routes the way cmd/jpa-project does, on an in-memory
// database. Form posts are throttled at formLimit per minute (default 100).
func newTestApp(t *testing.T, opts appOptions) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := config.Config{BcryptCost: bcrypt.MinCost}
	db, err := repos.OpenDB(repos.DriverSQLite, ":memory:", cfg.BcryptCost)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sessions := opts.sessions
	if sessions == nil {
		sessions, err = session.New(session.Config{})
		require.NoError(t, err)
	}
	if opts.formLimit == 0 {
		opts.formLimit = 100
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	app.Use(handlers.AttachUser(sessions))
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax", ContextKey: "csrf"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, cfg, sessions)
	formLimiter := func(action string) fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        opts.formLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, action, nil)
				return c.SendStatus(fiber.StatusTooManyRequests)
			},
		})
	}

	app.Get("/", deps.MenuHandler.Home)
	app.Get("/api/v1/menu", deps.MenuHandler.List)
	app.Get("/register", deps.RegisterHandler.Form)
	app.Post("/register", formLimiter("rate.register.hit"), deps.RegisterHandler.Submit)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", formLimiter("rate.login.hit"), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)
	app.Get("/account", handlers.RequireUser(sessions), deps.AccountHandler.Show)
	app.Get("/healthz", deps.HealthHandler.Check)
	return app, db
}

// client replays the cookies an app sets, like a browser would.
type client struct {
	t   *testing.T
	app *fiber.App
	jar map[string]string
}

func newClient(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app, jar: map[string]string{}}
}

func (cl *client) do(req *http.Request) *http.Response {
	cl.t.Helper()
	for name, value := range cl.jar {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	resp, err := cl.app.Test(req, -1)
	require.NoError(cl.t, err)
	for _, c := range resp.Cookies() {
		if c.Value == "" || c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(cl.jar, c.Name)
			continue
		}
		cl.jar[c.Name] = c.Value
	}
	return resp
}

func (cl *client) get(path string) *http.Response {
	cl.t.Helper()
	return cl.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post submits form with the current CSRF token, fetching one from /login first
// when the jar has none.
func (cl *client) post(path string, form url.Values) *http.Response {
	cl.t.Helper()
	if cl.jar["csrf_"] == "" {
		cl.get("/login")
	}
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", cl.jar["csrf_"])
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return cl.do(req)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// captureLogs redirects the application logger while fn runs and returns the
// JSON entries written.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var out lockedBuffer
	applog.SetOutput(&out)
	defer applog.SetOutput(os.Stdout)

	fn()

	out.mu.Lock()
	defer out.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(out.buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
