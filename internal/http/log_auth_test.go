package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthLogging(t *testing.T) {
	app, _ := newTestApp(t, appOptions{})
	cl := newClient(t, app)
	cl.get("/login")

	logs := captureLogs(t, func() {
		cl.post("/login", loginForm(seededEmail, "badpass!"))
	})
	e, ok := findAction(logs, "auth.login.fail")
	require.True(t, ok, "auth.login.fail log not found")
	assert.Equal(t, "security", e.Kind)
	assert.Equal(t, "warning", e.Level)
	assert.Equal(t, seededEmail, e.Fields["email"])

	logs = captureLogs(t, func() {
		cl.post("/login", loginForm(seededEmail, seededPassword))
	})
	e, ok = findAction(logs, "auth.login.success")
	require.True(t, ok, "auth.login.success log not found")
	assert.Equal(t, "audit", e.Kind)
	assert.Equal(t, seededEmail, e.Fields["email"])
	assert.Equal(t, "u-alice", e.Fields["user_id"])
}

func TestRegistrationLogging(t *testing.T) {
	app, db := newTestApp(t, appOptions{})
	cl := newClient(t, app)
	cl.get("/register")

	logs := captureLogs(t, func() {
		cl.post("/register", registration("ada@example.com", "Ada", "Passw0rd!", "Passw0rd!"))
	})
	e, ok := findAction(logs, "auth.register.success")
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", e.Fields["email"])
	assert.NotEmpty(t, e.Fields["user_id"])

	logs = captureLogs(t, func() {
		cl.post("/register", registration("ada@example.com", "Ada", "Passw0rd!", "Passw0rd!"))
	})
	e, ok = findAction(logs, "auth.register.fail")
	require.True(t, ok)
	assert.Equal(t, "conflict", e.Fields["reason"])
	for _, entry := range logs {
		assert.NotContains(t, entry.Fields, "password")
	}

	require.NoError(t, db.Close())
	logs = captureLogs(t, func() {
		resp := cl.post("/register", registration("bea@example.com", "Bea", "Passw0rd!", "Passw0rd!"))
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})
	e, ok = findAction(logs, "auth.register.error")
	require.True(t, ok)
	assert.Equal(t, "error", e.Kind)
	assert.Equal(t, "store_fault", e.Fields["reason"])
	assert.Contains(t, e.Err, "unavailable")
}
