package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEventsAreLogged(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)

	entries := captureLogs(t, func() {
		c.json(http.MethodPost, "/api/v1/login", map[string]string{"email": "bob@emytrends.test", "password": "Wr0ngpass!"})
	})
	e, ok := findLog(entries, "auth.login.fail")
	require.True(t, ok, "expected auth.login.fail")
	assert.Equal(t, "security", e.Kind)
	assert.Equal(t, "bob@emytrends.test", e.Fields["email"])

	entries = captureLogs(t, func() { c.login("bob@emytrends.test") })
	e, ok = findLog(entries, "auth.login.success")
	require.True(t, ok, "expected auth.login.success")
	assert.Equal(t, "audit", e.Kind)
	assert.Equal(t, "u-bob", e.UserID)

	entries = captureLogs(t, func() { c.json(http.MethodPost, "/api/v1/logout", nil) })
	_, ok = findLog(entries, "auth.logout")
	assert.True(t, ok, "expected auth.logout")
}
