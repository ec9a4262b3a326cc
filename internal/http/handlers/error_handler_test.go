package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundPages(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)

	resp := c.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, readBody(t, resp), "Page not found")

	resp = c.get("/api/v1/nothing-here")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "Page not found", body["error"])
}

func TestServerErrorsDoNotLeakInternals(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)
	require.NoError(t, ta.db.Close())

	entries := captureLogs(t, func() {
		resp := c.get("/api/v1/cart")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Something went wrong")
		assert.NotContains(t, strings.ToLower(body), "sql")
	})
	e, ok := findLog(entries, "server.error")
	require.True(t, ok, "expected server.error log")
	assert.Equal(t, "error", e.Kind)
}

func TestMediaRouteBlocksTraversal(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)
	entries := captureLogs(t, func() {
		resp := c.get("/media/..%2f..%2fetc/passwd")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
	_, ok := findLog(entries, "media.traversal.block")
	assert.True(t, ok)
}
