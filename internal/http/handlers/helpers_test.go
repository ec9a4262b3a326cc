package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"emytrends/internal/config"
	"emytrends/internal/http/handlers"
	applog "emytrends/internal/log"
	"emytrends/internal/repos"
)

const password = "Passw0rd!"

type testApp struct {
	app      *fiber.App
	db       *sqlx.DB
	deps     *handlers.Deps
	mediaDir string
}

// newTestApp wires the full router over a seeded in-memory database. Limits
// are generous unless tune lowers them.
func newTestApp(t *testing.T, tune ...func(*handlers.Options)) *testApp {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(wp.Close)

	cfg := config.Config{
		MediaDir:     t.TempDir(),
		MediaBaseURL: "/media",
		WordPressURL: wp.URL + "/wp-json/wp/v2",
		WordPressTTL: time.Second,
	}
	deps, err := handlers.NewDeps(db, cfg)
	require.NoError(t, err)

	opts := handlers.Options{
		GlobalLimit:       1000,
		LoginLimit:        100,
		AvailabilityLimit: 100,
		SearchLimit:       100,
	}
	for _, f := range tune {
		f(&opts)
	}
	return &testApp{app: handlers.NewApp(deps, opts), db: db, deps: deps, mediaDir: cfg.MediaDir}
}

// client keeps the sid and csrf_ cookies between requests like a browser.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func (ta *testApp) client(t *testing.T) *client {
	t.Helper()
	c := &client{t: t, app: ta.app, cookies: map[string]string{}}
	resp := c.do(http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, c.cookies["sid"])
	require.NotEmpty(t, c.cookies["csrf_"])
	return c
}

func (c *client) do(method, path string, body io.Reader, contentType string) *http.Response {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	for name, v := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: v})
	}
	if tok := c.cookies["csrf_"]; tok != "" {
		req.Header.Set(handlers.CSRFHeader, tok)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Value == "" {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
	return resp
}

func (c *client) get(path string) *http.Response {
	c.t.Helper()
	return c.do(http.MethodGet, path, nil, "")
}

func (c *client) json(method, path string, v any) *http.Response {
	c.t.Helper()
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(c.t, err)
		body = bytes.NewReader(b)
	}
	return c.do(method, path, body, fiber.MIMEApplicationJSON)
}

func (c *client) login(email string) {
	c.t.Helper()
	resp := c.json(http.MethodPost, "/api/v1/login", map[string]string{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, resp.StatusCode, readBody(c.t, resp))
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// readBody returns the body and puts it back, so a later decode still sees it.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(b))
	return string(b)
}

type logEntry struct {
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
	UserID string         `json:"user_id"`
}

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	restore := applog.SetForTest(buf)
	defer restore()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
