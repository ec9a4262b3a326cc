package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emytrends/internal/domain"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

func TestSearchRejectsBadQuery(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)
	entries := captureLogs(t, func() {
		resp := c.get("/api/v1/search?q=%3Cscript%3E")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
	e, ok := findLog(entries, "validation.fail")
	require.True(t, ok, "expected validation.fail")
	assert.Equal(t, "q", e.Fields["field"])
}

func TestSearchAcceptsPunctuatedQueries(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)

	for _, q := range []string{"tape-in, blonde", "16/18", "clip+in", "crème"} {
		resp := c.get("/api/v1/search?q=" + url.QueryEscape(q))
		assert.Equal(t, http.StatusOK, resp.StatusCode, q)
	}

	var res services.SearchResult
	decode(t, c.get("/api/v1/search?q="+url.QueryEscape("Ponytail, sleek")), &res)
	assert.Empty(t, res.Products)
	decode(t, c.get("/api/v1/search?q="+url.QueryEscape("wrap ponytail")), &res)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "sleek-ponytail", res.Products[0].ID)
}

func TestAvailabilityValidation(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)

	assert.Equal(t, http.StatusBadRequest, c.get("/api/v1/availability").StatusCode)
	assert.Equal(t, http.StatusBadRequest, c.get("/api/v1/availability?productId=bad%20id").StatusCode)
	assert.Equal(t, http.StatusNotFound, c.get("/api/v1/availability?productId=unknown").StatusCode)

	var av domain.Availability
	decode(t, c.get("/api/v1/availability?productId=luxury-lace-wig"), &av)
	assert.Equal(t, services.OutOfStock, av.Status)
}

func TestCartQuantityIsClamped(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)

	resp := c.json(http.MethodPost, "/api/v1/cart", map[string]any{"quantity": 2})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing productId")

	resp = c.json(http.MethodPost, "/api/v1/cart", map[string]any{"productId": "classic-weft", "quantity": 500})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var line domain.CartLine
	decode(t, resp, &line)
	assert.Equal(t, validate.MaxQty, line.Quantity)

	resp = c.json(http.MethodPatch, "/api/v1/cart/"+line.ID, map[string]any{"quantity": -3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cv services.CartView
	decode(t, resp, &cv)
	require.Len(t, cv.Lines, 1)
	assert.Equal(t, 1, cv.Lines[0].Quantity)

	resp = c.json(http.MethodPatch, "/api/v1/cart/not-a-line", map[string]any{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = c.json(http.MethodDelete, "/api/v1/cart/"+line.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &cv)
	assert.Empty(t, cv.Lines)
	assert.Equal(t, 0, cv.Count)
}

func TestCartFormPostClampsQuantity(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)

	cases := map[string]int{"abc": 1, "0": 1, "3": 3, "99": validate.MaxQty}
	for qty, want := range cases {
		form := url.Values{"productId": {"classic-weft"}, "qty": {qty}, "length": {`18"`}}
		resp := c.do(http.MethodPost, "/api/v1/cart", strings.NewReader(form.Encode()), fiber.MIMEApplicationForm)
		require.Equal(t, http.StatusCreated, resp.StatusCode, qty)
		var line domain.CartLine
		decode(t, resp, &line)
		assert.Equal(t, want, line.Quantity, qty)
		assert.Equal(t, `18"`, line.Variant)
	}

	resp := c.do(http.MethodPost, "/api/v1/cart", strings.NewReader("qty=2"), fiber.MIMEApplicationForm)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddressValidation(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)
	c.login("alice@emytrends.test")

	resp := c.json(http.MethodPost, "/api/v1/addresses", map[string]any{"fullName": "Alice"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, resp, &body)
	assert.Contains(t, body.Fields, "phone")
	assert.Contains(t, body.Fields, "city")
	assert.NotContains(t, body.Fields, "fullName")
}

func TestPromoTextWordLimit(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.client(t)
	admin.login("admin@emytrends.test")

	long := strings.TrimSpace(strings.Repeat("word ", domain.MaxPromoWords+1))
	resp := admin.json(http.MethodPut, "/admin/api/settings", map[string]string{"promoText": long})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	entries := captureLogs(t, func() {
		resp = admin.json(http.MethodPut, "/admin/api/settings", map[string]string{"promoText": "  Free shipping this weekend  "})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
	_, ok := findLog(entries, "admin.settings.save")
	assert.True(t, ok)

	var st domain.SiteSettings
	decode(t, admin.get("/api/v1/settings"), &st)
	assert.Equal(t, "Free shipping this weekend", st.PromoText)
}
