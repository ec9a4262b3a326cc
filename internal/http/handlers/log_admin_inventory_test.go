package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emytrends/internal/domain"
	"emytrends/internal/repos"
	"emytrends/internal/services"
)

func TestAdminInventoryToggleIsAudited(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.client(t)
	admin.login("admin@emytrends.test")

	var rows struct {
		Rows []repos.InventoryRow `json:"rows"`
	}
	decode(t, admin.get("/admin/api/inventory"), &rows)
	assert.Len(t, rows.Rows, 6)

	entries := captureLogs(t, func() {
		resp := admin.json(http.MethodPut, "/admin/api/inventory/classic-weft", map[string]bool{"inStock": false})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var av domain.Availability
		decode(t, resp, &av)
		assert.Equal(t, services.OutOfStock, av.Status)
	})
	e, ok := findLog(entries, "admin.inventory.save")
	require.True(t, ok, "expected admin.inventory.save audit")
	assert.Equal(t, "audit", e.Kind)
	assert.Equal(t, "classic-weft", e.Fields["product"])
	assert.Equal(t, "u-admin", e.UserID)

	resp := admin.json(http.MethodPut, "/admin/api/inventory/classic-weft", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "inStock is required")

	resp = admin.json(http.MethodPut, "/admin/api/inventory/nope", map[string]bool{"inStock": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	shopper := ta.client(t)
	resp = shopper.json(http.MethodPost, "/api/v1/cart", map[string]any{"productId": "classic-weft"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAdminOrderStatusAppendsHistory(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.client(t)
	alice.login("alice@emytrends.test")
	resp := alice.json(http.MethodPost, "/api/v1/cart", map[string]any{"productId": "everyday-clip-in", "quantity": 3})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = alice.json(http.MethodPost, "/api/v1/orders", shipTo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var o domain.Order
	decode(t, resp, &o)

	admin := ta.client(t)
	admin.login("admin@emytrends.test")

	resp = admin.json(http.MethodPut, "/admin/api/orders/"+o.ID+"/status", map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	entries := captureLogs(t, func() {
		resp = admin.json(http.MethodPut, "/admin/api/orders/"+o.ID+"/status", map[string]string{"status": "out_for_delivery"})
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Order
	decode(t, resp, &got)
	assert.Equal(t, domain.StatusOutForDelivery, got.Status)
	require.Len(t, got.StatusHistory, 2)
	assert.Equal(t, "Status updated to "+domain.StatusOutForDelivery.Label(), got.StatusHistory[1].Note)
	_, ok := findLog(entries, "admin.orders.update")
	assert.True(t, ok)

	var all struct {
		Orders []domain.Order `json:"orders"`
	}
	decode(t, admin.get("/admin/api/orders"), &all)
	require.Len(t, all.Orders, 1)
	assert.Equal(t, o.ID, all.Orders[0].ID)

	resp = admin.json(http.MethodPut, "/admin/api/orders/missing/status", map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
