package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emytrends/internal/domain"
	"emytrends/internal/repos"
	"emytrends/internal/services"
)

func orderServices(f fixture) (*services.CartService, *services.OrderService) {
	cartRepo := repos.NewCartRepo(f.db)
	prodRepo := repos.NewProductRepo(f.db)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, repos.NewInventoryRepo(f.db), repos.NewOrderRepo(f.db), repos.NewAddressRepo(f.db))
	return cartSvc, orderSvc
}

var alice = &domain.User{ID: "u-alice", Email: "alice@emytrends.test", Role: domain.RoleUser}

func TestOrderFlow_AddCartCheckout(t *testing.T) {
	f := memdbAll(t)
	ctx := context.Background()
	cartSvc, orderSvc := orderServices(f)

	sid := "test-session"
	line, err := cartSvc.Add(ctx, sid, services.AddRequest{ProductID: "silk-tape-in", Quantity: 2, Length: `22"`, Color: "Blonde"})
	require.NoError(t, err)
	assert.Equal(t, "219", line.Price.String())
	_, err = cartSvc.Add(ctx, sid, services.AddRequest{ProductID: "sleek-ponytail", Quantity: 0})
	require.NoError(t, err)

	cv, err := cartSvc.View(ctx, sid)
	require.NoError(t, err)
	require.Len(t, cv.Lines, 2)
	assert.Equal(t, 3, cv.Count)
	assert.Equal(t, "567", cv.Total.String())

	fee := decimal.RequireFromString("25")
	o, err := orderSvc.Place(ctx, sid, alice, services.Checkout{
		Address:       &domain.ShippingAddress{Name: "Alice", Address: "1 Main", City: "Austin", Country: "US"},
		PaymentMethod: "cod",
		DeliveryFee:   &fee,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "567", o.TotalAmount.String())
	assert.Equal(t, "592", o.GrandTotal().String())
	assert.Equal(t, domain.StatusOrderPlaced, o.Status)
	require.Len(t, o.StatusHistory, 1)
	assert.Equal(t, "Order placed", o.StatusHistory[0].Note)
	assert.Equal(t, `22"`, o.Items[0].Length)

	cv, err = cartSvc.View(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, cv.Lines)

	stored, err := orderSvc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.TotalAmount.String(), stored.TotalAmount.String())
	assert.Equal(t, "alice@emytrends.test", stored.UserEmail)
}

func TestOrderFlow_Rejections(t *testing.T) {
	f := memdbAll(t)
	ctx := context.Background()
	cartSvc, orderSvc := orderServices(f)

	_, err := orderSvc.Place(ctx, "empty", alice, services.Checkout{})
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	_, err = cartSvc.Add(ctx, "s1", services.AddRequest{ProductID: "luxury-lace-wig", Quantity: 1})
	assert.ErrorIs(t, err, services.ErrOutOfStock)

	_, err = cartSvc.Add(ctx, "s1", services.AddRequest{ProductID: "classic-weft", Quantity: 1})
	require.NoError(t, err)
	_, err = orderSvc.Place(ctx, "s1", alice, services.Checkout{})
	assert.ErrorIs(t, err, services.ErrNoAddress)

	require.NoError(t, repos.NewInventoryRepo(f.db).Set(ctx, "classic-weft", false))
	_, err = orderSvc.Place(ctx, "s1", alice, services.Checkout{
		Address: &domain.ShippingAddress{Name: "A", Address: "B", City: "C"},
	})
	assert.ErrorIs(t, err, services.ErrOutOfStock)
}

func TestOrderFlow_SavedAddress(t *testing.T) {
	f := memdbAll(t)
	ctx := context.Background()
	cartSvc, orderSvc := orderServices(f)
	addrs := services.NewAddressService(repos.NewAddressRepo(f.db))

	a, err := addrs.Add(ctx, alice.ID, domain.Address{
		Label: "Home", FullName: "Alice A", Country: "US", City: "Austin", Province: "TX",
		PostalCode: "78701", StreetAddress: "1 Main", AddressLine2: "Apt 2", IsDefault: true,
	})
	require.NoError(t, err)

	_, err = cartSvc.Add(ctx, "s2", services.AddRequest{ProductID: "classic-weft", Quantity: 1})
	require.NoError(t, err)
	o, err := orderSvc.Place(ctx, "s2", alice, services.Checkout{})
	require.NoError(t, err)
	assert.Equal(t, "1 Main, Apt 2", o.ShippingAddress.Address)
	assert.Equal(t, "TX", o.ShippingAddress.State)

	_, err = cartSvc.Add(ctx, "s2", services.AddRequest{ProductID: "classic-weft", Quantity: 1})
	require.NoError(t, err)
	bob := &domain.User{ID: "u-bob"}
	_, err = orderSvc.Place(ctx, "s2", bob, services.Checkout{AddressID: a.ID})
	assert.ErrorIs(t, err, repos.ErrAddressNotFound)
}

func TestUpdateStatus_AppendsHistory(t *testing.T) {
	f := memdbAll(t)
	ctx := context.Background()
	cartSvc, orderSvc := orderServices(f)

	_, err := cartSvc.Add(ctx, "s", services.AddRequest{ProductID: "classic-weft", Quantity: 1})
	require.NoError(t, err)
	o, err := orderSvc.Place(ctx, "s", alice, services.Checkout{
		Address: &domain.ShippingAddress{Name: "A", Address: "B", City: "C"},
	})
	require.NoError(t, err)

	o, err = orderSvc.UpdateStatus(ctx, o.ID, domain.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, o.Status)

	// off the forward path, still accepted
	o, err = orderSvc.UpdateStatus(ctx, o.ID, domain.StatusPendingConfirmation)
	require.NoError(t, err)
	require.Len(t, o.StatusHistory, 3)
	assert.Equal(t, "Status updated to DELIVERED", o.StatusHistory[1].Note)
	assert.Equal(t, "Status updated to PENDING CONFIRMATION", o.StatusHistory[2].Note)
	assert.Equal(t, domain.StatusPendingConfirmation, o.Status)

	_, err = orderSvc.UpdateStatus(ctx, o.ID, "shipped")
	assert.ErrorIs(t, err, services.ErrBadStatus)
	_, err = orderSvc.UpdateStatus(ctx, "nope", domain.StatusCancelled)
	assert.ErrorIs(t, err, repos.ErrOrderNotFound)

	_, err = orderSvc.GetFor(ctx, &domain.User{ID: "u-bob"}, o.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	mine, err := orderSvc.UserOrders(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	f := memdbAll(t)
	ctx := context.Background()
	cartSvc, _ := orderServices(f)

	a, err := cartSvc.Add(ctx, "s", services.AddRequest{ProductID: "everyday-clip-in", Quantity: 1})
	require.NoError(t, err)
	b, err := cartSvc.Add(ctx, "s", services.AddRequest{ProductID: "everyday-clip-in", Quantity: 1})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID, "identical adds keep separate lines")

	require.NoError(t, cartSvc.UpdateQuantity(ctx, "s", a.ID, 0))
	require.NoError(t, cartSvc.Remove(ctx, "s", b.ID))
	require.NoError(t, cartSvc.Remove(ctx, "s", "missing"))
	assert.ErrorIs(t, cartSvc.UpdateQuantity(ctx, "s", "missing", 3), services.ErrLineGone)

	cv, err := cartSvc.View(ctx, "s")
	require.NoError(t, err)
	require.Len(t, cv.Lines, 1)
	assert.Equal(t, 1, cv.Lines[0].Quantity)
	assert.Equal(t, "99", cv.Total.String())
}
