package repos_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"emytrends/internal/domain"
	applog "emytrends/internal/log"
	"emytrends/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSeed_IsIdempotentAndHashesPasswords(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()

	require.NoError(t, repos.Seed(db))

	n, err := repos.NewProductRepo(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	u, err := repos.NewUserRepo(db).ByEmail(ctx, "ADMIN@emytrends.test")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
	assert.NotEqual(t, "Passw0rd!", u.Hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte("Passw0rd!")))

	users, err := repos.NewUserRepo(db).List(ctx)
	require.NoError(t, err)
	for _, u := range users {
		assert.False(t, u.IsAdmin(), u.Email)
	}
}

func TestSeed_LoadsNestedProductFields(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()

	p, err := repos.NewProductRepo(db).Get(ctx, "hand-tied-weft")
	require.NoError(t, err)
	require.Len(t, p.FAQItems, 1)
	assert.Equal(t, "Can I colour them?", p.FAQItems[0].Question)
	assert.Equal(t, "Yes. We recommend a professional colourist.", p.FAQItems[0].Answer)

	p, err = repos.NewProductRepo(db).Get(ctx, "silk-tape-in")
	require.NoError(t, err)
	assert.Len(t, p.ColorSwatches, 2)
	assert.Len(t, p.LengthOptions, 2)
	assert.Equal(t, []string{"classic-weft", "hand-tied-weft"}, p.RelatedProductIDs)
}

func TestProductRepo_RoundTrip(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	r := repos.NewProductRepo(db)

	lp := decimal.RequireFromString("249.50")
	p := domain.Product{
		Title:         "Body Wave Bundle",
		Price:         decimal.RequireFromString("199.99"),
		Category:      "Weft",
		Images:        []string{"/media/a.jpg"},
		Colors:        []string{"Black"},
		Shades:        []string{"Brown"},
		Lengths:       []string{`20"`},
		ColorSwatches: []domain.ColorSwatch{{ID: "s1", Color: "#000000", Name: "Black"}},
		LengthOptions: []domain.LengthOption{{ID: "l1", Label: `24"`, Price: &lp}},
		FAQItems:      []domain.FAQItem{{Question: "Reusable?", Answer: "Yes"}},
		InStock:       true,
	}
	id, err := r.Create(ctx, p)
	require.NoError(t, err)

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Body Wave Bundle", got.Title)
	assert.True(t, got.Price.Equal(p.Price))
	assert.Equal(t, []string{"Black"}, got.Colors)
	require.Len(t, got.LengthOptions, 1)
	assert.True(t, got.LengthOptions[0].Price.Equal(lp))
	assert.Equal(t, "Reusable?", got.FAQItems[0].Question)
	assert.NotNil(t, got.RelatedProductIDs)

	require.NoError(t, r.Delete(ctx, id))
	_, err = r.Get(ctx, id)
	assert.ErrorIs(t, err, repos.ErrProductNotFound)
}

func TestOrderRepo_HistoryIsAppendOnly(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	r := repos.NewOrderRepo(db)

	placed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	fee := decimal.RequireFromString("15")
	id, err := r.Create(ctx, domain.Order{
		UserID:      "u-alice",
		Items:       []domain.OrderItem{{ProductID: "silk-tape-in", Title: "Silk", Price: decimal.RequireFromString("10.50"), Quantity: 2}},
		TotalAmount: decimal.RequireFromString("21"),
		Status:      domain.StatusOrderPlaced,
		DeliveryFee: &fee,
		StatusHistory: []domain.StatusChange{
			{Status: domain.StatusOrderPlaced, Date: placed, Note: "Order placed"},
		},
		CreatedAt: placed,
	})
	require.NoError(t, err)

	require.NoError(t, r.AppendStatus(ctx, id, domain.StatusChange{
		Status: domain.StatusOutForDelivery, Date: placed.Add(time.Hour), Note: "Status updated to OUT FOR DELIVERY",
	}))

	o, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutForDelivery, o.Status)
	require.Len(t, o.StatusHistory, 2)
	assert.Equal(t, domain.StatusOrderPlaced, o.StatusHistory[0].Status)
	assert.True(t, o.StatusHistory[0].Date.Equal(placed))
	assert.Equal(t, "36", o.GrandTotal().String())

	_, err = db.Exec(`UPDATE order_status_history SET note='x' WHERE order_id=?`, id)
	assert.Error(t, err)

	err = r.AppendStatus(ctx, "missing", domain.StatusChange{Status: domain.StatusDelivered, Date: placed})
	assert.ErrorIs(t, err, repos.ErrOrderNotFound)
}

func TestOrderRepo_CorruptSnapshotIsLogged(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	r := repos.NewOrderRepo(db)

	id, err := r.Create(ctx, domain.Order{
		UserID: "u-alice", TotalAmount: decimal.NewFromInt(10), Status: domain.StatusOrderPlaced,
		ShippingAddress: domain.ShippingAddress{Name: "Alice"},
	})
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE orders SET shipping_json='{"name":' WHERE id=?`, id)
	require.NoError(t, err)

	var buf bytes.Buffer
	restore := applog.SetForTest(&buf)
	o, err := r.Get(ctx, id)
	restore()

	require.NoError(t, err)
	assert.Equal(t, domain.ShippingAddress{}, o.ShippingAddress)
	assert.Contains(t, buf.String(), `"msg":"db.decode"`)
	assert.Contains(t, buf.String(), `"column":"shipping_json"`)
	assert.Contains(t, buf.String(), id)
}

func TestOrderRepo_NewestFirst(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	r := repos.NewOrderRepo(db)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 7; i++ {
		id, err := r.Create(ctx, domain.Order{
			UserID: "u-bob", TotalAmount: decimal.NewFromInt(int64(i)),
			Status: domain.StatusOrderPlaced, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	recent, err := r.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, ids[6], recent[0].ID)
	assert.Equal(t, ids[2], recent[4].ID)

	mine, err := r.ByUser(ctx, "u-alice")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestAddressRepo_SingleDefault(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	r := repos.NewAddressRepo(db)

	mk := func(label string, def bool) domain.Address {
		a, err := r.Add(ctx, domain.Address{
			UserID: "u-alice", Label: label, FullName: "Alice", Country: "US",
			City: "Austin", StreetAddress: "1 Main", IsDefault: def,
		})
		require.NoError(t, err)
		return a
	}
	home := mk("Home", true)
	work := mk("Work", true)

	list, err := r.List(ctx, "u-alice")
	require.NoError(t, err)
	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
			assert.Equal(t, work.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	require.NoError(t, r.SetDefault(ctx, "u-alice", home.ID))
	got, err := r.Get(ctx, "u-alice", home.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)

	_, err = r.Get(ctx, "u-bob", home.ID)
	assert.ErrorIs(t, err, repos.ErrAddressNotFound)

	require.NoError(t, r.Delete(ctx, "u-alice", home.ID))
	counts, err := r.DefaultCounts(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, "u-alice", counts[0].UserID)

	elected, err := r.ElectDefault(ctx, "u-alice")
	require.NoError(t, err)
	assert.Equal(t, work.ID, elected)
}

func TestUserRepo_DeleteUserCascade(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	users := repos.NewUserRepo(db)
	kv := repos.NewLocalStorageRepo(db)
	carts := repos.NewCartRepo(db)

	require.NoError(t, users.BindSession(ctx, "sid-1", "u-bob"))
	require.NoError(t, carts.Save(ctx, "sid-1", []domain.CartLine{{ID: "l1", ProductID: "p", Name: "P", Price: decimal.NewFromInt(1), Quantity: 1}}))
	require.NoError(t, kv.Set(ctx, repos.WishlistKey("u-bob"), "[]"))
	require.NoError(t, repos.NewProfileRepo(db).Save(ctx, domain.UserProfile{ID: "u-bob", FirstName: "Bob"}))

	u, err := users.SessionUser(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "u-bob", u.ID)

	require.NoError(t, users.DeleteUserCascade(ctx, "u-bob"))

	_, err = users.ByID(ctx, "u-bob")
	assert.ErrorIs(t, err, repos.ErrUserNotFound)
	lines, err := carts.Lines(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
	_, ok, err := kv.Get(ctx, repos.WishlistKey("u-bob"))
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = repos.NewProfileRepo(db).Get(ctx, "u-bob")
	assert.ErrorIs(t, err, repos.ErrProfileNotFound)

	assert.ErrorIs(t, users.DeleteUserCascade(ctx, "u-bob"), repos.ErrUserNotFound)
}

func TestSettingsRepo_DefaultPromo(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	r := repos.NewSettingsRepo(db)

	s, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPromoText, s.PromoText)

	require.NoError(t, r.SetPromoText(ctx, "Free shipping this week"))
	s, err = r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Free shipping this week", s.PromoText)
}
