package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"emytrends/internal/cart"
	"emytrends/internal/domain"
	applog "emytrends/internal/log"
	"emytrends/internal/repos"
)

type OrderService struct {
	Carts     *repos.CartRepo
	Inv       *repos.InventoryRepo
	Orders    *repos.OrderRepo
	Addresses *repos.AddressRepo
}

func NewOrderService(carts *repos.CartRepo, inv *repos.InventoryRepo, orders *repos.OrderRepo, addrs *repos.AddressRepo) *OrderService {
	return &OrderService{Carts: carts, Inv: inv, Orders: orders, Addresses: addrs}
}

// Checkout carries what the buyer chose at checkout. AddressID picks a
// saved address; otherwise Address is used; with neither, the user's
// default address is.
type Checkout struct {
	AddressID     string                  `json:"addressId"`
	Address       *domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod string                  `json:"paymentMethod"`
	DeliveryFee   *decimal.Decimal        `json:"deliveryFee"`
}

func (s *OrderService) shipping(ctx context.Context, userID string, co Checkout) (domain.ShippingAddress, error) {
	if co.AddressID != "" {
		a, err := s.Addresses.Get(ctx, userID, co.AddressID)
		if err != nil {
			return domain.ShippingAddress{}, err
		}
		return a.Snapshot(), nil
	}
	if co.Address != nil {
		sa := *co.Address
		if strings.TrimSpace(sa.Name) == "" || strings.TrimSpace(sa.Address) == "" || strings.TrimSpace(sa.City) == "" {
			return domain.ShippingAddress{}, ErrNoAddress
		}
		return sa, nil
	}
	list, err := s.Addresses.List(ctx, userID)
	if err != nil {
		return domain.ShippingAddress{}, err
	}
	for _, a := range list {
		if a.IsDefault {
			return a.Snapshot(), nil
		}
	}
	return domain.ShippingAddress{}, ErrNoAddress
}

// Place turns the session cart into an order for user and empties the cart.
// totalAmount is the item total; the delivery fee is stored beside it.
func (s *OrderService) Place(ctx context.Context, sessionID string, user *domain.User, co Checkout) (domain.Order, error) {
	lines, err := s.Carts.Lines(ctx, sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	out, err := s.Inv.OutOfStock(ctx, ids)
	if err != nil {
		return domain.Order{}, err
	}
	if len(out) > 0 {
		return domain.Order{}, errors.Wrap(ErrOutOfStock, strings.Join(out, ", "))
	}

	ship, err := s.shipping(ctx, user.ID, co)
	if err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			Title:     l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Image:     l.Image,
			Color:     l.Color,
			Length:    l.Variant,
		})
	}
	t := now()
	o := domain.Order{
		ID:              s.Orders.NextID(),
		UserID:          user.ID,
		UserEmail:       user.Email,
		Items:           items,
		TotalAmount:     cart.Total(lines),
		Status:          domain.StatusOrderPlaced,
		ShippingAddress: ship,
		PaymentMethod:   co.PaymentMethod,
		DeliveryFee:     co.DeliveryFee,
		StatusHistory: []domain.StatusChange{
			{Status: domain.StatusOrderPlaced, Date: t, Note: "Order placed"},
		},
		CreatedAt: t,
		UpdatedAt: t,
	}
	if _, err := s.Orders.Create(ctx, o); err != nil {
		return domain.Order{}, err
	}
	if err := s.Carts.Clear(ctx, sessionID); err != nil {
		applog.L().Error("order.clear_cart", zap.Error(err), zap.String("order_id", o.ID))
	}
	return o, nil
}

// UpdateStatus moves order id to status from whatever it is now and records
// the move in its history.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, ErrBadStatus
	}
	cur, err := s.Orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !domain.CanTransition(cur.Status, status) {
		applog.L().Warn("order.status_off_path",
			zap.String("order_id", id),
			zap.String("from", string(cur.Status)),
			zap.String("to", string(status)))
	}
	ch := domain.StatusChange{Status: status, Date: now(), Note: "Status updated to " + status.Label()}
	if err := s.Orders.AppendStatus(ctx, id, ch); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(ctx, id)
}

func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.Orders.Get(ctx, id)
}

// GetFor returns the order only when it belongs to user; admins see all.
func (s *OrderService) GetFor(ctx context.Context, user *domain.User, id string) (domain.Order, error) {
	o, err := s.Orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if o.UserID != user.ID && !user.IsAdmin() {
		return domain.Order{}, ErrForbidden
	}
	return o, nil
}

func (s *OrderService) All(ctx context.Context) ([]domain.Order, error) {
	return s.Orders.All(ctx)
}

func (s *OrderService) Recent(ctx context.Context, n int) ([]domain.Order, error) {
	return s.Orders.Recent(ctx, n)
}

func (s *OrderService) UserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.Orders.ByUser(ctx, userID)
}
