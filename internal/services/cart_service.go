package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"emytrends/internal/cart"
	"emytrends/internal/domain"
	"emytrends/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// AddRequest picks a product and its variant. Length selects the length
// option price when one is set for it.
type AddRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Length    string `json:"length"`
	Color     string `json:"color"`
}

func (s *CartService) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	lines, err := s.Carts.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cart.New(lines), nil
}

// Add appends a new line priced from the catalog.
func (s *CartService) Add(ctx context.Context, sessionID string, req AddRequest) (domain.CartLine, error) {
	p, err := s.Prods.Get(ctx, req.ProductID)
	if err != nil {
		return domain.CartLine{}, err
	}
	if !p.InStock {
		return domain.CartLine{}, errors.Wrap(ErrOutOfStock, p.Title)
	}
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.CartLine{}, err
	}
	line := c.Add(domain.CartLine{
		ProductID: p.ID,
		Name:      p.Title,
		Variant:   req.Length,
		Color:     req.Color,
		Price:     p.PriceFor(req.Length),
		Quantity:  req.Quantity,
		Image:     p.PrimaryImage(),
	})
	if err := s.Carts.Save(ctx, sessionID, c.Lines()); err != nil {
		return domain.CartLine{}, err
	}
	return line, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, lineID string, qty int) error {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if !c.UpdateQuantity(lineID, qty) {
		return ErrLineGone
	}
	return s.Carts.Save(ctx, sessionID, c.Lines())
}

// Remove drops a line; unknown ids are ignored.
func (s *CartService) Remove(ctx context.Context, sessionID, lineID string) error {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	n := c.Len()
	c.Remove(lineID)
	if c.Len() == n {
		return nil
	}
	return s.Carts.Save(ctx, sessionID, c.Lines())
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.Carts.Clear(ctx, sessionID)
}

type CartView struct {
	Lines []domain.CartLine `json:"lines"`
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"total"`
}

func (s *CartService) View(ctx context.Context, sessionID string) (CartView, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Lines: c.Lines(), Count: c.Count(), Total: c.Total()}, nil
}
