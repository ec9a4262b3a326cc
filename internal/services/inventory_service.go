package services

import (
	"context"

	"emytrends/internal/domain"
	"emytrends/internal/repos"
)

const (
	InStock    = "IN_STOCK"
	OutOfStock = "OUT_OF_STOCK"
)

type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// CheckAvailability maps the product's inStock flag onto IN_STOCK /
// OUT_OF_STOCK. Unknown products are reported as not found.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	ok, err := s.Inv.InStock(ctx, productID)
	if err != nil {
		return domain.Availability{}, err
	}
	if ok {
		return domain.Availability{Status: InStock}, nil
	}
	return domain.Availability{Status: OutOfStock}, nil
}

func (s *InventoryService) List(ctx context.Context) ([]repos.InventoryRow, error) {
	return s.Inv.ListAll(ctx)
}

func (s *InventoryService) SetInStock(ctx context.Context, productID string, inStock bool) error {
	return s.Inv.Set(ctx, productID, inStock)
}
