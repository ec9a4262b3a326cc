package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"emytrends/internal/domain"
	applog "emytrends/internal/log"
	"emytrends/internal/repos"
)

type AddressService struct {
	Addrs *repos.AddressRepo
}

func NewAddressService(addrs *repos.AddressRepo) *AddressService {
	return &AddressService{Addrs: addrs}
}

func normalise(a domain.Address) domain.Address {
	a.Label = strings.TrimSpace(a.Label)
	if !domain.Contains(domain.AddressLabels, a.Label) {
		a.Label = "Other"
	}
	a.FullName = strings.TrimSpace(a.FullName)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Country = strings.TrimSpace(a.Country)
	a.City = strings.TrimSpace(a.City)
	a.Province = strings.TrimSpace(a.Province)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.StreetAddress = strings.TrimSpace(a.StreetAddress)
	a.AddressLine2 = strings.TrimSpace(a.AddressLine2)
	return a
}

func (s *AddressService) Add(ctx context.Context, userID string, a domain.Address) (domain.Address, error) {
	a = normalise(a)
	a.ID, a.UserID = "", userID
	return s.Addrs.Add(ctx, a)
}

func (s *AddressService) Update(ctx context.Context, userID string, a domain.Address) (domain.Address, error) {
	a = normalise(a)
	a.UserID = userID
	if err := s.Addrs.Update(ctx, a); err != nil {
		return domain.Address{}, err
	}
	return s.Addrs.Get(ctx, userID, a.ID)
}

func (s *AddressService) Delete(ctx context.Context, userID, id string) error {
	return s.Addrs.Delete(ctx, userID, id)
}

func (s *AddressService) List(ctx context.Context, userID string) ([]domain.Address, error) {
	return s.Addrs.List(ctx, userID)
}

func (s *AddressService) SetDefault(ctx context.Context, userID, id string) error {
	return s.Addrs.SetDefault(ctx, userID, id)
}

// Reconcile reports users whose address book has no default or more than
// one. With fix set, each gets the most recently updated default (or
// address) elected.
func (s *AddressService) Reconcile(ctx context.Context, fix bool) ([]repos.DefaultCount, error) {
	counts, err := s.Addrs.DefaultCounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		applog.L().Warn("address.default_count", zap.String("user_id", c.UserID), zap.Int("defaults", c.Defaults))
		if !fix {
			continue
		}
		id, err := s.Addrs.ElectDefault(ctx, c.UserID)
		if err != nil {
			return counts, err
		}
		applog.L().Info("address.default_elected", zap.String("user_id", c.UserID), zap.String("address_id", id))
	}
	return counts, nil
}
