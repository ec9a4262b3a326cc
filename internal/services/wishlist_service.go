package services

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"emytrends/internal/domain"
	applog "emytrends/internal/log"
	"emytrends/internal/repos"
)

// WishlistService keeps each user's wishlist as one JSON document in the
// key/value store. Anonymous callers (empty userID) see an empty list and
// their writes are dropped.
type WishlistService struct {
	KV *repos.LocalStorageRepo
}

func NewWishlistService(kv *repos.LocalStorageRepo) *WishlistService {
	return &WishlistService{KV: kv}
}

// WishlistEntry is what a caller supplies; id and addedAt are assigned.
type WishlistEntry struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

// List reads the stored document. A corrupt one is logged and read as empty.
func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	if userID == "" {
		return []domain.WishlistItem{}, nil
	}
	raw, ok, err := s.KV.Get(ctx, repos.WishlistKey(userID))
	if err != nil {
		return nil, err
	}
	items := []domain.WishlistItem{}
	if !ok {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		applog.L().Error("wishlist.parse", zap.String("user_id", userID), zap.Error(err))
		return []domain.WishlistItem{}, nil
	}
	return items, nil
}

func (s *WishlistService) save(ctx context.Context, userID string, items []domain.WishlistItem) error {
	key := repos.WishlistKey(userID)
	if len(items) == 0 {
		return s.KV.Remove(ctx, key)
	}
	b, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode wishlist")
	}
	return s.KV.Set(ctx, key, string(b))
}

// Add saves e unless the product is already on the list.
func (s *WishlistService) Add(ctx context.Context, userID string, e WishlistEntry) (domain.WishlistItem, error) {
	if userID == "" {
		return domain.WishlistItem{}, nil
	}
	items, err := s.List(ctx, userID)
	if err != nil {
		return domain.WishlistItem{}, err
	}
	for _, it := range items {
		if it.ProductID == e.ProductID {
			return it, nil
		}
	}
	t := now()
	it := domain.WishlistItem{
		ID:        e.ProductID + "_" + strconv.FormatInt(t.UnixMilli(), 10),
		ProductID: e.ProductID,
		Title:     e.Title,
		Price:     e.Price,
		Image:     e.Image,
		AddedAt:   t,
	}
	return it, s.save(ctx, userID, append(items, it))
}

// Remove drops every entry for productID.
func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return nil
	}
	items, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	return s.save(ctx, userID, kept)
}

func (s *WishlistService) Contains(ctx context.Context, userID, productID string) (bool, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *WishlistService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return s.save(ctx, userID, nil)
}
