package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"emytrends/internal/domain"
	applog "emytrends/internal/log"
	"emytrends/internal/repos"
)

type SettingsService struct {
	Repo *repos.SettingsRepo
}

func NewSettingsService(r *repos.SettingsRepo) *SettingsService { return &SettingsService{Repo: r} }

// Settings never fails: on a read error the default promo is returned.
func (s *SettingsService) Settings(ctx context.Context) domain.SiteSettings {
	st, err := s.Repo.Get(ctx)
	if err != nil {
		applog.L().Error("settings.load", zap.Error(err))
		return domain.SiteSettings{PromoText: domain.DefaultPromoText}
	}
	if strings.TrimSpace(st.PromoText) == "" {
		st.PromoText = domain.DefaultPromoText
	}
	return st
}

// SetPromoText stores text as given; the word limit is enforced by callers.
func (s *SettingsService) SetPromoText(ctx context.Context, text string) (domain.SiteSettings, error) {
	if err := s.Repo.SetPromoText(ctx, strings.TrimSpace(text)); err != nil {
		return domain.SiteSettings{}, err
	}
	return s.Repo.Get(ctx)
}
