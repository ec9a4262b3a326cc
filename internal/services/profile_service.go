package services

import (
	"context"

	"github.com/pkg/errors"

	"emytrends/internal/domain"
	"emytrends/internal/imaging"
	"emytrends/internal/repos"
)

type ProfileService struct {
	Profiles *repos.ProfileRepo
	Media    *MediaService
}

func NewProfileService(p *repos.ProfileRepo, media *MediaService) *ProfileService {
	return &ProfileService{Profiles: p, Media: media}
}

// ProfilePatch holds the fields a save touches; nil fields are kept.
type ProfilePatch struct {
	FirstName *string                `json:"firstName"`
	LastName  *string                `json:"lastName"`
	Email     *string                `json:"email"`
	Phone     *string                `json:"phone"`
	Address   *domain.ProfileAddress `json:"address"`
}

// Get returns the stored profile, or a blank one seeded from user.
func (s *ProfileService) Get(ctx context.Context, user *domain.User) (domain.UserProfile, error) {
	p, err := s.Profiles.Get(ctx, user.ID)
	if errors.Is(err, repos.ErrProfileNotFound) {
		return domain.UserProfile{ID: user.ID, Email: user.Email}, nil
	}
	return p, err
}

// Save merges patch into the stored profile.
func (s *ProfileService) Save(ctx context.Context, user *domain.User, patch ProfilePatch) (domain.UserProfile, error) {
	p, err := s.Get(ctx, user)
	if err != nil {
		return domain.UserProfile{}, err
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.FirstName, patch.FirstName)
	set(&p.LastName, patch.LastName)
	set(&p.Email, patch.Email)
	set(&p.Phone, patch.Phone)
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if err := s.Profiles.Save(ctx, p); err != nil {
		return domain.UserProfile{}, err
	}
	return s.Profiles.Get(ctx, user.ID)
}

// SetImage uploads f as the profile picture and drops the previous one.
func (s *ProfileService) SetImage(ctx context.Context, user *domain.User, f imaging.File) (domain.UserProfile, error) {
	p, err := s.Get(ctx, user)
	if err != nil {
		return domain.UserProfile{}, err
	}
	urls, err := s.Media.UploadAll(ctx, "profiles/"+user.ID, []imaging.File{f})
	if err != nil {
		return domain.UserProfile{}, errors.Wrap(err, "upload profile image")
	}
	old := p.ProfileImage
	p.ProfileImage = urls[0]
	if err := s.Profiles.Save(ctx, p); err != nil {
		s.Media.DeleteAll(context.WithoutCancel(ctx), urls)
		return domain.UserProfile{}, err
	}
	if old != "" {
		s.Media.DeleteAll(ctx, []string{old})
	}
	return s.Profiles.Get(ctx, user.ID)
}
