package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"emytrends/internal/domain"
	"emytrends/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repos.ErrUserNotFound) {
			return nil, ErrBadCreds
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(ctx, sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Users.UnbindSession(ctx, sid)
}

func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	return s.Users.SessionUser(ctx, sid)
}

// Customers lists every non-admin account.
func (s *AuthService) Customers(ctx context.Context) ([]domain.User, error) {
	return s.Users.List(ctx)
}

// DeleteCustomer removes a customer and their sessions, carts, addresses,
// profile and wishlist. Admin accounts cannot be removed this way.
func (s *AuthService) DeleteCustomer(ctx context.Context, id string) error {
	u, err := s.Users.ByID(ctx, id)
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return ErrForbidden
	}
	return s.Users.DeleteUserCascade(ctx, id)
}
