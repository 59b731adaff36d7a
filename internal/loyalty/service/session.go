package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/pkg/cryptox"
	"github.com/stampcard/loyalty/pkg/jwtx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

// ErrInvalidCredentials covers unknown username, wrong password and
// deactivated accounts. Deliberately indistinct.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionService authenticates users and issues session tokens.
type SessionService struct {
	Store  store.Store
	Signer *jwtx.Signer
}

// Login verifies the password and returns a signed session token.
func (s *SessionService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempt for unknown username", slog.String("username", username))
			return "", domain.User{}, ErrInvalidCredentials
		}
		return "", domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("login password mismatch", slog.String("user_id", user.ID))
		return "", domain.User{}, ErrInvalidCredentials
	}

	if !user.Active {
		log.Warn("login attempt for deactivated account", slog.String("user_id", user.ID))
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.Signer.Sign(user.ID, user.Role)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return token, user, nil
}
