package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/pkg/cryptox"
	"github.com/stampcard/loyalty/pkg/idx"
	"github.com/stampcard/loyalty/pkg/scantoken"
	"github.com/stampcard/loyalty/pkg/slogx"
)

var (
	ErrInvalidRegistration  = errors.New("username and password are required")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
)

// RegistrationService creates accounts and stamps each new user's QR token
// at issuance time.
type RegistrationService struct {
	Store store.Store
	Codec *scantoken.Codec
}

// Register creates a member account. The scanner token is encoded before the
// user row exists and stored against it in the same insert; the first scan
// of the printed QR code must resolve.
func (s *RegistrationService) Register(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidRegistration
	}

	// 2. Check availability up front for a friendly error; the unique index
	// still backstops races.
	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err == nil {
		return domain.User{}, ErrUsernameAlreadyTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("failed to check username availability: %w", err)
	}

	// 3. Hash the password.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// The very first account bootstraps the platform as admin; everyone
	// after that is a member.
	role := domain.RoleMember
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to check bootstrap state: %w", err)
	}
	if empty {
		role = domain.RoleAdmin
	}

	// 4. Mint the identity and its QR token.
	userID := idx.New().String()
	issued, err := s.Codec.Encode(userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to encode scanner token: %w", err)
	}

	user := domain.User{
		ID:           userID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		QRToken:      issued.Token,
		Active:       true,
	}

	// 5. Persist.
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameAlreadyTaken
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", user.Role),
		slog.String("qr_nonce", issued.Nonce),
	)
	return user, nil
}

// RefreshQRToken re-issues the user's scanner token: same userId, new
// timestamp. The previous token keeps decoding (the cipher has no token
// registry); refreshing only changes what the user's QR code displays.
func (s *RegistrationService) RefreshQRToken(ctx context.Context, userID string) (string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetActiveUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	issued, err := s.Codec.Encode(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to encode scanner token: %w", err)
	}

	if err := s.Store.Users().UpdateQRToken(ctx, user.ID, issued.Token); err != nil {
		return "", fmt.Errorf("failed to store refreshed token: %w", err)
	}

	log.Info("qr token refreshed", slog.String("user_id", user.ID), slog.String("qr_nonce", issued.Nonce))
	return issued.Token, nil
}
