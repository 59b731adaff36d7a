package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/pkg/cryptox"
	"github.com/stampcard/loyalty/pkg/idx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

var (
	ErrInvalidAPIKey  = errors.New("invalid api key")
	ErrAPIKeyNotFound = errors.New("api key not found")
	ErrAPIKeyRevoked  = errors.New("api key has been revoked")
)

// APIKeyService mints and checks scanner application credentials. It
// satisfies httpx.APIKeyAuthenticator so the HTTP layer can accept X-API-Key
// alongside session tokens.
type APIKeyService struct {
	Store store.Store
}

// MintedKey carries the one-time raw key alongside the stored record.
type MintedKey struct {
	Key domain.APIKey

	// Raw is the full key value. Returned once at mint time; it cannot be
	// recovered afterwards.
	Raw string
}

// Mint creates a new API key owned by the given user. The raw key is
// returned exactly once.
func (s *APIKeyService) Mint(ctx context.Context, ownerUserID, name string) (MintedKey, error) {
	log := slogx.FromContext(ctx)

	if name == "" {
		return MintedKey{}, ErrInvalidAPIKey
	}

	if _, err := s.Store.Users().GetActiveUserByID(ctx, ownerUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return MintedKey{}, ErrUserNotFound
		}
		return MintedKey{}, fmt.Errorf("failed to fetch owner: %w", err)
	}

	raw, err := cryptox.GenerateAPIKey()
	if err != nil {
		return MintedKey{}, err
	}

	key := domain.APIKey{
		ID:          idx.New().String(),
		Name:        name,
		TokenHash:   cryptox.FingerprintToken(raw),
		OwnerUserID: ownerUserID,
	}
	if err := s.Store.APIKeys().CreateAPIKey(ctx, key); err != nil {
		return MintedKey{}, fmt.Errorf("failed to create api key: %w", err)
	}

	log.Info("api key minted",
		slog.String("key_id", key.ID),
		slog.String("owner_id", ownerUserID),
	)
	return MintedKey{Key: key, Raw: raw}, nil
}

// List returns the keys owned by the user. Hashes only, never raw values.
func (s *APIKeyService) List(ctx context.Context, ownerUserID string) ([]domain.APIKey, error) {
	return s.Store.APIKeys().ListOwnerAPIKeys(ctx, ownerUserID)
}

// Revoke marks the key unusable. Revoked keys linger until housekeeping
// purges them so audits can still see when a key died.
func (s *APIKeyService) Revoke(ctx context.Context, ownerUserID, keyID string) error {
	log := slogx.FromContext(ctx)

	key, err := s.getOwned(ctx, ownerUserID, keyID)
	if err != nil {
		return err
	}
	if key.Revoked {
		return ErrAPIKeyRevoked
	}

	if err := s.Store.APIKeys().RevokeAPIKey(ctx, keyID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}

	log.Info("api key revoked", slog.String("key_id", keyID))
	return nil
}

// AuthenticateKey resolves a raw API key to the owning account. All failure
// modes collapse to ErrInvalidAPIKey so callers cannot probe which keys
// exist.
func (s *APIKeyService) AuthenticateKey(ctx context.Context, rawKey string) (string, string, error) {
	if rawKey == "" {
		return "", "", ErrInvalidAPIKey
	}

	key, err := s.Store.APIKeys().GetAPIKeyByHash(ctx, cryptox.FingerprintToken(rawKey))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", "", ErrInvalidAPIKey
		}
		return "", "", fmt.Errorf("failed to look up api key: %w", err)
	}
	if key.Revoked {
		return "", "", ErrInvalidAPIKey
	}

	owner, err := s.Store.Users().GetActiveUserByID(ctx, key.OwnerUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", "", ErrInvalidAPIKey
		}
		return "", "", fmt.Errorf("failed to fetch key owner: %w", err)
	}

	// Best effort usage stamp; a failed touch should not fail the request.
	if err := s.Store.APIKeys().TouchAPIKey(ctx, key.ID, time.Now().UTC()); err != nil {
		slogx.FromContext(ctx).Warn("failed to touch api key",
			slog.String("key_id", key.ID),
			slog.Any("error", err),
		)
	}

	return owner.ID, owner.Role, nil
}

func (s *APIKeyService) getOwned(ctx context.Context, ownerUserID, keyID string) (domain.APIKey, error) {
	keys, err := s.Store.APIKeys().ListOwnerAPIKeys(ctx, ownerUserID)
	if err != nil {
		return domain.APIKey{}, fmt.Errorf("failed to list api keys: %w", err)
	}
	for _, k := range keys {
		if k.ID == keyID {
			return k, nil
		}
	}
	return domain.APIKey{}, ErrAPIKeyNotFound
}
