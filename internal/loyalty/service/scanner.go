package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/pkg/scantoken"
	"github.com/stampcard/loyalty/pkg/slogx"
)

// ErrNotValidator reports a vendor-scoped scan attempted by a user with no
// validator binding.
var ErrNotValidator = errors.New("caller is not a validator for any vendor")

// ScannerService implements the scan verification pipeline: decrypt, parse,
// resolve user, and (for validator scans) resolve vendor promotions. Every
// scan is a self-contained operation with no session state.
type ScannerService struct {
	Store store.Store
	Codec *scantoken.Codec
}

// Scan runs the generic flow: decode the token and resolve the referenced
// user, requiring an active account. Terminal non-valid outcomes are carried
// in the result's Status; the error return is reserved for store failures.
func (s *ScannerService) Scan(ctx context.Context, token string) (domain.ScanResult, error) {
	log := slogx.FromContext(ctx)

	msg, status := s.decode(ctx, token)
	if status != domain.ScanValid {
		return domain.ScanResult{Status: status}, nil
	}

	// Resolve the embedded identity against live user state. The lookup
	// distinguishes missing from deactivated for the error taxonomy.
	user, err := s.Store.Users().GetUserByID(ctx, msg.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("scan for unknown user", slog.String("user_id", msg.UserID))
			return domain.ScanResult{Status: domain.ScanUnknownUser}, nil
		}
		return domain.ScanResult{}, fmt.Errorf("failed to resolve scanned user: %w", err)
	}
	if !user.Active {
		log.Warn("scan for inactive user", slog.String("user_id", user.ID))
		return domain.ScanResult{Status: domain.ScanInactiveUser}, nil
	}

	return domain.ScanResult{
		Status:       domain.ScanValid,
		User:         &user,
		TimestampUTC: msg.TimestampUTC,
	}, nil
}

// ValidateForVendor runs the validator flow: the shared decode/resolve path,
// then promotions scoped to the calling validator's vendor. An empty
// promotion list is a valid result, not an error.
func (s *ScannerService) ValidateForVendor(ctx context.Context, token, validatorUserID string) (domain.ScanResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Resolve the caller's vendor. This is the authorization boundary
	// between the two flows; the decode pipeline itself is identical.
	validator, err := s.Store.Validators().GetValidatorByUserID(ctx, validatorUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ScanResult{}, ErrNotValidator
		}
		return domain.ScanResult{}, fmt.Errorf("failed to resolve validator: %w", err)
	}

	// 2. Shared decode/resolve path.
	result, err := s.Scan(ctx, token)
	if err != nil || !result.OK() {
		return result, err
	}

	// 3. Promotions live for (vendor, now). The scanned user qualifies for
	// whatever the vendor is currently running.
	promotions, err := s.Store.Promotions().ListActivePromotions(ctx, validator.VendorID, time.Now().UTC())
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("failed to list promotions: %w", err)
	}
	if promotions == nil {
		promotions = []domain.Promotion{}
	}
	result.Promotions = promotions

	log.Debug("validator scan completed",
		slog.String("vendor_id", validator.VendorID),
		slog.String("user_id", result.User.ID),
		slog.Int("promotions", len(promotions)),
	)
	return result, nil
}

// EncryptForScanner produces the token a given user's QR code would carry.
// It reuses the issuance path exactly, so the output is indistinguishable
// from a genuine stored token to any decoder.
func (s *ScannerService) EncryptForScanner(ctx context.Context, userID string) (string, error) {
	issued, err := s.Codec.Encode(userID)
	if err != nil {
		return "", err
	}
	return issued.Token, nil
}

// decode maps the codec's error kinds onto scan statuses. CryptoErrors never
// escape this boundary.
func (s *ScannerService) decode(ctx context.Context, token string) (scantoken.Message, domain.ScanStatus) {
	log := slogx.FromContext(ctx)

	msg, err := s.Codec.Decode(token)
	switch {
	case err == nil:
		return msg, domain.ScanValid
	case errors.Is(err, scantoken.ErrDecryptionFailed):
		log.Warn("scan token failed to decrypt")
		return scantoken.Message{}, domain.ScanDecryptionFailed
	case errors.Is(err, scantoken.ErrExpired):
		return scantoken.Message{}, domain.ScanTokenExpired
	default:
		return scantoken.Message{}, domain.ScanMalformedToken
	}
}
