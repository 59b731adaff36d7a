package service

import (
	"context"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/internal/loyalty/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// SetActive activates or deactivates an account. Deactivated users fail
// scans with an inactive status and cannot log in.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) error {
	return s.Store.Users().SetActive(ctx, userID, active)
}
