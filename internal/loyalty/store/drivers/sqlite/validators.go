package sqlite

import (
	"context"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
)

type validatorsRepo struct {
	db dbtx
}

func (r *validatorsRepo) GetValidatorByUserID(ctx context.Context, userID string) (domain.Validator, error) {
	var v domain.Validator
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, vendor_id, created_at FROM validators WHERE user_id = ?`,
		userID).Scan(&v.ID, &v.UserID, &v.VendorID, &v.CreatedAt)
	if err != nil {
		return domain.Validator{}, mapNotFound(err)
	}
	return v, nil
}

func (r *validatorsRepo) ListVendorValidators(ctx context.Context, vendorID string) ([]domain.Validator, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, vendor_id, created_at FROM validators WHERE vendor_id = ? ORDER BY created_at`,
		vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Validator
	for rows.Next() {
		var v domain.Validator
		if err := rows.Scan(&v.ID, &v.UserID, &v.VendorID, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *validatorsRepo) CreateValidator(ctx context.Context, v domain.Validator) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO validators (id, user_id, vendor_id, created_at) VALUES (?, ?, ?, ?)`,
		v.ID, v.UserID, v.VendorID, v.CreatedAt)
	return mapConstraint(err)
}

func (r *validatorsRepo) DeleteValidator(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM validators WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
