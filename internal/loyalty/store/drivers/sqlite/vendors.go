package sqlite

import (
	"context"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
)

type vendorsRepo struct {
	db dbtx
}

func scanVendor(row interface{ Scan(...any) error }) (domain.Vendor, error) {
	var v domain.Vendor
	if err := row.Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return domain.Vendor{}, mapNotFound(err)
	}
	return v, nil
}

func (r *vendorsRepo) GetVendorByID(ctx context.Context, id string) (domain.Vendor, error) {
	return scanVendor(r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM vendors WHERE id = ?`, id))
}

func (r *vendorsRepo) GetVendorByName(ctx context.Context, name string) (domain.Vendor, error) {
	return scanVendor(r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM vendors WHERE name = ?`, name))
}

func (r *vendorsRepo) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM vendors ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *vendorsRepo) CreateVendor(ctx context.Context, v domain.Vendor) error {
	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vendors (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		v.ID, v.Name, v.CreatedAt, v.UpdatedAt)
	return mapConstraint(err)
}

func (r *vendorsRepo) DeleteVendor(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vendors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
