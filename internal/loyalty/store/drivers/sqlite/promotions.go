package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
)

type promotionsRepo struct {
	db dbtx
}

const promotionColumns = `id, vendor_id, title, description, starts_at, ends_at, active, created_at, updated_at`

func scanPromotion(row interface{ Scan(...any) error }) (domain.Promotion, error) {
	var p domain.Promotion
	err := row.Scan(
		&p.ID,
		&p.VendorID,
		&p.Title,
		&p.Description,
		&p.StartsAt,
		&p.EndsAt,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Promotion{}, mapNotFound(err)
	}
	return p, nil
}

func (r *promotionsRepo) GetPromotionByID(ctx context.Context, id string) (domain.Promotion, error) {
	return scanPromotion(r.db.QueryRowContext(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE id = ?`, id))
}

func (r *promotionsRepo) ListVendorPromotions(ctx context.Context, vendorID string) ([]domain.Promotion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE vendor_id = ? ORDER BY created_at DESC`,
		vendorID)
	if err != nil {
		return nil, err
	}
	return collectPromotions(rows)
}

func (r *promotionsRepo) ListActivePromotions(ctx context.Context, vendorID string, now time.Time) ([]domain.Promotion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+promotionColumns+` FROM promotions
		 WHERE vendor_id = ? AND active = 1 AND starts_at <= ? AND ends_at >= ?
		 ORDER BY starts_at`,
		vendorID, now.UTC(), now.UTC())
	if err != nil {
		return nil, err
	}
	return collectPromotions(rows)
}

func (r *promotionsRepo) CreatePromotion(ctx context.Context, p domain.Promotion) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO promotions (id, vendor_id, title, description, starts_at, ends_at, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.VendorID, p.Title, p.Description, p.StartsAt.UTC(), p.EndsAt.UTC(), p.Active, p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *promotionsRepo) UpdatePromotion(ctx context.Context, p domain.Promotion) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE promotions
		 SET title = ?, description = ?, starts_at = ?, ends_at = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Description, p.StartsAt.UTC(), p.EndsAt.UTC(), p.Active, time.Now().UTC(), p.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *promotionsRepo) DeletePromotion(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *promotionsRepo) DeactivateEndedPromotions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE promotions SET active = 0, updated_at = ? WHERE active = 1 AND ends_at < ?`,
		now.UTC(), now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func collectPromotions(rows *sql.Rows) ([]domain.Promotion, error) {
	defer rows.Close()

	var out []domain.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
