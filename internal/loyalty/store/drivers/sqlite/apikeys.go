package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
)

type apiKeysRepo struct {
	db dbtx
}

const apiKeyColumns = `id, name, token_hash, owner_user_id, revoked, revoked_at, created_at, last_used_at`

func scanAPIKey(row interface{ Scan(...any) error }) (domain.APIKey, error) {
	var (
		k          domain.APIKey
		revokedAt  sql.NullTime
		lastUsedAt sql.NullTime
	)
	err := row.Scan(
		&k.ID,
		&k.Name,
		&k.TokenHash,
		&k.OwnerUserID,
		&k.Revoked,
		&revokedAt,
		&k.CreatedAt,
		&lastUsedAt,
	)
	if err != nil {
		return domain.APIKey{}, mapNotFound(err)
	}
	k.RevokedAt = mapNullTimePtr(revokedAt)
	k.LastUsedAt = mapNullTimePtr(lastUsedAt)
	return k, nil
}

func (r *apiKeysRepo) GetAPIKeyByHash(ctx context.Context, hash string) (domain.APIKey, error) {
	return scanAPIKey(r.db.QueryRowContext(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE token_hash = ?`, hash))
}

func (r *apiKeysRepo) ListOwnerAPIKeys(ctx context.Context, ownerUserID string) ([]domain.APIKey, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE owner_user_id = ? ORDER BY created_at DESC`,
		ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.APIKey
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *apiKeysRepo) CreateAPIKey(ctx context.Context, k domain.APIKey) error {
	if k.CreatedAt.IsZero() {
		k.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (id, name, token_hash, owner_user_id, revoked, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		k.ID, k.Name, k.TokenHash, k.OwnerUserID, k.Revoked, k.CreatedAt)
	return mapConstraint(err)
}

func (r *apiKeysRepo) RevokeAPIKey(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE api_keys SET revoked = 1, revoked_at = ? WHERE id = ? AND revoked = 0`,
		at.UTC(), id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *apiKeysRepo) TouchAPIKey(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE api_keys SET last_used_at = ? WHERE id = ?`, at.UTC(), id)
	return err
}

func (r *apiKeysRepo) DeleteRevokedAPIKeysBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM api_keys WHERE revoked = 1 AND revoked_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
