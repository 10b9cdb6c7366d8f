package repository

import (
	"context"
	"errors"

	"github.com/giahoa6/crm/internal/model"
	"github.com/giahoa6/crm/pkg/db/transactor"
	"github.com/jackc/pgx/v4"
)

const refreshTokenColumns = "id, session_id, user_id, fingerprint, expires_in, created_at, aal"

// RefreshTokenRepository represents behavior for refresh token repository
type RefreshTokenRepository interface {
	Create(context.Context, *model.RefreshToken) error
	FindTokensByUserID(context.Context, string) ([]*model.RefreshToken, error)
	DeleteByUserID(context.Context, string) error
	DeleteBySessionID(context.Context, string) error
	DeleteByID(context.Context, string) error
	FindByID(context.Context, string) (*model.RefreshToken, error)
}

type postgresRefreshTokenRepository struct {
	trxExec transactor.PgxWithinTransactionExecutor
}

// NewPostgresRefreshTokenRepository builds postgres refresh token repository
func NewPostgresRefreshTokenRepository(trxExec transactor.PgxWithinTransactionExecutor) RefreshTokenRepository {
	return &postgresRefreshTokenRepository{trxExec: trxExec}
}

func (r *postgresRefreshTokenRepository) Create(ctx context.Context, t *model.RefreshToken) error {
	q := "INSERT INTO refresh_tokens(" + refreshTokenColumns + ") VALUES($1, $2, $3, $4, $5, $6, $7)"
	_, err := r.trxExec.Executor(ctx).Exec(ctx, q, t.ID, t.SessionID, t.UserID, t.Fingerprint, t.ExpiresIn, t.CreatedAt, string(t.AAL))
	return err
}

func (r *postgresRefreshTokenRepository) FindTokensByUserID(ctx context.Context, userID string) ([]*model.RefreshToken, error) {
	q := "SELECT " + refreshTokenColumns + " FROM refresh_tokens WHERE user_id = $1"

	rows, err := r.trxExec.Executor(ctx).Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := make([]*model.RefreshToken, 0)
	for rows.Next() {
		tkn, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tkn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *postgresRefreshTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	q := "DELETE FROM refresh_tokens WHERE user_id = $1"
	_, err := r.trxExec.Executor(ctx).Exec(ctx, q, userID)
	return err
}

func (r *postgresRefreshTokenRepository) DeleteBySessionID(ctx context.Context, sessionID string) error {
	q := "DELETE FROM refresh_tokens WHERE session_id = $1"
	_, err := r.trxExec.Executor(ctx).Exec(ctx, q, sessionID)
	return err
}

func (r *postgresRefreshTokenRepository) DeleteByID(ctx context.Context, id string) error {
	q := "DELETE FROM refresh_tokens WHERE id = $1"
	_, err := r.trxExec.Executor(ctx).Exec(ctx, q, id)
	return err
}

func (r *postgresRefreshTokenRepository) FindByID(ctx context.Context, id string) (*model.RefreshToken, error) {
	q := "SELECT " + refreshTokenColumns + " FROM refresh_tokens WHERE id = $1"

	tkn, err := r.scanRow(r.trxExec.Executor(ctx).QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tkn, nil
}

func (r *postgresRefreshTokenRepository) scanRow(row pgx.Row) (*model.RefreshToken, error) {
	var tkn model.RefreshToken
	var aal string

	if err := row.Scan(&tkn.ID, &tkn.SessionID, &tkn.UserID, &tkn.Fingerprint, &tkn.ExpiresIn, &tkn.CreatedAt, &aal); err != nil {
		return nil, err
	}

	tkn.AAL = model.AssuranceLevel(aal)
	return &tkn, nil
}
