package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/giahoa6/crm/internal/model"
	"github.com/giahoa6/crm/pkg/db/transactor"
	"github.com/jackc/pgx/v4"

	apperrors "github.com/giahoa6/crm/internal/errors"
)

const factorColumns = "id, user_id, secret, status, created_at"

// FactorRepository represents behavior for second factor repository
type FactorRepository interface {
	Create(context.Context, *model.Factor) error
	FindByID(context.Context, string) (*model.Factor, error)
	FindByUserID(context.Context, string) ([]*model.Factor, error)
	MarkVerified(context.Context, string) error
}

type postgresFactorRepository struct {
	trxExec transactor.PgxWithinTransactionExecutor
}

// NewPostgresFactorRepository builds postgres factor repository
func NewPostgresFactorRepository(trxExec transactor.PgxWithinTransactionExecutor) FactorRepository {
	return &postgresFactorRepository{trxExec: trxExec}
}

func (r *postgresFactorRepository) Create(ctx context.Context, f *model.Factor) error {
	q := "INSERT INTO factors(" + factorColumns + ") VALUES($1, $2, $3, $4, $5)"
	_, err := r.trxExec.Executor(ctx).Exec(ctx, q, f.ID, f.UserID, f.Secret, string(f.Status), f.CreatedAt)
	return err
}

func (r *postgresFactorRepository) FindByID(ctx context.Context, id string) (*model.Factor, error) {
	q := "SELECT " + factorColumns + " FROM factors WHERE id = $1"

	f, err := r.scanRow(r.trxExec.Executor(ctx).QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}

func (r *postgresFactorRepository) FindByUserID(ctx context.Context, userID string) ([]*model.Factor, error) {
	q := "SELECT " + factorColumns + " FROM factors WHERE user_id = $1 ORDER BY created_at DESC"

	rows, err := r.trxExec.Executor(ctx).Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	factors := make([]*model.Factor, 0)
	for rows.Next() {
		f, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		factors = append(factors, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return factors, nil
}

func (r *postgresFactorRepository) MarkVerified(ctx context.Context, id string) error {
	q := "UPDATE factors SET status = $1 WHERE id = $2"

	comm, err := r.trxExec.Executor(ctx).Exec(ctx, q, string(model.FactorVerified), id)
	if err != nil {
		return err
	}

	if comm.RowsAffected() == 0 {
		return apperrors.NewEntryNotFoundErr(fmt.Sprintf("factor with id %s doesn't exist", id))
	}
	return nil
}

func (r *postgresFactorRepository) scanRow(row pgx.Row) (*model.Factor, error) {
	var f model.Factor
	var status string

	if err := row.Scan(&f.ID, &f.UserID, &f.Secret, &status, &f.CreatedAt); err != nil {
		return nil, err
	}

	f.Status = model.FactorStatus(status)
	return &f, nil
}
