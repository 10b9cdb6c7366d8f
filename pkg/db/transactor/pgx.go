package transactor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgtype/pgxtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type pgxTxKey struct{}

func withPgxTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, pgxTxKey{}, tx)
}

func pgxTxValue(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(pgxTxKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// PgxTransactor is Transactor on top of pgx pool
type PgxTransactor interface {
	Transactor
	WithinTransactionWithOptions(context.Context, func(context.Context) error, pgx.TxOptions) error
}

type pgxTransactor struct {
	pool *pgxpool.Pool
}

// NewPgxTransactor builds PgxTransactor
func NewPgxTransactor(p *pgxpool.Pool) PgxTransactor {
	return &pgxTransactor{pool: p}
}

func (t *pgxTransactor) WithinTransaction(ctx context.Context, txFunc func(context.Context) error) error {
	return t.WithinTransactionWithOptions(ctx, txFunc, pgx.TxOptions{})
}

// WithinTransactionWithOptions joins transaction already present in ctx, otherwise begins new one.
// Transaction is rolled back if txFunc fails or panics.
func (t *pgxTransactor) WithinTransactionWithOptions(ctx context.Context, txFunc func(context.Context) error, opts pgx.TxOptions) (err error) {
	if pgxTxValue(ctx) != nil {
		return txFunc(ctx)
	}

	tx, err := t.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction - %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("failed to rollback transaction - %w", rbErr))
			}
			return
		}

		if cmErr := tx.Commit(ctx); cmErr != nil {
			err = fmt.Errorf("failed to commit transaction - %w", cmErr)
		}
	}()

	return txFunc(withPgxTx(ctx, tx))
}

// PgxWithinTransactionExecutor returns executor bound to transaction from ctx if any
type PgxWithinTransactionExecutor interface {
	Executor(ctx context.Context) PgxQueryExecutor
}

// PgxQueryExecutor is common part of pgx pool and transaction
type PgxQueryExecutor interface {
	pgxtype.Querier
	Begin(context.Context) (pgx.Tx, error)
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
	CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error)
}

type pgxWithinTransactionExecutor struct {
	pool *pgxpool.Pool
}

// NewPgxWithinTransactionExecutor builds PgxWithinTransactionExecutor
func NewPgxWithinTransactionExecutor(p *pgxpool.Pool) PgxWithinTransactionExecutor {
	return &pgxWithinTransactionExecutor{pool: p}
}

func (e *pgxWithinTransactionExecutor) Executor(ctx context.Context) PgxQueryExecutor {
	if tx := pgxTxValue(ctx); tx != nil {
		return tx
	}
	return e.pool
}
