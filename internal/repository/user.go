package repository

import (
	"context"
	"errors"

	"github.com/giahoa6/crm/internal/model"
	"github.com/giahoa6/crm/pkg/db/transactor"
	"github.com/jackc/pgx/v4"
)

const userColumns = "id, email, password_hash, role, created_at"

// UserRepository represents behavior for user repository
type UserRepository interface {
	Create(context.Context, *model.User) error
	FindByEmail(context.Context, string) (*model.User, error)
	FindByID(context.Context, string) (*model.User, error)
	FindAll(context.Context) ([]*model.User, error)
}

type postgresUserRepository struct {
	trxExec transactor.PgxWithinTransactionExecutor
}

// NewPostgresUserRepository builds postgres user repository
func NewPostgresUserRepository(trxExec transactor.PgxWithinTransactionExecutor) UserRepository {
	return &postgresUserRepository{trxExec: trxExec}
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	q := "SELECT " + userColumns + " FROM users WHERE email = $1"
	row := r.trxExec.Executor(ctx).QueryRow(ctx, q, email)
	return r.scanRow(row)
}

func (r *postgresUserRepository) Create(ctx context.Context, u *model.User) error {
	q := "INSERT INTO users(id, email, password_hash, role, created_at) VALUES($1, $2, $3, $4, $5)"
	if _, err := r.trxExec.Executor(ctx).Exec(ctx, q, u.ID, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt); err != nil {
		return err
	}
	return nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	q := "SELECT " + userColumns + " FROM users WHERE id = $1"
	row := r.trxExec.Executor(ctx).QueryRow(ctx, q, id)
	return r.scanRow(row)
}

func (r *postgresUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	q := "SELECT " + userColumns + " FROM users ORDER BY created_at DESC"

	rows, err := r.trxExec.Executor(ctx).Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		u, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *postgresUserRepository) scanRow(row pgx.Row) (*model.User, error) {
	var u model.User
	var role string

	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	u.Role = model.Role(role)
	return &u, nil
}
