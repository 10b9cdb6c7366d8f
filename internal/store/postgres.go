package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/giahoa6/crm/internal/model"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"

	apperrors "github.com/giahoa6/crm/internal/errors"
)

// CustomersChannel is channel name used by customers table trigger for pg_notify
const CustomersChannel = "customers_changes"

const customerColumns = "id, created_at, full_name, phone, preferred_model, preferred_color, reason_not_buying, status"

type postgresCustomerStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCustomerStore builds store on top of customers table
func NewPostgresCustomerStore(p *pgxpool.Pool) CustomerStore {
	return &postgresCustomerStore{pool: p}
}

func (s *postgresCustomerStore) SelectAll(ctx context.Context) ([]model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customers"

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]model.Customer, 0)
	for rows.Next() {
		c, err := s.scanRow(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *postgresCustomerStore) Insert(ctx context.Context, c model.Customer) (model.Customer, error) {
	q := `INSERT INTO customers(full_name, phone, preferred_model, preferred_color, reason_not_buying, status)
		  VALUES($1, $2, $3, $4, $5, $6)
		  RETURNING ` + customerColumns

	row := s.pool.QueryRow(ctx, q, c.FullName, c.Phone, c.PreferredModel, c.PreferredColor, c.ReasonNotBuying, string(c.Status))
	return s.scanRow(row)
}

func (s *postgresCustomerStore) Update(ctx context.Context, id int64, patch model.CustomerPatch) error {
	sets := make([]string, 0)
	args := make([]any, 0)

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FullName != nil {
		set("full_name", *patch.FullName)
	}
	if patch.Phone != nil {
		set("phone", *patch.Phone)
	}
	if patch.PreferredModel != nil {
		set("preferred_model", *patch.PreferredModel)
	}
	if patch.PreferredColor != nil {
		set("preferred_color", *patch.PreferredColor)
	}
	if patch.ReasonNotBuying != nil {
		set("reason_not_buying", *patch.ReasonNotBuying)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	q := fmt.Sprintf("UPDATE customers SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	comm, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}

	if comm.RowsAffected() == 0 {
		return apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer with id %d doesn't exist", id))
	}
	return nil
}

func (s *postgresCustomerStore) Subscribe(ctx context.Context) (Subscription, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection for listening - %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+CustomersChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to listen channel %s - %w", CustomersChannel, err)
	}

	listenCtx, cancel := context.WithCancel(context.Background())
	sub := &pgSubscription{
		conn:    conn,
		cancel:  cancel,
		changes: make(chan Change, changesBufferSize),
		done:    make(chan struct{}),
	}
	go sub.listen(listenCtx)

	return sub, nil
}

func (s *postgresCustomerStore) scanRow(row pgx.Row) (model.Customer, error) {
	var c model.Customer
	var status string

	if err := row.Scan(&c.ID, &c.CreatedAt, &c.FullName, &c.Phone, &c.PreferredModel, &c.PreferredColor, &c.ReasonNotBuying, &status); err != nil {
		return model.Customer{}, err
	}

	c.Status = model.Status(status)
	return withValidStatus(c)
}

type notificationPayload struct {
	Op string `json:"op"`
	ID int64  `json:"id"`
}

type pgSubscription struct {
	conn    *pgxpool.Conn
	cancel  context.CancelFunc
	changes chan Change
	done    chan struct{}

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

func (s *pgSubscription) Changes() <-chan Change {
	return s.changes
}

func (s *pgSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *pgSubscription) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
		// interrupted wait closes underlying connection, pool drops it on release
		s.conn.Release()
	})
	return nil
}

func (s *pgSubscription) listen(ctx context.Context) {
	defer close(s.done)
	defer close(s.changes)

	for {
		n, err := s.conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
			}
			return
		}

		var payload notificationPayload
		if err := json.Unmarshal([]byte(n.Payload), &payload); err != nil {
			logrus.Warnf("skipping malformed notification on channel %s - %v", n.Channel, err)
			continue
		}

		select {
		case s.changes <- Change{Op: Op(payload.Op), ID: payload.ID}:
		case <-ctx.Done():
			return
		}
	}
}
