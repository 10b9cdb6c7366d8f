// Package catalog keeps customers read model in sync with the record store.
// Writes go straight to the store, the list is rebuilt only from store change notifications.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/giahoa6/crm/internal/model"
	"github.com/giahoa6/crm/internal/store"
	"github.com/sirupsen/logrus"

	apperrors "github.com/giahoa6/crm/internal/errors"
)

// feed that lived this long is considered healthy, backoff starts over after it breaks
const healthyFeedPeriod = time.Minute

const (
	newCustomerTitle   = "Khách hàng mới!"
	newCustomerBodyFmt = "%s vừa được thêm vào hệ thống."
)

// Notifier delivers best-effort notifications, Notify must not block
type Notifier interface {
	Notify(title, body string)
}

// Stats is dashboard summary of the pipeline
type Stats struct {
	Total    int                  `json:"total"`
	ByStatus map[model.Status]int `json:"byStatus"`
}

// Catalog is customers read model with write operations forwarded to store
type Catalog struct {
	store    store.CustomerStore
	notifier Notifier

	// serializes fetches so that results are applied in request order
	loadMu sync.Mutex

	mu    sync.RWMutex
	state State

	newBackOff func() backoff.BackOff
}

// New builds catalog, it stays in loading state until first Load
func New(s store.CustomerStore, n Notifier) *Catalog {
	return &Catalog{
		store:      s,
		notifier:   n,
		state:      initialState(),
		newBackOff: resubscribeBackOff,
	}
}

// resubscribeBackOff never gives up, retries stop only with the context
func resubscribeBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0
	return b
}

// State returns current snapshot, Customers must be treated as read-only
func (c *Catalog) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Find looks up customer in the read model
func (c *Catalog) Find(id int64) (model.Customer, bool) {
	for _, cust := range c.State().Customers {
		if cust.ID == id {
			return cust, true
		}
	}
	return model.Customer{}, false
}

// Get returns customer from the read model. A miss refetches the list, so a row written
// before its change notification arrived is still found.
func (c *Catalog) Get(ctx context.Context, id int64) (model.Customer, error) {
	if customer, ok := c.Find(id); ok {
		return customer, nil
	}

	if err := c.Load(ctx); err != nil {
		return model.Customer{}, err
	}

	if customer, ok := c.Find(id); ok {
		return customer, nil
	}
	return model.Customer{}, apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer with id %d doesn't exist", id))
}

// Stats counts loaded customers per status
func (c *Catalog) Stats() Stats {
	customers := c.State().Customers

	stats := Stats{Total: len(customers), ByStatus: make(map[model.Status]int)}
	for _, s := range model.Statuses() {
		stats.ByStatus[s] = 0
	}

	for _, cust := range customers {
		stats.ByStatus[cust.Status]++
	}
	return stats
}

func (c *Catalog) dispatch(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, e)
}

// Load fetches all customers, loading flag is reset whatever the outcome
func (c *Catalog) Load(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.dispatch(LoadStarted{})

	customers, err := c.store.SelectAll(ctx)
	if err != nil {
		if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			c.dispatch(LoadAborted{})
			return err
		}

		remoteErr := apperrors.NewRemoteErr("select customers", err)
		c.dispatch(LoadFailed{Message: apperrors.Message(remoteErr)})
		return remoteErr
	}

	c.dispatch(LoadSucceeded{Customers: customers})
	return nil
}

// Create inserts customer with status New, list is refreshed by the change feed
func (c *Catalog) Create(ctx context.Context, fields model.NewCustomer) (model.Customer, error) {
	created, err := c.store.Insert(ctx, model.Customer{
		FullName:        fields.FullName,
		Phone:           fields.Phone,
		PreferredModel:  fields.PreferredModel,
		PreferredColor:  fields.PreferredColor,
		ReasonNotBuying: fields.ReasonNotBuying,
		Status:          model.StatusNew,
	})
	if err != nil {
		remoteErr := apperrors.NewRemoteErr("insert customer", err)
		c.dispatch(WriteFailed{Message: apperrors.Message(remoteErr)})
		return model.Customer{}, remoteErr
	}

	if c.notifier != nil {
		c.notifier.Notify(newCustomerTitle, fmt.Sprintf(newCustomerBodyFmt, created.FullName))
	}
	return created, nil
}

// Update applies partial update, list is refreshed by the change feed
func (c *Catalog) Update(ctx context.Context, id int64, patch model.CustomerPatch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		err := fmt.Errorf("unknown customer status %q", *patch.Status)
		c.dispatch(WriteFailed{Message: err.Error()})
		return err
	}

	if err := c.store.Update(ctx, id, patch); err != nil {
		remoteErr := apperrors.NewRemoteErr("update customer", err)
		c.dispatch(WriteFailed{Message: apperrors.Message(remoteErr)})
		return remoteErr
	}
	return nil
}

// Run subscribes to store changes and refetches on every notification.
// It blocks until ctx is done or the change feed breaks, subscription is closed on return.
func (c *Catalog) Run(ctx context.Context) error {
	sub, err := c.store.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to customer changes - %w", err)
	}
	defer func() {
		if err := sub.Close(); err != nil {
			logrus.Errorf("failed to close customer changes subscription - %v", err)
		}
	}()

	if err := c.Load(ctx); err != nil {
		logrus.Warnf("initial customers load failed - %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ch, ok := <-sub.Changes():
			if !ok {
				if err := sub.Err(); err != nil {
					return fmt.Errorf("customer changes feed stopped - %w", err)
				}
				return nil
			}

			logrus.WithFields(logrus.Fields{"op": ch.Op, "id": ch.ID}).Debug("customer change received")
			drain(sub.Changes())

			if err := c.Load(ctx); err != nil {
				logrus.Warnf("customers refetch failed - %v", err)
			}
		}
	}
}

// Follow keeps the read model subscribed for the whole lifetime of ctx.
// Broken change feed is resubscribed with exponential backoff, every resubscription refetches the list.
func (c *Catalog) Follow(ctx context.Context) {
	b := c.newBackOff()

	for {
		startedAt := time.Now()
		err := c.Run(ctx)
		if ctx.Err() != nil {
			return
		}

		if err == nil {
			err = errors.New("customer changes feed closed")
		}

		if time.Since(startedAt) >= healthyFeedPeriod {
			b.Reset()
		}

		wait := b.NextBackOff()
		logrus.Warnf("resubscribing to customer changes in %s - %v", wait, err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// drain skips already queued changes, single refetch covers all of them
func drain(changes <-chan store.Change) {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
