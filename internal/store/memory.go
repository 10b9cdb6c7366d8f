package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/giahoa6/crm/internal/model"

	apperrors "github.com/giahoa6/crm/internal/errors"
)

// MemoryCustomerStore keeps customers in process memory, used for local runs and tests
type MemoryCustomerStore struct {
	mu        sync.Mutex
	nextID    int64
	customers []model.Customer
	subs      map[*memorySubscription]struct{}
	now       func() time.Time
}

// NewMemoryCustomerStore builds empty in-memory store
func NewMemoryCustomerStore() *MemoryCustomerStore {
	return &MemoryCustomerStore{
		nextID: 1,
		subs:   make(map[*memorySubscription]struct{}),
		now:    time.Now,
	}
}

// Seed replaces store content without emitting changes
func (s *MemoryCustomerStore) Seed(customers ...model.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers = append([]model.Customer{}, customers...)
	for _, c := range customers {
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
}

func (s *MemoryCustomerStore) SelectAll(ctx context.Context) ([]model.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]model.Customer, 0, len(s.customers)), s.customers...), nil
}

func (s *MemoryCustomerStore) Insert(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := ctx.Err(); err != nil {
		return model.Customer{}, err
	}

	s.mu.Lock()
	c.ID = s.nextID
	s.nextID++
	c.CreatedAt = s.now().UTC()
	s.customers = append(s.customers, c)
	s.mu.Unlock()

	s.publish(Change{Op: OpInsert, ID: c.ID})
	return c, nil
}

func (s *MemoryCustomerStore) Update(ctx context.Context, id int64, patch model.CustomerPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	idx := -1
	for i := range s.customers {
		if s.customers[i].ID == id {
			idx = i
			break
		}
	}

	if idx < 0 {
		s.mu.Unlock()
		return apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer with id %d doesn't exist", id))
	}

	if patch.IsEmpty() {
		s.mu.Unlock()
		return nil
	}

	s.customers[idx] = s.customers[idx].MergePatch(patch)
	s.mu.Unlock()

	s.publish(Change{Op: OpUpdate, ID: id})
	return nil
}

func (s *MemoryCustomerStore) Subscribe(ctx context.Context) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sub := &memorySubscription{
		store:   s,
		changes: make(chan Change, changesBufferSize),
	}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	return sub, nil
}

func (s *MemoryCustomerStore) publish(ch Change) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sub := range s.subs {
		select {
		case sub.changes <- ch:
		default:
			// a full buffer already guarantees a pending refetch
		}
	}
}

func (s *MemoryCustomerStore) unsubscribe(sub *memorySubscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[sub]; ok {
		delete(s.subs, sub)
		close(sub.changes)
	}
}

type memorySubscription struct {
	store   *MemoryCustomerStore
	changes chan Change
}

func (s *memorySubscription) Changes() <-chan Change {
	return s.changes
}

func (s *memorySubscription) Err() error {
	return nil
}

func (s *memorySubscription) Close() error {
	s.store.unsubscribe(s)
	return nil
}
