package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/giahoa6/crm/internal/catalog/mocks"
	"github.com/giahoa6/crm/internal/model"
	"github.com/giahoa6/crm/internal/store"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	apperrors "github.com/giahoa6/crm/internal/errors"
	storeMocks "github.com/giahoa6/crm/internal/store/mocks"
)

const (
	eventuallyWait = 2 * time.Second
	eventuallyTick = 10 * time.Millisecond
)

var testCatalogCtx = context.Background()

type catalogTestSuite struct {
	suite.Suite
	memStore     *store.MemoryCustomerStore
	notifierMock *mocks.Notifier
	catalog      *Catalog
	cancel       context.CancelFunc
	runErr       chan error
}

func (s *catalogTestSuite) SetupTest() {
	s.memStore = store.NewMemoryCustomerStore()
	s.notifierMock = mocks.NewNotifier(s.T())
	s.catalog = New(s.memStore, s.notifierMock)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.runErr = make(chan error, 1)

	go func() {
		s.runErr <- s.catalog.Run(ctx)
	}()

	s.Require().Eventually(func() bool {
		return !s.catalog.State().Loading
	}, eventuallyWait, eventuallyTick, "initial load must finish")
}

func (s *catalogTestSuite) TearDownTest() {
	s.cancel()
	s.Require().NoError(<-s.runErr, "run must stop without error on cancel")
}

func (s *catalogTestSuite) waitForCustomers(n int) State {
	s.Require().Eventually(func() bool {
		return len(s.catalog.State().Customers) == n
	}, eventuallyWait, eventuallyTick, "catalog must contain %d customers", n)
	return s.catalog.State()
}

func (s *catalogTestSuite) TestCreateAlwaysNew() {
	s.notifierMock.On("Notify", "Khách hàng mới!", "Nguyen Van A vừa được thêm vào hệ thống.").Once()

	s.T().Log("create customer and it must get status New")
	{
		created, err := s.catalog.Create(testCatalogCtx, model.NewCustomer{FullName: "Nguyen Van A", Phone: "0900000000"})
		s.Require().NoError(err, "create must succeed")
		s.Assert().Equal(model.StatusNew, created.Status, "created customer must have status New")
	}

	s.T().Log("list is refreshed from change feed")
	{
		state := s.waitForCustomers(1)
		s.Assert().Equal(model.StatusNew, state.Customers[0].Status, "listed customer must have status New")
		s.Assert().Equal("Mới", state.Customers[0].Status.Label(), "status label must be Vietnamese")
	}
}

func (s *catalogTestSuite) TestUpdateRefreshesThroughFeed() {
	s.notifierMock.On("Notify", mock.AnythingOfType("string"), mock.AnythingOfType("string"))

	created, err := s.catalog.Create(testCatalogCtx, model.NewCustomer{FullName: "Tran Thi B", Phone: "0912345678"})
	s.Require().NoError(err, "create must succeed")
	s.waitForCustomers(1)

	s.T().Log("update status and wait for the read model")
	{
		closed := model.StatusClosed
		err := s.catalog.Update(testCatalogCtx, created.ID, model.CustomerPatch{Status: &closed})
		s.Require().NoError(err, "update must succeed")

		s.Require().Eventually(func() bool {
			c, ok := s.catalog.Find(created.ID)
			return ok && c.Status == model.StatusClosed
		}, eventuallyWait, eventuallyTick, "status change must be reflected")
	}

	s.T().Log("stats reflect the closed deal")
	{
		stats := s.catalog.Stats()
		s.Assert().Equal(1, stats.Total, "one customer expected")
		s.Assert().Equal(1, stats.ByStatus[model.StatusClosed], "one closed customer expected")
		s.Assert().Equal(0, stats.ByStatus[model.StatusNew], "no new customers expected")
	}
}

func (s *catalogTestSuite) TestUpdateMissingCustomer() {
	name := "Nobody"

	s.T().Log("update of unknown customer fails and surfaces error")
	{
		err := s.catalog.Update(testCatalogCtx, 404, model.CustomerPatch{FullName: &name})
		s.Require().Error(err, "customer doesn't exist but no error raised")
		s.Assert().NotEmpty(s.catalog.State().Error, "error must be surfaced")
		s.Assert().Empty(s.catalog.State().Customers, "list must stay unchanged")
	}
}

func (s *catalogTestSuite) TestUpdateInvalidStatus() {
	bogus := model.Status("Sold")

	s.T().Log("update with status outside of the closed set is rejected")
	{
		err := s.catalog.Update(testCatalogCtx, 1, model.CustomerPatch{Status: &bogus})
		s.Require().Error(err, "invalid status but no error raised")
		s.Assert().NotEmpty(s.catalog.State().Error, "error must be surfaced")
	}
}

// start catalog test suite
func TestCatalogTestSuite(t *testing.T) {
	suite.Run(t, new(catalogTestSuite))
}

func TestFailedWritesLeaveListUnchanged(t *testing.T) {
	ctx := context.Background()
	storeMock := storeMocks.NewCustomerStore(t)
	c := New(storeMock, nil)

	loaded := []model.Customer{
		{ID: 1, FullName: "Le Van C", CreatedAt: time.Now().UTC(), Status: model.StatusPotential},
	}

	storeMock.On("SelectAll", ctx).Return(loaded, nil).Once()
	storeMock.On("Insert", ctx, mock.AnythingOfType("model.Customer")).Return(model.Customer{}, errors.New("permission denied for table customers")).Once()
	storeMock.On("Update", ctx, int64(1), mock.AnythingOfType("model.CustomerPatch")).Return(errors.New("row level security violation")).Once()

	if err := c.Load(ctx); err != nil {
		t.Fatalf("load must succeed - %v", err)
	}
	before := c.State()

	t.Log("failed create")
	{
		_, err := c.Create(ctx, model.NewCustomer{FullName: "Pham Thi D", Phone: "0987654321"})
		if err == nil {
			t.Fatal("insert failed but no error raised")
		}

		after := c.State()
		if after.Error != "permission denied for table customers" {
			t.Errorf("store message must be surfaced, got %q", after.Error)
		}
		if len(after.Customers) != 1 || after.Version != before.Version {
			t.Error("failed create must leave list unchanged")
		}
	}

	t.Log("failed update")
	{
		phone := "0000"
		err := c.Update(ctx, 1, model.CustomerPatch{Phone: &phone})
		if err == nil {
			t.Fatal("update failed but no error raised")
		}

		after := c.State()
		if after.Error == "" {
			t.Error("error must be surfaced")
		}
		if after.Customers[0].Phone != before.Customers[0].Phone {
			t.Error("failed update must not patch local list")
		}
	}
}

func TestCreatePassesStatusNewToStore(t *testing.T) {
	ctx := context.Background()
	storeMock := storeMocks.NewCustomerStore(t)
	notifierMock := mocks.NewNotifier(t)
	c := New(storeMock, notifierMock)

	storeMock.On("Insert", ctx, mock.MatchedBy(func(row model.Customer) bool {
		return row.Status == model.StatusNew
	})).Return(model.Customer{ID: 5, FullName: "Hoang Van E", Status: model.StatusNew}, nil).Once()
	notifierMock.On("Notify", "Khách hàng mới!", "Hoang Van E vừa được thêm vào hệ thống.").Once()

	t.Log("insert row always carries status New")
	{
		if _, err := c.Create(ctx, model.NewCustomer{FullName: "Hoang Van E"}); err != nil {
			t.Fatalf("create must succeed - %v", err)
		}
	}
}

func TestLoadFailureClearsList(t *testing.T) {
	ctx := context.Background()
	storeMock := storeMocks.NewCustomerStore(t)
	c := New(storeMock, nil)

	storeMock.On("SelectAll", ctx).Return([]model.Customer{{ID: 1, Status: model.StatusNew}}, nil).Once()
	storeMock.On("SelectAll", ctx).Return(nil, errors.New("connection reset by peer")).Once()

	if err := c.Load(ctx); err != nil {
		t.Fatalf("first load must succeed - %v", err)
	}

	t.Log("resolved failure clears list and terminates loading")
	{
		if err := c.Load(ctx); err == nil {
			t.Fatal("load failed but no error raised")
		}

		state := c.State()
		if state.Loading {
			t.Error("loading must be terminated")
		}
		if len(state.Customers) != 0 {
			t.Error("list must be cleared")
		}
		if state.Error != "connection reset by peer" {
			t.Errorf("unexpected error text %q", state.Error)
		}
	}
}

func TestRunStopsOnClosedFeed(t *testing.T) {
	storeMock := storeMocks.NewCustomerStore(t)
	sub := &brokenSubscription{changes: make(chan store.Change), err: errors.New("listener connection lost")}
	close(sub.changes)

	storeMock.On("Subscribe", mock.Anything).Return(sub, nil).Once()
	storeMock.On("SelectAll", mock.Anything).Return([]model.Customer{}, nil).Once()

	t.Log("broken feed is reported by run")
	{
		err := New(storeMock, nil).Run(context.Background())
		if err == nil || !errors.Is(err, sub.err) {
			t.Fatalf("feed error must be returned, got %v", err)
		}
		if !sub.closed {
			t.Error("subscription must be closed when run returns")
		}
	}
}

type brokenSubscription struct {
	changes chan store.Change
	err     error
	closed  bool
}

func (s *brokenSubscription) Changes() <-chan store.Change { return s.changes }
func (s *brokenSubscription) Err() error                   { return s.err }
func (s *brokenSubscription) Close() error {
	s.closed = true
	return nil
}

// flakyFeedStore loses its first change feed, later subscriptions are healthy
type flakyFeedStore struct {
	*store.MemoryCustomerStore
	subscribes atomic.Int32
}

func (s *flakyFeedStore) Subscribe(ctx context.Context) (store.Subscription, error) {
	if s.subscribes.Add(1) == 1 {
		sub := &brokenSubscription{changes: make(chan store.Change), err: errors.New("listener connection lost")}
		close(sub.changes)
		return sub, nil
	}
	return s.MemoryCustomerStore.Subscribe(ctx)
}

func TestFollowResubscribesBrokenFeed(t *testing.T) {
	flaky := &flakyFeedStore{MemoryCustomerStore: store.NewMemoryCustomerStore()}

	c := New(flaky, nil)
	c.newBackOff = func() backoff.BackOff {
		return backoff.NewConstantBackOff(10 * time.Millisecond)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Follow(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	t.Log("broken feed is resubscribed")
	{
		require.Eventually(t, func() bool {
			return flaky.subscribes.Load() >= 2
		}, eventuallyWait, eventuallyTick, "second subscription must be made")
	}

	t.Log("writes after resubscription reach the read model")
	{
		created, err := c.Create(testCatalogCtx, model.NewCustomer{FullName: "Nguyen Van A", Phone: "0901234567"})
		require.NoError(t, err, "create must succeed")

		require.Eventually(t, func() bool {
			customer, ok := c.Find(created.ID)
			return ok && customer.FullName == "Nguyen Van A"
		}, eventuallyWait, eventuallyTick, "read model must catch up with the store")
		require.Equal(t, int32(2), flaky.subscribes.Load(), "healthy feed must not be resubscribed")
	}
}

func TestFollowStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		New(store.NewMemoryCustomerStore(), nil).Follow(ctx)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(eventuallyWait):
		t.Fatal("follow must return once context is done")
	}
}

func TestGetRefetchesOnMiss(t *testing.T) {
	memStore := store.NewMemoryCustomerStore()
	c := New(memStore, nil)
	require.NoError(t, c.Load(testCatalogCtx), "initial load must succeed")

	created, err := memStore.Insert(testCatalogCtx, model.Customer{FullName: "Pham Thi D", Phone: "0900000000", Status: model.StatusNew})
	require.NoError(t, err, "insert must succeed")

	t.Log("row written before its change notification is found")
	{
		_, ok := c.Find(created.ID)
		require.False(t, ok, "read model must not know the row yet")

		customer, err := c.Get(testCatalogCtx, created.ID)
		require.NoError(t, err, "customer must be found after refetch")
		require.Equal(t, "Pham Thi D", customer.FullName)
		require.Len(t, c.State().Customers, 1, "refetch must update the list")
	}

	t.Log("missing customer is reported as not found")
	{
		_, err := c.Get(testCatalogCtx, 999)
		require.True(t, apperrors.IsNotFound(err), "not found error expected, got %v", err)
	}
}
