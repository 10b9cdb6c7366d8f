package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/giahoa6/crm/internal/model"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/giahoa6/crm/internal/errors"
)

const (
	customersCollection = "customers"
	countersCollection  = "counters"
)

type sequence struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

type mongoCustomerStore struct {
	customers *mongo.Collection
	counters  *mongo.Collection
}

// NewMongoCustomerStore builds store on top of customers collection,
// numeric ids are taken from counters collection
func NewMongoCustomerStore(db *mongo.Database) CustomerStore {
	return &mongoCustomerStore{
		customers: db.Collection(customersCollection),
		counters:  db.Collection(countersCollection),
	}
}

func (s *mongoCustomerStore) SelectAll(ctx context.Context) ([]model.Customer, error) {
	cursor, err := s.customers.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	customers := make([]model.Customer, 0)
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}

	for i := range customers {
		if customers[i], err = withValidStatus(customers[i]); err != nil {
			return nil, err
		}
	}
	return customers, nil
}

func (s *mongoCustomerStore) Insert(ctx context.Context, c model.Customer) (model.Customer, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return model.Customer{}, fmt.Errorf("failed to generate customer id - %w", err)
	}

	c.ID = id
	c.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := s.customers.InsertOne(ctx, &c); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (s *mongoCustomerStore) Update(ctx context.Context, id int64, patch model.CustomerPatch) error {
	set := bson.M{}
	if patch.FullName != nil {
		set["fullName"] = *patch.FullName
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.PreferredModel != nil {
		set["preferredModel"] = *patch.PreferredModel
	}
	if patch.PreferredColor != nil {
		set["preferredColor"] = *patch.PreferredColor
	}
	if patch.ReasonNotBuying != nil {
		set["reasonNotBuying"] = *patch.ReasonNotBuying
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}

	if len(set) == 0 {
		return nil
	}

	res, err := s.customers.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer with id %d doesn't exist", id))
	}
	return nil
}

func (s *mongoCustomerStore) Subscribe(ctx context.Context) (Subscription, error) {
	stream, err := s.customers.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("failed to open change stream on %s - %w", customersCollection, err)
	}

	listenCtx, cancel := context.WithCancel(context.Background())
	sub := &mongoSubscription{
		stream:  stream,
		cancel:  cancel,
		changes: make(chan Change, changesBufferSize),
		done:    make(chan struct{}),
	}
	go sub.listen(listenCtx)

	return sub, nil
}

func (s *mongoCustomerStore) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var seq sequence
	err := s.counters.FindOneAndUpdate(ctx, bson.M{"_id": customersCollection}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&seq)
	if err != nil {
		return 0, err
	}
	return seq.Seq, nil
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID int64 `bson:"_id"`
	} `bson:"documentKey"`
}

func (e changeEvent) op() (Op, bool) {
	switch e.OperationType {
	case "insert":
		return OpInsert, true
	case "update", "replace":
		return OpUpdate, true
	case "delete":
		return OpDelete, true
	default:
		return "", false
	}
}

type mongoSubscription struct {
	stream  *mongo.ChangeStream
	cancel  context.CancelFunc
	changes chan Change
	done    chan struct{}

	mu  sync.Mutex
	err error

	closeOnce sync.Once
	closeErr  error
}

func (s *mongoSubscription) Changes() <-chan Change {
	return s.changes
}

func (s *mongoSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *mongoSubscription) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
		s.closeErr = s.stream.Close(context.Background())
	})
	return s.closeErr
}

func (s *mongoSubscription) listen(ctx context.Context) {
	defer close(s.done)
	defer close(s.changes)

	for s.stream.Next(ctx) {
		var ev changeEvent
		if err := s.stream.Decode(&ev); err != nil {
			logrus.Warnf("skipping undecodable change event - %v", err)
			continue
		}

		op, ok := ev.op()
		if !ok {
			continue
		}

		select {
		case s.changes <- Change{Op: op, ID: ev.DocumentKey.ID}:
		case <-ctx.Done():
			return
		}
	}

	if err := s.stream.Err(); err != nil && ctx.Err() == nil && !errors.Is(err, context.Canceled) {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
	}
}
