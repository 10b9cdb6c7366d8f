package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/giahoa6/crm/internal/model"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	apperrors "github.com/giahoa6/crm/internal/errors"
)

const connectionTimeout = 3 * time.Second

const (
	pgTestUser     = "test"
	pgTestPassword = "test"
	pgTestDB       = "crm"
)

func dockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available - %v", err)
	}

	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable - %v", err)
	}
	return pool
}

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dp := dockerPool(t)

	postgres, err := dp.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			fmt.Sprintf("POSTGRES_USER=%s", pgTestUser),
			fmt.Sprintf("POSTGRES_PASSWORD=%s", pgTestPassword),
			fmt.Sprintf("POSTGRES_DB=%s", pgTestDB),
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "failed to start postgresql")

	t.Cleanup(func() {
		if err := dp.Purge(postgres); err != nil {
			t.Logf("failed to purge postgresql - %v", err)
		}
	})

	pgURI := fmt.Sprintf("postgres://%s:%s@localhost:%s/%s?sslmode=disable", pgTestUser, pgTestPassword, postgres.GetPort("5432/tcp"), pgTestDB)

	var pool *pgxpool.Pool
	err = dp.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		var err error
		pool, err = pgxpool.Connect(ctx, pgURI)
		if err != nil {
			return err
		}
		return pool.Ping(ctx)
	})
	require.NoError(t, err, "failed to establish connection to postgresql")
	t.Cleanup(pool.Close)

	migrate(t, pool)
	return pool
}

func migrate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	files, err := filepath.Glob("../../migrations/V*__*.sql")
	require.NoError(t, err, "failed to list migrations")
	sort.Strings(files)

	for _, f := range files {
		sql, err := os.ReadFile(f)
		require.NoError(t, err, "failed to read migration %s", f)

		_, err = pool.Exec(context.Background(), string(sql))
		require.NoError(t, err, "failed to apply migration %s", f)
	}
}

func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	dp := dockerPool(t)

	mongodb, err := dp.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "failed to start mongodb")

	t.Cleanup(func() {
		if err := dp.Purge(mongodb); err != nil {
			t.Logf("failed to purge mongodb - %v", err)
		}
	})

	mongoURI := fmt.Sprintf("mongodb://localhost:%s/", mongodb.GetPort("27017/tcp"))

	var client *mongo.Client
	err = dp.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		var err error
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			return err
		}
		return client.Ping(ctx, readpref.Primary())
	})
	require.NoError(t, err, "failed to establish connection to mongodb")

	t.Cleanup(func() {
		if err := client.Disconnect(context.Background()); err != nil {
			t.Logf("failed to disconnect from mongodb - %v", err)
		}
	})

	return client.Database(pgTestDB)
}

func TestPostgresCustomerStore(t *testing.T) {
	s := NewPostgresCustomerStore(startPostgres(t))
	t.Log("running tests for postgres")
	testCustomerStore(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sub, err := s.Subscribe(ctx)
	require.NoError(t, err, "failed to subscribe")
	defer sub.Close()

	t.Log("insert is reported through notify trigger")
	{
		c, err := s.Insert(ctx, model.Customer{FullName: "Vo Van F", Phone: "0911111111", Status: model.StatusNew})
		require.NoError(t, err, "failed to insert customer")

		select {
		case ch := <-sub.Changes():
			require.Equal(t, Change{Op: OpInsert, ID: c.ID}, ch, "unexpected change")
		case <-ctx.Done():
			require.Fail(t, "change notification wasn't received")
		}
	}

	t.Log("closing subscription releases listener")
	{
		require.NoError(t, sub.Close(), "failed to close subscription")
		require.NoError(t, sub.Err(), "closed subscription must not report error")
	}
}

func TestMongoCustomerStore(t *testing.T) {
	db := startMongo(t)
	s := NewMongoCustomerStore(db)
	t.Log("running tests for mongo")
	testCustomerStore(t, s)

	t.Log("document with unknown status is rejected")
	{
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		_, err := db.Collection(customersCollection).InsertOne(ctx, bson.M{"_id": int64(9001), "fullName": "Le Van C", "phone": "0987654321", "status": "Sold"})
		require.NoError(t, err, "failed to insert raw document")

		_, err = s.SelectAll(ctx)
		require.Error(t, err, "unknown status must not reach the read model")
		require.Contains(t, err.Error(), "customer 9001 has invalid status")
	}
}

func TestWithValidStatus(t *testing.T) {
	t.Log("status name is kept")
	{
		c, err := withValidStatus(model.Customer{ID: 1, Status: model.StatusPotential})
		require.NoError(t, err)
		require.Equal(t, model.StatusPotential, c.Status)
	}

	t.Log("status label is normalized to name")
	{
		c, err := withValidStatus(model.Customer{ID: 2, Status: model.Status("Đã Chốt")})
		require.NoError(t, err)
		require.Equal(t, model.StatusClosed, c.Status)
	}

	t.Log("unknown status is rejected")
	{
		_, err := withValidStatus(model.Customer{ID: 3, Status: model.Status("Sold")})
		require.Error(t, err, "unknown status must be rejected")
	}
}

func testCustomerStore(t *testing.T, s CustomerStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	customers := []model.Customer{
		{FullName: "Nguyen Van A", Phone: "0900000000", PreferredModel: "Honda Vision", Status: model.StatusNew},
		{FullName: "Tran Thi B", Phone: "0912345678", PreferredModel: "Honda Air Blade 160cc", PreferredColor: "Đỏ", Status: model.StatusContacted},
	}

	ids := make([]int64, 0, len(customers))

	t.Logf("insert %d customers", len(customers))
	{
		for _, c := range customers {
			inserted, err := s.Insert(ctx, c)
			require.NoError(t, err, "failed to insert customer %s", c.FullName)
			require.NotZero(t, inserted.ID, "id must be assigned by store")
			require.False(t, inserted.CreatedAt.IsZero(), "creation time must be assigned by store")
			require.Equal(t, c.Status, inserted.Status, "status must be stored as is")
			ids = append(ids, inserted.ID)
		}
		require.NotEqual(t, ids[0], ids[1], "ids must be unique")
	}

	t.Log("select all customers")
	{
		all, err := s.SelectAll(ctx)
		require.NoError(t, err, "failed to select customers")
		require.Len(t, all, len(customers), "all inserted customers must be returned")
	}

	t.Log("partial update keeps untouched fields")
	{
		status := model.StatusClosed
		err := s.Update(ctx, ids[1], model.CustomerPatch{Status: &status})
		require.NoError(t, err, "failed to update customer")

		all, err := s.SelectAll(ctx)
		require.NoError(t, err, "failed to select customers")

		var updated model.Customer
		for _, c := range all {
			if c.ID == ids[1] {
				updated = c
			}
		}
		require.Equal(t, model.StatusClosed, updated.Status, "status wasn't updated")
		require.Equal(t, "Đỏ", updated.PreferredColor, "color must stay untouched")
	}

	t.Log("update missing customer")
	{
		name := "Nobody"
		err := s.Update(ctx, 999999, model.CustomerPatch{FullName: &name})
		require.Error(t, err, "customer doesn't exist but no error raised")
		require.True(t, apperrors.IsNotFound(err), "error must be not found error")
	}
}
