package store

import (
	"context"
	"testing"
	"time"

	"github.com/giahoa6/crm/internal/model"
	"github.com/stretchr/testify/require"

	apperrors "github.com/giahoa6/crm/internal/errors"
)

func TestMemoryCustomerStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s := NewMemoryCustomerStore()

	sub, err := s.Subscribe(ctx)
	require.NoError(t, err, "failed to subscribe")

	var inserted model.Customer

	t.Log("insert customer")
	{
		inserted, err = s.Insert(ctx, model.Customer{FullName: "Nguyen Van A", Phone: "0900000000", Status: model.StatusNew})
		require.NoError(t, err, "failed to insert customer")
		require.Equal(t, int64(1), inserted.ID, "first customer must get id 1")
		require.False(t, inserted.CreatedAt.IsZero(), "creation time must be assigned by store")
	}

	t.Log("insert is reported on change feed")
	{
		ch := <-sub.Changes()
		require.Equal(t, Change{Op: OpInsert, ID: inserted.ID}, ch, "unexpected change")
	}

	t.Log("update customer")
	{
		status := model.StatusPotential
		err := s.Update(ctx, inserted.ID, model.CustomerPatch{Status: &status})
		require.NoError(t, err, "failed to update customer")

		ch := <-sub.Changes()
		require.Equal(t, Change{Op: OpUpdate, ID: inserted.ID}, ch, "unexpected change")

		all, err := s.SelectAll(ctx)
		require.NoError(t, err, "failed to select customers")
		require.Len(t, all, 1, "store must contain single customer")
		require.Equal(t, model.StatusPotential, all[0].Status, "status wasn't updated")
		require.Equal(t, inserted.CreatedAt, all[0].CreatedAt, "creation time must not change on update")
	}

	t.Log("update of missing customer")
	{
		name := "Tran Thi B"
		err := s.Update(ctx, 42, model.CustomerPatch{FullName: &name})
		require.Error(t, err, "customer doesn't exist but no error raised")
		require.True(t, apperrors.IsNotFound(err), "error must be not found error")
	}

	t.Log("closed subscription stops the feed")
	{
		require.NoError(t, sub.Close(), "failed to close subscription")
		_, open := <-sub.Changes()
		require.False(t, open, "changes channel must be closed")
		require.NoError(t, sub.Err(), "closed subscription must not report error")
		require.NoError(t, sub.Close(), "second close must be no-op")
	}
}

func TestMemoryCustomerStoreSeed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryCustomerStore()

	s.Seed(
		model.Customer{ID: 7, FullName: "Le Van C", Status: model.StatusClosed},
		model.Customer{ID: 3, FullName: "Pham Thi D", Status: model.StatusLost},
	)

	t.Log("next id continues after seeded ones")
	{
		c, err := s.Insert(ctx, model.Customer{FullName: "Hoang Van E", Status: model.StatusNew})
		require.NoError(t, err, "failed to insert customer")
		require.Equal(t, int64(8), c.ID, "id must continue after max seeded id")
	}

	t.Log("select returns a copy")
	{
		all, err := s.SelectAll(ctx)
		require.NoError(t, err, "failed to select customers")
		require.Len(t, all, 3, "store must contain seeded and inserted customers")

		all[0].FullName = "changed"
		again, err := s.SelectAll(ctx)
		require.NoError(t, err, "failed to select customers")
		require.Equal(t, "Le Van C", again[0].FullName, "store content must not be shared with callers")
	}
}
