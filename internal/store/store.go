// Package store adapts external record stores to the narrow contract the catalog depends on:
// select all, insert, partial update and a change feed for the customers table.
package store

import (
	"context"
	"fmt"

	"github.com/giahoa6/crm/internal/model"
)

// Op is the kind of change reported by the store
type Op string

const (
	// OpInsert is emitted for inserted rows
	OpInsert Op = "INSERT"
	// OpUpdate is emitted for updated rows
	OpUpdate Op = "UPDATE"
	// OpDelete is emitted for deleted rows
	OpDelete Op = "DELETE"
)

// Change is single notification of the customers change feed
type Change struct {
	Op Op
	ID int64
}

// Subscription is a long-lived listener on the customers change feed
type Subscription interface {
	// Changes is closed once subscription stops, either on Close or on connection failure
	Changes() <-chan Change
	// Err returns reason of stopping, nil if stopped by Close
	Err() error
	Close() error
}

// CustomerStore is the record store contract for customers
type CustomerStore interface {
	SelectAll(context.Context) ([]model.Customer, error)
	Insert(context.Context, model.Customer) (model.Customer, error)
	Update(context.Context, int64, model.CustomerPatch) error
	Subscribe(context.Context) (Subscription, error)
}

const changesBufferSize = 16

// withValidStatus normalizes status read from the store, rows with unknown status are rejected
func withValidStatus(c model.Customer) (model.Customer, error) {
	status, err := model.ParseStatus(string(c.Status))
	if err != nil {
		return model.Customer{}, fmt.Errorf("customer %d has invalid status - %w", c.ID, err)
	}
	c.Status = status
	return c, nil
}
