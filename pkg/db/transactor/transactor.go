// Package transactor runs repository calls of a single use case within one database transaction.
package transactor

import (
	"context"
)

// Transactor represents behavior for transactors
type Transactor interface {
	WithinTransaction(context.Context, func(context.Context) error) error
}
