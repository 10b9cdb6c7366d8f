// Package listview filters the customers read model by status and free-text search.
package listview

import (
	"strings"
	"sync"

	"github.com/giahoa6/crm/internal/catalog"
	"github.com/giahoa6/crm/internal/model"
)

// All disables status filtering
const All StatusFilter = "all"

// StatusFilter is either All or one of the customer statuses
type StatusFilter string

// ParseStatusFilter accepts empty string or "all", status name or its label
func ParseStatusFilter(raw string) (StatusFilter, error) {
	if raw == "" || strings.EqualFold(raw, string(All)) {
		return All, nil
	}

	s, err := model.ParseStatus(raw)
	if err != nil {
		return "", err
	}
	return StatusFilter(s), nil
}

// Query is search text plus status filter
type Query struct {
	Search string
	Status StatusFilter
}

// Filter returns customers matching query in input order, never nil
func Filter(customers []model.Customer, search string, status StatusFilter) []model.Customer {
	needle := strings.ToLower(search)

	res := make([]model.Customer, 0)
	for _, c := range customers {
		if status != All && status != "" && string(c.Status) != string(status) {
			continue
		}

		if needle != "" && !matches(c, needle) {
			continue
		}
		res = append(res, c)
	}
	return res
}

func matches(c model.Customer, needle string) bool {
	return strings.Contains(strings.ToLower(c.FullName), needle) ||
		strings.Contains(strings.ToLower(c.Phone), needle) ||
		strings.Contains(strings.ToLower(c.PreferredModel), needle)
}

// Source provides catalog snapshots
type Source interface {
	State() catalog.State
}

type memoKey struct {
	version uint64
	query   Query
}

// Model is filtered view over catalog, result is recomputed only when
// catalog version or query changes
type Model struct {
	source Source

	mu    sync.Mutex
	key   memoKey
	valid bool
	rows  []model.Customer
}

// NewModel builds view model on top of source
func NewModel(src Source) *Model {
	return &Model{source: src}
}

// Rows returns filtered customers, the slice must be treated as read-only
func (m *Model) Rows(q Query) []model.Customer {
	state := m.source.State()
	key := memoKey{version: state.Version, query: q}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.key == key {
		return m.rows
	}

	m.rows = Filter(state.Customers, q.Search, q.Status)
	m.key = key
	m.valid = true
	return m.rows
}
