package catalog

import (
	"sort"

	"github.com/giahoa6/crm/internal/model"
)

// State is the read model of customers projected from the record store.
// Customers slice is replaced on every load and never modified in place.
type State struct {
	Customers []model.Customer
	Loading   bool
	Error     string
	// Version changes every time Customers is replaced
	Version uint64
}

// Event is applied to State by Reduce
type Event interface {
	event()
}

// LoadStarted is dispatched before fetching customers
type LoadStarted struct{}

// LoadSucceeded carries freshly fetched customers in store order
type LoadSucceeded struct {
	Customers []model.Customer
}

// LoadFailed is dispatched when fetch resolved with failure
type LoadFailed struct {
	Message string
}

// LoadAborted is dispatched when fetch never resolved (caller went away)
type LoadAborted struct{}

// WriteFailed is dispatched when insert or update is rejected
type WriteFailed struct {
	Message string
}

func (LoadStarted) event()   {}
func (LoadSucceeded) event() {}
func (LoadFailed) event()    {}
func (LoadAborted) event()   {}
func (WriteFailed) event()   {}

func initialState() State {
	return State{Customers: make([]model.Customer, 0), Loading: true}
}

// Reduce returns state with event applied, input state is left untouched
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case LoadStarted:
		s.Loading = true
		s.Error = ""
	case LoadSucceeded:
		s.Customers = newestFirst(ev.Customers)
		s.Loading = false
		s.Version++
	case LoadFailed:
		s.Customers = make([]model.Customer, 0)
		s.Loading = false
		s.Error = ev.Message
		s.Version++
	case LoadAborted:
		s.Loading = false
	case WriteFailed:
		s.Error = ev.Message
	}
	return s
}

func newestFirst(customers []model.Customer) []model.Customer {
	sorted := make([]model.Customer, len(customers))
	copy(sorted, customers)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}
