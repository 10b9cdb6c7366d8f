package listview

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/giahoa6/crm/internal/catalog"
	"github.com/giahoa6/crm/internal/model"
	"github.com/giahoa6/crm/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNames = []string{"Nguyễn Văn An", "Trần Thị Bình", "Lê Hoàng", "PHẠM MINH", "Võ Thị Lan", "Đặng Quốc"}
var testModels = []string{"Honda Vision", "SH 160i", "Air Blade 125cc", "", "Yamaha Exciter", "Winner X"}

func randomCustomers(r *rand.Rand, n int) []model.Customer {
	statuses := model.Statuses()
	customers := make([]model.Customer, n)
	for i := range customers {
		customers[i] = model.Customer{
			ID:             int64(i + 1),
			FullName:       testNames[r.Intn(len(testNames))],
			Phone:          fmt.Sprintf("09%08d", r.Intn(100000000)),
			PreferredModel: testModels[r.Intn(len(testModels))],
			Status:         statuses[r.Intn(len(statuses))],
		}
	}
	return customers
}

func passes(c model.Customer, search string, status StatusFilter) bool {
	if status != All && string(c.Status) != string(status) {
		return false
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.FullName), s) ||
		strings.Contains(strings.ToLower(c.Phone), s) ||
		strings.Contains(strings.ToLower(c.PreferredModel), s)
}

func TestFilterProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	searches := []string{"", "an", "HOÀNG", "09", "vision", "sh", "zzz", "Exciter"}
	filters := []StatusFilter{All}
	for _, s := range model.Statuses() {
		filters = append(filters, StatusFilter(s))
	}

	for round := 0; round < 50; round++ {
		customers := randomCustomers(r, r.Intn(40))

		for _, search := range searches {
			for _, status := range filters {
				res := Filter(customers, search, status)
				require.NotNil(t, res, "result must never be nil")

				// subset preserving order
				j := 0
				for _, c := range res {
					for j < len(customers) && customers[j].ID != c.ID {
						j++
					}
					require.Less(t, j, len(customers), "result must be ordered subsequence of input")
					j++
				}

				// soundness
				for _, c := range res {
					require.True(t, passes(c, search, status), "customer %d doesn't match search %q status %s", c.ID, search, status)
				}

				// completeness
				expected := 0
				for _, c := range customers {
					if passes(c, search, status) {
						expected++
					}
				}
				require.Len(t, res, expected, "every matching customer must be returned")
			}
		}
	}
}

func TestFilterExamples(t *testing.T) {
	customers := []model.Customer{
		{ID: 3, FullName: "Nguyen Van A", Phone: "0900000000", Status: model.StatusNew},
		{ID: 2, FullName: "Tran Thi B", Phone: "0911111111", PreferredModel: "Honda SH 125i", Status: model.StatusClosed},
		{ID: 1, FullName: "Le Van C", Phone: "0922222222", PreferredModel: "Vision", Status: model.StatusClosed},
	}

	ids := func(cc []model.Customer) []int64 {
		res := make([]int64, 0, len(cc))
		for _, c := range cc {
			res = append(res, c.ID)
		}
		return res
	}

	assert.Equal(t, []int64{3, 2, 1}, ids(Filter(customers, "", All)), "empty search with all must return everything")
	assert.Equal(t, []int64{2, 1}, ids(Filter(customers, "", StatusFilter(model.StatusClosed))), "status filter must be exact")
	assert.Equal(t, []int64{2}, ids(Filter(customers, "honda sh", All)), "search must match preferred model case-insensitively")
	assert.Equal(t, []int64{1}, ids(Filter(customers, "VAN C", StatusFilter(model.StatusClosed))), "search and status are combined")
	assert.Equal(t, []int64{}, ids(Filter(customers, "0900000000", StatusFilter(model.StatusLost))), "no match must yield empty result")
}

func TestParseStatusFilter(t *testing.T) {
	for raw, expected := range map[string]StatusFilter{
		"":          All,
		"all":       All,
		"ALL":       All,
		"Closed":    StatusFilter(model.StatusClosed),
		"Tiềm Năng": StatusFilter(model.StatusPotential),
	} {
		f, err := ParseStatusFilter(raw)
		require.NoError(t, err, "filter %q must be accepted", raw)
		require.Equal(t, expected, f, "unexpected filter for %q", raw)
	}

	_, err := ParseStatusFilter("Sold")
	require.Error(t, err, "unknown status must be rejected")
}

type staticSource struct {
	state catalog.State
}

func (s *staticSource) State() catalog.State {
	return s.state
}

func TestModelMemoization(t *testing.T) {
	src := &staticSource{state: catalog.State{
		Version:   1,
		Customers: []model.Customer{{ID: 1, FullName: "Nguyen Van A", Status: model.StatusNew}},
	}}
	m := NewModel(src)
	q := Query{Search: "nguyen", Status: All}

	t.Log("same query on same version returns memoized rows")
	{
		first := m.Rows(q)
		second := m.Rows(q)
		require.Len(t, first, 1, "one row expected")
		require.Same(t, &first[0], &second[0], "rows must be reused when nothing changed")
	}

	t.Log("new catalog version recomputes rows")
	{
		src.state = catalog.State{
			Version: 2,
			Customers: []model.Customer{
				{ID: 2, FullName: "Nguyen Thi B", Status: model.StatusNew},
				{ID: 1, FullName: "Nguyen Van A", Status: model.StatusNew},
			},
		}
		require.Len(t, m.Rows(q), 2, "rows must follow catalog version")
	}

	t.Log("query change recomputes rows")
	{
		require.Len(t, m.Rows(Query{Search: "thi", Status: All}), 1, "rows must follow search change")
		require.Len(t, m.Rows(Query{Search: "thi", Status: StatusFilter(model.StatusLost)}), 0, "rows must follow filter change")
	}
}

func TestCatalogListScenario(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat := catalog.New(store.NewMemoryCustomerStore(), nil)
	done := make(chan error, 1)
	go func() { done <- cat.Run(ctx) }()

	view := NewModel(cat)
	waitRows := func(q Query, n int) []model.Customer {
		var rows []model.Customer
		require.Eventually(t, func() bool {
			rows = view.Rows(q)
			return len(rows) == n
		}, 2*time.Second, 10*time.Millisecond, "expected %d rows for %+v", n, q)
		return rows
	}

	t.Log("start with zero customers")
	{
		require.Empty(t, view.Rows(Query{Status: All}), "no customers expected")
	}

	var created model.Customer

	t.Log("create customer without model")
	{
		var err error
		created, err = cat.Create(ctx, model.NewCustomer{FullName: "Nguyen Van A", Phone: "0900000000"})
		require.NoError(t, err, "create must succeed")

		rows := waitRows(Query{Status: All}, 1)
		require.Equal(t, model.StatusNew, rows[0].Status, "status must be New")
		require.Equal(t, "Mới", rows[0].Status.Label(), "label must be Vietnamese")
	}

	t.Log("filter by Closed yields nothing, search by phone yields the row")
	{
		require.Empty(t, view.Rows(Query{Status: StatusFilter(model.StatusClosed)}), "no closed customers expected")
		rows := view.Rows(Query{Search: "0900000000", Status: All})
		require.Len(t, rows, 1, "search by phone must find the customer")
		require.Equal(t, created.ID, rows[0].ID, "wrong customer found")
	}

	t.Log("close the deal and list closed customers")
	{
		closed := model.StatusClosed
		require.NoError(t, cat.Update(ctx, created.ID, model.CustomerPatch{Status: &closed}), "update must succeed")
		waitRows(Query{Status: StatusFilter(model.StatusClosed)}, 1)
	}

	cancel()
	require.NoError(t, <-done, "run must stop cleanly")
}
