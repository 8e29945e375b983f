package queries

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// MaxSummaryPageSize caps one page of the summary.
const MaxSummaryPageSize = 1000

var ErrGetDispatchSummaryQueryIsNotConstructed = errors.New(
	"GetDispatchSummaryQuery must be created via NewGetDispatchSummaryQuery constructor",
)

// GetDispatchSummaryQuery pages through every order. Limit 0 returns the
// whole table.
//
// Example:
//
//	query, _ := NewGetDispatchSummaryQuery(50, 100)
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("%d of %d orders\n", len(page.Orders), page.Total)
type GetDispatchSummaryQuery struct {
	limit  int
	offset int

	guard guard.ConstructorGuard
}

func NewGetDispatchSummaryQuery(limit, offset int) (GetDispatchSummaryQuery, error) {
	if limit < 0 || limit > MaxSummaryPageSize {
		return GetDispatchSummaryQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxSummaryPageSize)
	}
	if offset < 0 {
		return GetDispatchSummaryQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	return GetDispatchSummaryQuery{limit: limit, offset: offset, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDispatchSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchSummaryQueryIsNotConstructed)
}

func (q GetDispatchSummaryQuery) Limit() int {
	return q.limit
}

func (q GetDispatchSummaryQuery) Offset() int {
	return q.offset
}

// GetDispatchSummaryQueryResponse is one page plus the total order count.
type GetDispatchSummaryQueryResponse struct {
	Orders []OrderSummary
	Total  int
}

// CountByClassification tallies the page.
func (r GetDispatchSummaryQueryResponse) CountByClassification() map[Classification]int {
	counts := map[Classification]int{NotDispatched: 0, Partial: 0, Full: 0}
	for _, o := range r.Orders {
		counts[o.Classification]++
	}
	return counts
}
