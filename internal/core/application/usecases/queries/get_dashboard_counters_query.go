package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetDashboardCountersQueryIsNotConstructed = errors.New(
	"GetDashboardCountersQuery must be created via NewGetDashboardCountersQuery constructor",
)

// GetDashboardCountersQuery retrieves the headline numbers for the dispatcher
// dashboard: orders waiting for a courier, orders assigned since midnight,
// and the average time between creation and assignment.
type GetDashboardCountersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDashboardCountersQuery creates a parameterless dashboard counters query.
func NewGetDashboardCountersQuery() GetDashboardCountersQuery {
	return GetDashboardCountersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardCountersQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardCountersQueryIsNotConstructed)
}

// GetDashboardCountersQueryResponse is the dashboard counters read model.
// AvgAssignSeconds is zero when no order has been assigned yet.
type GetDashboardCountersQueryResponse struct {
	PendingOrders    int64
	AssignedToday    int64
	AvgAssignSeconds float64
}
