package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetDashboardCountersQueryHandler computes the dispatcher dashboard counters
// with a single aggregate SQL read.
type GetDashboardCountersQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardCountersQueryHandler creates a handler for dashboard counter queries.
// Requires a GORM database connection for query execution.
func NewGetDashboardCountersQueryHandler(db *gorm.DB) GetDashboardCountersQueryHandler {
	return GetDashboardCountersQueryHandler{db: db}
}

// Handle executes the query.
// "Today" is the database server's current day; assignment time is the span
// between the order's creation and its assignment update.
func (h GetDashboardCountersQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardCountersQuery,
) (GetDashboardCountersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardCountersQueryResponse{}, err
	}

	var pending, assignedToday int64
	var avgAssign sql.NullFloat64

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM orders WHERE status = @unassigned),
			(SELECT COUNT(*) FROM orders
				WHERE status = @assigned AND updated_at >= date_trunc('day', now())),
			(SELECT AVG(EXTRACT(EPOCH FROM (updated_at - created_at)))
				FROM orders WHERE status = @assigned)
	`,
		sql.Named("unassigned", int(order.Unassigned)),
		sql.Named("assigned", int(order.Assigned)),
	).Row()

	if err := row.Scan(&pending, &assignedToday, &avgAssign); err != nil {
		return GetDashboardCountersQueryResponse{}, err
	}

	resp := GetDashboardCountersQueryResponse{
		PendingOrders: pending,
		AssignedToday: assignedToday,
	}
	if avgAssign.Valid {
		resp.AvgAssignSeconds = avgAssign.Float64
	}

	return resp, nil
}
