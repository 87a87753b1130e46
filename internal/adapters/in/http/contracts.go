package http

// Request and response bodies for the REST API. Field names follow the
// snake_case convention of the public contract.

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CreateOrderRequest struct {
	Code        string  `json:"code"`
	Total       float64 `json:"total"`
	DeliveryFee float64 `json:"delivery_fee"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	RadiusKm    float64 `json:"radius_km,omitempty"`
}

type CreateOrderResponse struct {
	ID string `json:"id"`
}

type AssignOrderRequest struct {
	CourierID string `json:"courier_id"`
}

type BroadcastOrderRequest struct {
	RadiusKm float64 `json:"radius_km,omitempty"`
}

type CreateCourierRequest struct {
	Name string `json:"name"`
}

type CreateCourierResponse struct {
	ID string `json:"id"`
}

type UpdateCourierLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type NearbyCourierResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	DistanceKm float64 `json:"distance_km"`
}

type DashboardCountersResponse struct {
	PendingOrders    int64   `json:"pending_orders"`
	AssignedToday    int64   `json:"assigned_today"`
	AvgAssignSeconds float64 `json:"avg_assign_seconds"`
}
