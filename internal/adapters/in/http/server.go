package http

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the REST endpoints to application use cases.
// It translates transport concerns (binding, status codes) and leaves all
// business decisions to the command and query handlers.
type Server struct {
	createOrderHandler           commands.CreateOrderCommandHandler
	assignOrderHandler           commands.AssignOrderCommandHandler
	broadcastOrderHandler        commands.BroadcastOrderCommandHandler
	createCourierHandler         commands.CreateCourierCommandHandler
	updateCourierLocationHandler commands.UpdateCourierLocationCommandHandler

	getNearbyCouriersHandler    queries.GetNearbyCouriersQueryHandler
	getDashboardCountersHandler queries.GetDashboardCountersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	broadcastOrderHandler commands.BroadcastOrderCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	updateCourierLocationHandler commands.UpdateCourierLocationCommandHandler,
	getNearbyCouriersHandler queries.GetNearbyCouriersQueryHandler,
	getDashboardCountersHandler queries.GetDashboardCountersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		assignOrderHandler:           assignOrderHandler,
		broadcastOrderHandler:        broadcastOrderHandler,
		createCourierHandler:         createCourierHandler,
		updateCourierLocationHandler: updateCourierLocationHandler,
		getNearbyCouriersHandler:     getNearbyCouriersHandler,
		getDashboardCountersHandler:  getDashboardCountersHandler,
	}
}

// RegisterRoutes mounts all REST endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/assign", s.AssignOrder)
	api.POST("/orders/:id/broadcast", s.BroadcastOrder)
	api.POST("/couriers", s.CreateCourier)
	api.POST("/couriers/:id/location", s.UpdateCourierLocation)
	api.GET("/couriers/nearby", s.GetNearbyCouriers)
	api.GET("/dashboard/counters", s.GetDashboardCounters)
}

// CreateOrder handles POST /api/v1/orders.
// Registers a new order, offers it to nearby couriers, and publishes the
// created event. A 503 means the order is stored but the event could not be
// published; retrying the broadcast endpoint is safe.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.Code, req.Total, req.DeliveryFee, req.Address, location, req.RadiusKm)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// AssignOrder handles POST /api/v1/orders/:id/assign.
// Returns 409 when the order already has a courier.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req AssignOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BroadcastOrder handles POST /api/v1/orders/:id/broadcast.
// Re-offers a still-unassigned order to couriers currently in range.
func (s *Server) BroadcastOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req BroadcastOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewBroadcastOrderCommand(orderID, req.RadiusKm)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.broadcastOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req CreateCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateCourierResponse{ID: courierID.String()})
}

// UpdateCourierLocation handles POST /api/v1/couriers/:id/location.
// Position reports supersede each other, so a lost downstream event is not an
// error for the caller.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var req UpdateCourierLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateCourierLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetNearbyCouriers handles GET /api/v1/couriers/nearby.
// Query parameters: lat, lng (required), radius_km (optional).
func (s *Server) GetNearbyCouriers(ctx echo.Context) error {
	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return badRequest(ctx, "lat must be a number")
	}

	lng, err := strconv.ParseFloat(ctx.QueryParam("lng"), 64)
	if err != nil {
		return badRequest(ctx, "lng must be a number")
	}

	radiusKm := 0.0
	if raw := ctx.QueryParam("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(ctx, "radius_km must be a number")
		}
	}

	origin, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetNearbyCouriersQuery(origin, radiusKm)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	couriers, err := s.getNearbyCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]NearbyCourierResponse, len(couriers))
	for i, c := range couriers {
		response[i] = NearbyCourierResponse{
			ID:         c.ID.String(),
			Name:       c.Name,
			Lat:        c.Location.Lat(),
			Lng:        c.Location.Lng(),
			DistanceKm: c.DistanceKm,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDashboardCounters handles GET /api/v1/dashboard/counters.
func (s *Server) GetDashboardCounters(ctx echo.Context) error {
	counters, err := s.getDashboardCountersHandler.Handle(
		ctx.Request().Context(), queries.NewGetDashboardCountersQuery())
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DashboardCountersResponse{
		PendingOrders:    counters.PendingOrders,
		AssignedToday:    counters.AssignedToday,
		AvgAssignSeconds: counters.AvgAssignSeconds,
	})
}

// statusFor maps the application error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrConnectivity):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(ctx echo.Context, err error) error {
	code := statusFor(err)
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
