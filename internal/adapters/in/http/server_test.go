package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "42"), http.StatusNotFound},
		{"conflict", errs.NewConflictError("order", "42"), http.StatusConflict},
		{"connectivity", errs.NewConnectivityError("rabbitmq", errors.New("dial refused")), http.StatusServiceUnavailable},
		{"invalid value", errs.NewValueIsInvalidError("lat"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("lat", 91.0, -90.0, 90.0), http.StatusBadRequest},
		{"required value", errs.NewValueIsRequiredError("name"), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestStatusFor_WrappedErrors(t *testing.T) {
	err := errs.NewConflictErrorWithCause("order", "42", errors.New("already assigned"))
	assert.Equal(t, http.StatusConflict, statusFor(err))
}

// newTestContext builds an echo context for a JSON request without starting a
// server. Handlers that reject the request before reaching the application
// layer can run against a zero-value Server.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAssignOrder_InvalidOrderID(t *testing.T) {
	server := &Server{}
	ctx, rec := newTestContext(t, http.MethodPost, "/", `{"courier_id":"irrelevant"}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues("not-a-uuid")

	require.NoError(t, server.AssignOrder(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignOrder_InvalidCourierID(t *testing.T) {
	server := &Server{}
	ctx, rec := newTestContext(t, http.MethodPost, "/", `{"courier_id":"not-a-uuid"}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues("0b9dcbc4-4e52-4bc2-9b6e-d7e3f8a0c8be")

	require.NoError(t, server.AssignOrder(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_InvalidLocation(t *testing.T) {
	server := &Server{}
	body := `{"code":"A-1","total":10,"delivery_fee":2,"address":"123 Main","lat":91,"lng":0}`
	ctx, rec := newTestContext(t, http.MethodPost, "/", body)

	require.NoError(t, server.CreateOrder(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_MissingCode(t *testing.T) {
	server := &Server{}
	body := `{"total":10,"delivery_fee":2,"address":"123 Main","lat":40,"lng":-73}`
	ctx, rec := newTestContext(t, http.MethodPost, "/", body)

	require.NoError(t, server.CreateOrder(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNearbyCouriers_MissingCoordinates(t *testing.T) {
	server := &Server{}
	ctx, rec := newTestContext(t, http.MethodGet, "/?lat=abc&lng=0", "")

	require.NoError(t, server.GetNearbyCouriers(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCourierLocation_OutOfRange(t *testing.T) {
	server := &Server{}
	ctx, rec := newTestContext(t, http.MethodPost, "/", `{"lat":12.0,"lng":181.0}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues("0b9dcbc4-4e52-4bc2-9b6e-d7e3f8a0c8be")

	require.NoError(t, server.UpdateCourierLocation(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
