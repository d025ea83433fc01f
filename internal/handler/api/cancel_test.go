//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recoil-backend/internal/domain/order"
	"recoil-backend/internal/domain/user"
	"recoil-backend/internal/handler/api"
	"recoil-backend/internal/usecase"
	"recoil-backend/internal/usecase/readmodel"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderUseCase struct {
	order *readmodel.OrderRM

	cancelErr  error
	approveErr error
	updateErr  error
}

func (f *fakeOrderUseCase) GetOrder(_ context.Context, _ uuid.UUID) (*readmodel.OrderRM, error) {
	if f.order == nil {
		return nil, usecase.ErrOrderNotFound
	}
	return f.order, nil
}

func (f *fakeOrderUseCase) GetUserOrders(_ context.Context, _ uuid.UUID) ([]*readmodel.OrderRM, error) {
	if f.order == nil {
		return nil, nil
	}
	return []*readmodel.OrderRM{f.order}, nil
}

func (f *fakeOrderUseCase) ListOrders(_ context.Context) ([]*readmodel.OrderRM, error) {
	return f.GetUserOrders(nil, uuid.Nil)
}

func (f *fakeOrderUseCase) UpdateStatus(_ context.Context, _ uuid.UUID, next order.Status) (*readmodel.OrderRM, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.order.Status = next
	return f.order, nil
}

func (f *fakeOrderUseCase) RequestCancellation(_ context.Context, _, _ uuid.UUID) error {
	return f.cancelErr
}

func (f *fakeOrderUseCase) ApproveCancellation(_ context.Context, _ uuid.UUID) error {
	return f.approveErr
}

func authAs(userID uuid.UUID, role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	setup := func(uc usecase.OrderUseCase) *gin.Engine {
		router := gin.New()
		h := api.NewOrderHandler(uc)
		router.POST("/orders/cancel", authAs(userID, user.RoleCustomer), h.CancelOrder)
		return router
	}

	body := map[string]any{"order_id": uuid.New().String()}

	t.Run("success returns CancellationRequested", func(t *testing.T) {
		router := setup(&fakeOrderUseCase{})

		rec := performJSON(t, router, http.MethodPost, "/orders/cancel", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "CancellationRequested", resp["status"])
	})

	cases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"unknown order", usecase.ErrOrderNotFound, http.StatusNotFound},
		{"not the owner", usecase.ErrNotOrderOwner, http.StatusForbidden},
		{"already delivered", usecase.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"concurrent change", usecase.ErrStatusConflict, http.StatusConflict},
		{"storage failure", usecase.ErrDatabaseOperationFailed, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setup(&fakeOrderUseCase{cancelErr: tc.err})
			rec := performJSON(t, router, http.MethodPost, "/orders/cancel", body)
			assert.Equal(t, tc.expectCode, rec.Code)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		router := setup(&fakeOrderUseCase{})
		rec := performJSON(t, router, http.MethodPost, "/orders/cancel", map[string]any{"order_id": "not-a-uuid"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminOrderHandler_ApproveCancellation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	adminID := uuid.New()

	setup := func(uc usecase.OrderUseCase) *gin.Engine {
		router := gin.New()
		h := api.NewAdminOrderHandler(uc)
		router.POST("/admin/orders/approve-cancel", authAs(adminID, user.RoleAdmin), h.ApproveCancellation)
		return router
	}

	body := map[string]any{"order_id": uuid.New().String()}

	t.Run("success returns success true", func(t *testing.T) {
		router := setup(&fakeOrderUseCase{})

		rec := performJSON(t, router, http.MethodPost, "/admin/orders/approve-cancel", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]bool
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp["success"])
	})

	cases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"unknown order", usecase.ErrOrderNotFound, http.StatusNotFound},
		{"no pending request", usecase.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"concurrent change", usecase.ErrStatusConflict, http.StatusConflict},
		{"delete failed after email", usecase.ErrCancellationDeleteFailed, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setup(&fakeOrderUseCase{approveErr: tc.err})
			rec := performJSON(t, router, http.MethodPost, "/admin/orders/approve-cancel", body)
			assert.Equal(t, tc.expectCode, rec.Code)
		})
	}

	t.Run("error body carries a structured message", func(t *testing.T) {
		router := setup(&fakeOrderUseCase{approveErr: usecase.ErrOrderNotFound})

		rec := performJSON(t, router, http.MethodPost, "/admin/orders/approve-cancel", body)
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Order not found", resp.Error.Message)
	})
}

func TestAdminOrderHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	adminID := uuid.New()
	orderID := uuid.New()

	setup := func(uc usecase.OrderUseCase) *gin.Engine {
		router := gin.New()
		h := api.NewAdminOrderHandler(uc)
		router.POST("/admin/orders/status", authAs(adminID, user.RoleAdmin), h.UpdateStatus)
		return router
	}

	rm := &readmodel.OrderRM{ID: orderID, CustomerEmail: "buyer@example.com", Status: order.StatusProcessing}

	t.Run("moves the order", func(t *testing.T) {
		router := setup(&fakeOrderUseCase{order: rm})

		rec := performJSON(t, router, http.MethodPost, "/admin/orders/status",
			map[string]any{"order_id": orderID.String(), "status": "Shipped"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Shipped", resp["status"])
	})

	t.Run("unknown status name", func(t *testing.T) {
		router := setup(&fakeOrderUseCase{order: rm})

		rec := performJSON(t, router, http.MethodPost, "/admin/orders/status",
			map[string]any{"order_id": orderID.String(), "status": "Refunded"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("guard violation", func(t *testing.T) {
		router := setup(&fakeOrderUseCase{order: rm, updateErr: usecase.ErrInvalidTransition})

		rec := performJSON(t, router, http.MethodPost, "/admin/orders/status",
			map[string]any{"order_id": orderID.String(), "status": "Shipped"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
