//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
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

type fakeCheckoutUseCase struct {
	input   *usecase.CheckoutInput
	orderID uuid.UUID
	err     error
}

func (f *fakeCheckoutUseCase) Checkout(_ context.Context, input usecase.CheckoutInput) (*readmodel.OrderRM, error) {
	f.input = &input
	if f.err != nil {
		return nil, f.err
	}
	return &readmodel.OrderRM{
		ID:            f.orderID,
		UserID:        input.UserID,
		CustomerEmail: input.Email,
		Status:        order.StatusProcessing,
	}, nil
}

func checkoutBody() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"product_id": uuid.New().String(), "quantity": 2},
		},
		"shipping_details": map[string]any{
			"name":    "A. Customer",
			"line1":   "1 Nile St",
			"city":    "Cairo",
			"country": "EG",
		},
		"email": "buyer@example.com",
	}
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("guest checkout returns the order id", func(t *testing.T) {
		uc := &fakeCheckoutUseCase{orderID: uuid.New()}
		router := gin.New()
		router.POST("/checkout", api.NewCheckoutHandler(uc).Checkout)

		rec := performJSON(t, router, http.MethodPost, "/checkout", checkoutBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, uc.orderID.String(), resp["orderId"])

		require.NotNil(t, uc.input)
		assert.Nil(t, uc.input.UserID)
	})

	t.Run("authenticated checkout carries the principal", func(t *testing.T) {
		userID := uuid.New()
		uc := &fakeCheckoutUseCase{orderID: uuid.New()}
		router := gin.New()
		router.POST("/checkout", authAs(userID, user.RoleCustomer), api.NewCheckoutHandler(uc).Checkout)

		rec := performJSON(t, router, http.MethodPost, "/checkout", checkoutBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		require.NotNil(t, uc.input)
		require.NotNil(t, uc.input.UserID)
		assert.Equal(t, userID, *uc.input.UserID)
	})

	t.Run("client-submitted prices never reach the use case", func(t *testing.T) {
		uc := &fakeCheckoutUseCase{orderID: uuid.New()}
		router := gin.New()
		router.POST("/checkout", api.NewCheckoutHandler(uc).Checkout)

		body := checkoutBody()
		body["items"] = []map[string]any{
			{"product_id": uuid.New().String(), "quantity": 2, "unit_price_cents": 1},
		}
		rec := performJSON(t, router, http.MethodPost, "/checkout", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		require.NotNil(t, uc.input)
		require.Len(t, uc.input.Items, 1)
		assert.Equal(t, int32(2), uc.input.Items[0].Quantity)
	})

	t.Run("missing email", func(t *testing.T) {
		router := gin.New()
		router.POST("/checkout", api.NewCheckoutHandler(&fakeCheckoutUseCase{}).Checkout)

		body := checkoutBody()
		delete(body, "email")
		rec := performJSON(t, router, http.MethodPost, "/checkout", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty items", func(t *testing.T) {
		router := gin.New()
		router.POST("/checkout", api.NewCheckoutHandler(&fakeCheckoutUseCase{}).Checkout)

		body := checkoutBody()
		body["items"] = []map[string]any{}
		rec := performJSON(t, router, http.MethodPost, "/checkout", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product maps to 404", func(t *testing.T) {
		router := gin.New()
		router.POST("/checkout", api.NewCheckoutHandler(&fakeCheckoutUseCase{err: usecase.ErrProductNotFound}).Checkout)

		rec := performJSON(t, router, http.MethodPost, "/checkout", checkoutBody())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("storage failure is a generic 500", func(t *testing.T) {
		router := gin.New()
		router.POST("/checkout", api.NewCheckoutHandler(&fakeCheckoutUseCase{err: usecase.ErrDatabaseOperationFailed}).Checkout)

		rec := performJSON(t, router, http.MethodPost, "/checkout", checkoutBody())
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Failed to process order", resp["error"])
	})
}
