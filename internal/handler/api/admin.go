package api

import (
	"errors"
	"net/http"

	"recoil-backend/internal/domain/order"
	reqdto "recoil-backend/internal/handler/dto/request"
	resdto "recoil-backend/internal/handler/dto/response"
	"recoil-backend/internal/handler/httperr"
	"recoil-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AdminOrderHandler serves the dashboard. Errors here may carry the
// underlying message since the audience is operators, not customers.
type AdminOrderHandler struct {
	orderUseCase usecase.OrderUseCase
}

func NewAdminOrderHandler(orderUseCase usecase.OrderUseCase) *AdminOrderHandler {
	return &AdminOrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	ordersRM, err := h.orderUseCase.ListOrders(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, err.Error(), nil)
		return
	}

	response := make([]*resdto.OrderResponse, len(ordersRM))
	for i, rm := range ordersRM {
		response[i] = resdto.FromOrderRM(rm)
	}

	c.JSON(http.StatusOK, response)
}

// UpdateStatus is the soft transition path, including direct cancellation
// of a still-active order. Approval of a customer cancellation request goes
// through ApproveCancellation instead.
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	var req reqdto.UpdateOrderStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	next, err := order.NewStatus(req.Status)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown order status: "+req.Status, nil)
		return
	}

	orderRM, err := h.orderUseCase.UpdateStatus(c.Request.Context(), req.OrderID, next)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		case errors.Is(err, usecase.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid status transition", nil)
		case errors.Is(err, usecase.ErrStatusConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Order status changed concurrently", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, err.Error(), nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderRM(orderRM))
}

// ApproveCancellation notifies the customer, then hard-deletes the order
// and its items. The delete-after-email failure mode is surfaced loudly so
// an operator can reconcile by hand.
func (h *AdminOrderHandler) ApproveCancellation(c *gin.Context) {
	var req reqdto.ApproveCancelRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	err := h.orderUseCase.ApproveCancellation(c.Request.Context(), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		case errors.Is(err, usecase.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Order has no pending cancellation request", nil)
		case errors.Is(err, usecase.ErrStatusConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Order status changed concurrently", nil)
		case errors.Is(err, usecase.ErrCancellationDeleteFailed):
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				"Customer was notified but the order could not be removed; manual cleanup required", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, err.Error(), nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.ApproveCancelResponse{Success: true})
}
