package api

import (
	"errors"
	"net/http"

	"recoil-backend/internal/domain/order"
	reqdto "recoil-backend/internal/handler/dto/request"
	resdto "recoil-backend/internal/handler/dto/response"
	"recoil-backend/internal/handler/middleware"
	"recoil-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

// CancelOrder opens the two-phase cancellation flow: the order is parked in
// CancellationRequested until an admin approves. Only the owner may request.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CancelOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.orderUseCase.RequestCancellation(c.Request.Context(), req.OrderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, usecase.ErrNotOrderOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not the order owner",
			})
		case errors.Is(err, usecase.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Order can no longer be cancelled",
			})
		case errors.Is(err, usecase.ErrStatusConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order status changed, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to process",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.CancelOrderResponse{
		Status: order.StatusCancellationRequested.String(),
	})
}
