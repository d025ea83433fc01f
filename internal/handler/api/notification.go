package api

import (
	"errors"
	"net/http"

	"recoil-backend/internal/domain/order"
	reqdto "recoil-backend/internal/handler/dto/request"
	resdto "recoil-backend/internal/handler/dto/response"
	"recoil-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

// NotifyCustomer re-sends the status email for an order. It is an internal
// trigger used by the dashboard after manual fixes; send failures are
// recorded on the job row, not surfaced here.
func (h *NotificationHandler) NotifyCustomer(c *gin.Context) {
	var req reqdto.NotifyCustomerRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	newStatus, err := order.NewStatus(req.NewStatus)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown order status: " + req.NewStatus,
		})
		return
	}

	sent, err := h.notificationUseCase.NotifyCustomer(c.Request.Context(), req.OrderID, newStatus)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.NotifyCustomerResponse{EmailsSent: sent})
}
