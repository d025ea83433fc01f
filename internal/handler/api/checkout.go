package api

import (
	"errors"
	"net/http"

	reqdto "recoil-backend/internal/handler/dto/request"
	resdto "recoil-backend/internal/handler/dto/response"
	"recoil-backend/internal/handler/middleware"
	"recoil-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutUseCase usecase.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

// Checkout creates an order from the submitted lines. Guest checkout is
// allowed; when no principal is present the order is keyed by email only.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	orderRM, err := h.checkoutUseCase.Checkout(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, usecase.ErrCheckoutValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Checkout validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to process order",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CheckoutResponse{OrderID: orderRM.ID})
}
