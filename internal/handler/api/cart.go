package api

import (
	"errors"
	"net/http"

	"recoil-backend/internal/domain/cart"
	reqdto "recoil-backend/internal/handler/dto/request"
	resdto "recoil-backend/internal/handler/dto/response"
	"recoil-backend/internal/handler/middleware"
	"recoil-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// cartTokenHeader carries the anonymous device token for guest carts.
const cartTokenHeader = "X-Cart-Token"

type CartHandler struct {
	cartUseCase usecase.CartUseCase
}

func NewCartHandler(cartUseCase usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

// resolveOwner picks the cart owner for this request: the authenticated
// user when a valid token was presented, otherwise the guest device token.
// A cart is never owned by both at once.
func resolveOwner(c *gin.Context) (cart.OwnerKey, bool) {
	if userID, ok := middleware.GetUserID(c); ok {
		return cart.OwnerForUser(userID), true
	}
	token := c.GetHeader(cartTokenHeader)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart token required for guest requests",
		})
		return "", false
	}
	return cart.OwnerForGuest(token), true
}

func (h *CartHandler) GetCart(c *gin.Context) {
	owner, ok := resolveOwner(c)
	if !ok {
		return
	}

	items, err := h.cartUseCase.Get(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartItems(items))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	owner, ok := resolveOwner(c)
	if !ok {
		return
	}

	var req reqdto.AddCartItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	items, err := h.cartUseCase.AddItem(c.Request.Context(), owner, req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCartItemInvalid):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid cart item",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartItems(items))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	owner, ok := resolveOwner(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID format",
		})
		return
	}
	variant := c.Query("variant")

	items, err := h.cartUseCase.RemoveItem(c.Request.Context(), owner, productID, variant)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartItems(items))
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	owner, ok := resolveOwner(c)
	if !ok {
		return
	}

	var req reqdto.SetCartQuantityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	items, err := h.cartUseCase.SetQuantity(c.Request.Context(), owner, req.ProductID, req.Variant, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartItems(items))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	owner, ok := resolveOwner(c)
	if !ok {
		return
	}

	if err := h.cartUseCase.Clear(c.Request.Context(), owner); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartItems(nil))
}

// MergeCart folds the guest cart into the authenticated user's cart. The
// storefront calls it exactly once, right after sign-in.
func (h *CartHandler) MergeCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.MergeCartRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	items, err := h.cartUseCase.MergeGuestCart(c.Request.Context(), req.GuestToken, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCartMergeFailed):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Cart merge failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartItems(items))
}
