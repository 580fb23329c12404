package handlers

import (
	"errors"
	"net/http"

	"food_ordering/internal/middleware"
	"food_ordering/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService     services.CartService
	checkoutService services.CheckoutService
}

func NewCartHandler(cartService services.CartService, checkoutService services.CheckoutService) *CartHandler {
	return &CartHandler{cartService: cartService, checkoutService: checkoutService}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.UserID(c)
	lines, err := h.cartService.GetLines(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	// Attach the advisory stock check so the client can flag short lines
	// before the user hits checkout.
	validation := h.checkoutService.ValidateStock(lines)
	c.JSON(http.StatusOK, gin.H{"lines": lines, "validation": validation})
}

type setCartItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   *int `json:"quantity" binding:"required"`
}

func (h *CartHandler) SetItem(c *gin.Context) {
	userID := middleware.UserID(c)

	var req setCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.cartService.SetItem(userID, req.MenuItemID, *req.Quantity)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	case errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be non-negative"})
	case errors.Is(err, services.ErrItemUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not exist or is disabled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.cartService.Reset(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

type checkoutRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
}

func (h *CartHandler) Checkout(c *gin.Context) {
	userID := middleware.UserID(c)

	// The idempotency key is optional; an empty body is a valid request.
	var req checkoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	order, err := h.checkoutService.Checkout(userID, req.IdempotencyKey)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, order)
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, services.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrItemUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "An item in the cart is no longer available"})
	case errors.Is(err, services.ErrCheckoutInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Checkout already in progress"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
	}
}
