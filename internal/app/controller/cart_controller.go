package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/threadcart/threadcart-backend/internal/app/service"
	apperrors "github.com/threadcart/threadcart-backend/internal/errors"
	"github.com/threadcart/threadcart-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  json.RawMessage `json:"quantity"`
}

// parseQuantity tolerates numbers, quoted numbers and garbage alike.
// Anything that does not parse to a positive integer becomes 1.
func parseQuantity(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 1
	}
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	quantity, err := strconv.Atoi(s)
	if err != nil || quantity <= 0 {
		return 1
	}
	return quantity
}

type UpdateQuantitiesRequest struct {
	Quantities map[string]int `json:"quantities" binding:"required"`
}

// GetCart returns the current user's cart with a live total
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to get cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":  summary.Cart,
		"total": summary.Total,
	})
}

// AddToCart adds a product to the cart, merging quantities for repeats
// POST /api/v1/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		if fields := apperrors.BindingFields(err); fields != nil {
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart item data")
		return
	}

	quantity := parseQuantity(req.Quantity)

	merged, err := ctrl.cartService.AddToCart(userID, req.ProductID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.Conflict(c, apperrors.ProductOutOfStock, "Not enough stock for this product")
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add to cart")
		}
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   quantity,
		"merged":     merged,
	})

	message := "Item added to cart"
	if merged {
		message = "Item quantity updated in cart"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"merged":  merged,
	})
}

// UpdateQuantities replaces quantities for multiple cart items at once.
// A quantity of zero or less removes the item. The whole batch is rejected
// when any entry fails to parse or names an item outside the caller's cart.
// PUT /api/v1/cart/items
func (ctrl *CartController) UpdateQuantities(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateQuantitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update quantities request", map[string]interface{}{
			"error": err.Error(),
		})
		if fields := apperrors.BindingFields(err); fields != nil {
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid quantities data")
		return
	}

	quantities := make(map[uint]int, len(req.Quantities))
	for idStr, qty := range req.Quantities {
		itemID, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
			return
		}
		quantities[uint(itemID)] = qty
	}

	if err := ctrl.cartService.UpdateQuantities(userID, quantities); err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
		default:
			log.Error("Failed to update cart quantities", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update cart quantities")
		}
		return
	}

	log.Info("Cart quantities updated", map[string]interface{}{
		"user_id": userID,
		"items":   len(quantities),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
	})
}

// RemoveFromCart removes a single item from the cart
// DELETE /api/v1/cart/items/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	if err := ctrl.cartService.RemoveFromCart(userID, uint(itemID)); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove cart item")
		return
	}

	log.Info("Item removed from cart", map[string]interface{}{
		"user_id": userID,
		"item_id": itemID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
	})
}

// ClearCart removes every item from the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "clear cart")
		return
	}

	log.Info("Cart cleared", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
